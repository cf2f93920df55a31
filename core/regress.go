package core

import (
	"math"

	"github.com/kitchensight/wastetrack/schema"
)

// varianceEpsilon guards the OLS slope against near-constant x or y series.
const varianceEpsilon = 1e-9

// weakFitThreshold marks a fitted model as unreliable for forecasting.
const weakFitThreshold = 0.1

// smoothingWindow is the centered moving-average span applied to the
// daily series before fitting the forecast model.
const smoothingWindow = 3

// FitLine fits y = intercept + slope*x by ordinary least squares over
// x = 0..n-1. Fewer than two points yields the zero model; a flat series
// yields slope 0 with the mean as intercept.
func FitLine(values []float64) schema.RegressionModel {
	n := len(values)
	if n < 2 {
		return schema.RegressionModel{}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	meanX := sumX / fn
	meanY := sumY / fn

	varX := sumXX - fn*meanX*meanX
	if math.Abs(varX) < varianceEpsilon {
		return schema.RegressionModel{Intercept: meanY}
	}

	slope := (sumXY - fn*meanX*meanY) / varX
	intercept := meanY - slope*meanX

	var ssRes, ssTot float64
	for i, y := range values {
		predicted := intercept + slope*float64(i)
		ssRes += (y - predicted) * (y - predicted)
		ssTot += (y - meanY) * (y - meanY)
	}

	model := schema.RegressionModel{Intercept: intercept, Slope: slope}
	if math.Abs(ssTot) >= varianceEpsilon {
		model.RSquared = 1 - ssRes/ssTot
	}
	return model
}

// Predict evaluates the model at index x, clamped at zero since a
// negative waste weight is meaningless.
func Predict(model schema.RegressionModel, x float64) float64 {
	predicted := model.Intercept + model.Slope*x
	if predicted < 0 {
		return 0
	}
	return predicted
}

// Forecast projects daily waste daysAhead days past the observed series.
// A model fit with |R squared| below the weak-fit threshold is refit on
// the freshest daily series before projecting.
func (l *Ledger) Forecast(daysAhead int) []float64 {
	if daysAhead <= 0 {
		return []float64{}
	}

	series := MovingAverage(l.Statistics(schema.AllTime).DailyTrend, smoothingWindow)
	model := FitLine(series)
	if math.Abs(model.RSquared) < weakFitThreshold {
		l.mu.Lock()
		l.dirty = true
		l.mu.Unlock()
		series = MovingAverage(l.Statistics(schema.AllTime).DailyTrend, smoothingWindow)
		model = FitLine(series)
	}

	forecast := make([]float64, 0, daysAhead)
	for i := range daysAhead {
		forecast = append(forecast, Predict(model, float64(len(series)+i)))
	}
	return forecast
}

// ForecastModel exposes the fitted model behind Forecast for reporting.
func (l *Ledger) ForecastModel() schema.RegressionModel {
	return FitLine(MovingAverage(l.Statistics(schema.AllTime).DailyTrend, smoothingWindow))
}

// nextWeekForecast projects the daily waste level seven days past the
// observed series.
func (l *Ledger) nextWeekForecast() float64 {
	forecast := l.Forecast(7)
	if len(forecast) == 0 {
		return 0
	}
	return forecast[len(forecast)-1]
}

// MovingAverage smooths a series with a window centered on each point,
// clipped at the edges. A window that is non-positive or wider than the
// series returns the series unchanged.
func MovingAverage(values []float64, window int) []float64 {
	if len(values) == 0 || window <= 0 || window > len(values) {
		return values
	}

	half := window / 2
	out := make([]float64, len(values))
	for i := range values {
		var sum float64
		count := 0
		for j := i - half; j <= i+half; j++ {
			if j >= 0 && j < len(values) {
				sum += values[j]
				count++
			}
		}
		out[i] = sum / float64(count)
	}
	return out
}
