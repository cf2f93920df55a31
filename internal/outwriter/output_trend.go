package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// forecastDocument is the JSON envelope for a forecast report.
type forecastDocument struct {
	Model    schema.RegressionModel `json:"model"`
	Forecast []float64              `json:"forecast"`
}

// WriteTrend outputs the trend series, dispatching based on the output format configured.
func WriteTrend(series schema.TrendSeries, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, series)
		}, "Wrote JSON trend"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"label", "weight_grams"}, func(cw *csv.Writer) error {
				for _, p := range series.Points {
					if err := cw.Write([]string{p.Label, fmtFloat(p.Weight)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV trend"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeTrendTable(series, cfg, fmtFloat, duration, w)
		}, "Wrote trend table")
	}
	return nil
}

// writeTrendTable prints the series in a two-column table with a
// direction summary underneath.
func writeTrendTable(series schema.TrendSeries, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Bucket", "Weight"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range series.Points {
		data = append(data, []string{p.Label, schema.FormatGrams(p.Weight)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	direction := "down"
	if series.Increasing {
		direction = "up"
	}
	if _, err := fmt.Fprintf(writer, "Change over window: %s%% (%s)\n", fmtFloat(series.ChangePercentage), direction); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Trend completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// WriteForecast outputs the regression model and projection, dispatching
// based on the output format configured.
func WriteForecast(model schema.RegressionModel, forecast []float64, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		doc := forecastDocument{Model: model, Forecast: forecast}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, doc)
		}, "Wrote JSON forecast"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"day_ahead", "weight_grams"}, func(cw *csv.Writer) error {
				for i, projected := range forecast {
					if err := cw.Write([]string{strconv.Itoa(i + 1), fmtFloat(projected)}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV forecast"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeForecastTable(model, forecast, fmtFloat, duration, w)
		}, "Wrote forecast table")
	}
	return nil
}

// writeForecastTable prints per-day projections with the fit quality.
func writeForecastTable(model schema.RegressionModel, forecast []float64, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Day", "Projected"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for i, projected := range forecast {
		data = append(data, []string{fmt.Sprintf("+%d", i+1), schema.FormatGrams(projected)})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Fit: slope %s g/day, intercept %s g, R2 %s\n",
		fmtFloat(model.Slope), fmtFloat(model.Intercept), fmtFloat(model.RSquared)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Forecast completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}
