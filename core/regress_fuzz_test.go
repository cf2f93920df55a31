package core

import (
	"strconv"
	"strings"
	"testing"
)

// FuzzFitLine fuzzes the FitLine function with random value arrays.
func FuzzFitLine(f *testing.F) {
	seeds := []string{
		"[100,110,120,130]",
		"[0,0,0]",
		"[500]",
		"[]",
		"[1e300,1e300]",
		"[-5,10,-5,10]",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(_ *testing.T, valuesJSON string) {
		// Simple parsing, may fail but that's ok for fuzzing
		values := []float64{}
		if valuesJSON != "" && valuesJSON[0] == '[' && valuesJSON[len(valuesJSON)-1] == ']' {
			inner := valuesJSON[1 : len(valuesJSON)-1]
			if inner != "" {
				for p := range strings.SplitSeq(inner, ",") {
					if v, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err == nil {
						values = append(values, v)
					}
				}
			}
		}
		model := FitLine(values)
		_ = Predict(model, float64(len(values)))
	})
}

// FuzzMovingAverage fuzzes the MovingAverage smoothing with random windows.
func FuzzMovingAverage(f *testing.F) {
	f.Add("[1,2,3,4,5]", 3)
	f.Add("[10]", 1)
	f.Add("[]", 5)
	f.Add("[2,2]", 0)

	f.Fuzz(func(_ *testing.T, valuesJSON string, window int) {
		values := []float64{}
		if valuesJSON != "" && valuesJSON[0] == '[' && valuesJSON[len(valuesJSON)-1] == ']' {
			inner := valuesJSON[1 : len(valuesJSON)-1]
			if inner != "" {
				for p := range strings.SplitSeq(inner, ",") {
					if v, err := strconv.ParseFloat(strings.TrimSpace(p), 64); err == nil {
						values = append(values, v)
					}
				}
			}
		}
		_ = MovingAverage(values, window)
	})
}
