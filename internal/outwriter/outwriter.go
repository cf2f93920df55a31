// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// Statistics prints a statistics snapshot using the configured output format.
func (ow *OutWriter) Statistics(snap schema.Snapshot, impact *schema.ImpactReport, cfg *contract.Config, duration time.Duration) error {
	return WriteStatistics(snap, impact, cfg, duration)
}

// Trend prints a trend series using the configured output format.
func (ow *OutWriter) Trend(series schema.TrendSeries, cfg *contract.Config, duration time.Duration) error {
	return WriteTrend(series, cfg, duration)
}

// Forecast prints a fitted model and its projection using the configured output format.
func (ow *OutWriter) Forecast(model schema.RegressionModel, forecast []float64, cfg *contract.Config, duration time.Duration) error {
	return WriteForecast(model, forecast, cfg, duration)
}

// Insights prints generated findings using the configured output format.
func (ow *OutWriter) Insights(findings []string, cfg *contract.Config, duration time.Duration) error {
	return WriteInsights(findings, cfg, duration)
}

// Recommendations prints reduction suggestions using the configured output format.
func (ow *OutWriter) Recommendations(recs []schema.Recommendation, cfg *contract.Config, duration time.Duration) error {
	return WriteRecommendations(recs, cfg, duration)
}

// getMaxTableLabelWidth calculates the maximum width for food labels in
// table output based on terminal width and the fixed columns.
func getMaxTableLabelWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			// Fallback to conservative default if terminal size can't be detected
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Reserve space for rank, weight, count and label columns plus
	// table borders and padding.
	available := termWidth - 45
	if available < 12 {
		return 12
	}
	if available > 50 {
		return 50
	}
	return available
}
