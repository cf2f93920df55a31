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

// insightsDocument is the JSON envelope for an insights report.
type insightsDocument struct {
	Insights []string `json:"insights"`
}

// WriteInsights outputs the generated findings, dispatching based on the output format configured.
func WriteInsights(findings []string, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, insightsDocument{Insights: findings})
		}, "Wrote JSON insights"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"rank", "insight"}, func(cw *csv.Writer) error {
				for i, finding := range findings {
					if err := cw.Write([]string{strconv.Itoa(i + 1), finding}); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV insights"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			for i, finding := range findings {
				if _, err := fmt.Fprintf(w, "%d. %s\n", i+1, finding); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintf(w, "Insights completed in %v\n", duration)
			return err
		}, "Wrote insights")
	}
	return nil
}

// WriteRecommendations outputs reduction suggestions, dispatching based on the output format configured.
func WriteRecommendations(recs []schema.Recommendation, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, recs)
		}, "Wrote JSON recommendations"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"rank", "food_type", "meal_period", "current_grams", "savings_grams"}, func(cw *csv.Writer) error {
				for i, rec := range recs {
					row := []string{
						strconv.Itoa(i + 1),
						rec.FoodType,
						string(rec.MealPeriod),
						fmtFloat(rec.CurrentWaste),
						fmtFloat(rec.PotentialSavings),
					}
					if err := cw.Write(row); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV recommendations"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeRecommendationsTable(recs, cfg, duration, w)
		}, "Wrote recommendations table")
	}
	return nil
}

// writeRecommendationsTable prints ranked suggestions with their savings.
func writeRecommendationsTable(recs []schema.Recommendation, cfg *contract.Config, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Food", "Meal", "Current", "Savings"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := getMaxTableLabelWidth(cfg)
	var data [][]string
	for i, rec := range recs {
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateLabel(rec.FoodType, maxLabel),
			string(rec.MealPeriod),
			schema.FormatGrams(rec.CurrentWaste),
			schema.FormatGrams(rec.PotentialSavings),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	for _, rec := range recs {
		if _, err := fmt.Fprintf(writer, "- %s\n", rec.Message); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(writer, "Recommendations completed in %v\n", duration)
	return err
}
