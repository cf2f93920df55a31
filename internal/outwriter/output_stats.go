package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// statsDocument is the JSON envelope for a statistics report.
type statsDocument struct {
	Period     string               `json:"period"`
	Statistics schema.Snapshot      `json:"statistics"`
	Impact     *schema.ImpactReport `json:"impact,omitempty"`
}

// WriteStatistics outputs the statistics snapshot, dispatching based on the output format configured.
func WriteStatistics(snap schema.Snapshot, impact *schema.ImpactReport, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		doc := statsDocument{Period: string(cfg.Period), Statistics: snap, Impact: impact}
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, doc)
		}, "Wrote JSON statistics"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"rank", "food_type", "weight_grams", "items", "share_pct", "label"}, func(cw *csv.Writer) error {
				return writeStatsCSVRows(cw, snap, fmtFloat)
			})
		}, "Wrote CSV statistics"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTable(snap, impact, cfg, fmtFloat, duration, w)
		}, "Wrote statistics table")
	}
	return nil
}

// writeStatsCSVRows emits one row per food type in ranked order.
func writeStatsCSVRows(w *csv.Writer, snap schema.Snapshot, fmtFloat func(float64) string) error {
	ranked := schema.RankByWeight(snap.WeightByType, len(snap.WeightByType))
	for i, food := range ranked {
		weight := snap.WeightByType[food]
		share := sharePct(weight, snap.TotalWeight)
		row := []string{
			strconv.Itoa(i + 1),
			food,
			fmtFloat(weight),
			strconv.Itoa(snap.CountByType[food]),
			fmtFloat(share),
			contract.GetPlainLabel(share),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeStatsTable generates and writes the human-readable summary.
func writeStatsTable(snap schema.Snapshot, impact *schema.ImpactReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	table.Header([]string{"Rank", "Food", "Weight", "Items", "Share", "Label"})
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	maxLabel := getMaxTableLabelWidth(cfg)
	var data [][]string
	for i, food := range snap.TopFoods {
		weight := snap.WeightByType[food]
		share := sharePct(weight, snap.TotalWeight)
		data = append(data, []string{
			strconv.Itoa(i + 1),
			contract.TruncateLabel(food, maxLabel),
			schema.FormatGrams(weight),
			strconv.Itoa(snap.CountByType[food]),
			fmtFloat(share) + "%",
			severityLabel(share, cfg.UseColors),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(writer, "Total: %s across %d items\n", schema.FormatGrams(snap.TotalWeight), snap.TotalItems); err != nil {
		return err
	}
	if snap.WasteSavedTotal > 0 {
		if _, err := fmt.Fprintf(writer, "Saved vs prior week: %s (%s%%)\n", schema.FormatGrams(snap.WasteSavedTotal), fmtFloat(snap.WasteSavedPercentage)); err != nil {
			return err
		}
	}
	if impact != nil {
		writeImpactSummary(writer, impact, fmtFloat)
	}
	if _, err := fmt.Fprintf(writer, "Statistics completed in %v. Archive backend: %s\n", duration, cfg.ArchiveBackend); err != nil {
		return err
	}
	return nil
}

// writeImpactSummary prints cost and environmental figures under the table.
func writeImpactSummary(writer io.Writer, impact *schema.ImpactReport, fmtFloat func(float64) string) {
	fmt.Fprintf(writer, "Estimated cost: $%s (potential savings $%s)\n", fmtFloat(impact.WasteCost), fmtFloat(impact.PotentialSavings))
	fmt.Fprintf(writer, "Footprint: %s kg CO2, %s liters of water\n", fmtFloat(impact.CO2Kg), fmtFloat(impact.WaterLiters))
}

// sharePct computes a percentage share guarding against a zero total.
func sharePct(weight, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return weight / total * 100
}

// WriteArchiveStatus prints the archive backend summary to stdout.
func WriteArchiveStatus(status schema.ArchiveStatus, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, status)
		}, "Wrote JSON archive status")
	}

	fmt.Fprintf(os.Stdout, "Backend: %s\n", status.Backend)
	fmt.Fprintf(os.Stdout, "Location: %s\n", status.Location)
	fmt.Fprintf(os.Stdout, "Observations: %d\n", status.Observations)
	if !status.OldestEvent.IsZero() {
		fmt.Fprintf(os.Stdout, "Oldest event: %s\n", status.OldestEvent.Format(schema.TimestampFormat))
		fmt.Fprintf(os.Stdout, "Newest event: %s\n", status.NewestEvent.Format(schema.TimestampFormat))
	}
	return nil
}

// WriteLogConfirmation prints a short acknowledgement after a log append.
func WriteLogConfirmation(obs schema.Observation, cfg *contract.Config) error {
	if cfg.Output == schema.JSONOut {
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, obs)
		}, "Wrote JSON log entry")
	}

	fmt.Fprintf(os.Stdout, "Logged %s of %s at %s (%s)\n",
		schema.FormatGrams(obs.WeightGrams), obs.FoodType, obs.Timestamp, obs.MealPeriod)
	return nil
}
