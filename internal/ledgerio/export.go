package ledgerio

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/internal/parquet"
	"github.com/kitchensight/wastetrack/schema"
)

// enrichedHeader is the column layout of analysis-friendly CSV exports.
var enrichedHeader = []string{"FoodType", "Weight", "Timestamp", "MealPeriod", "DayOfWeek", "Month"}

// exportDocument is the JSON export envelope.
type exportDocument struct {
	Metadata   exportMetadata  `json:"metadata"`
	Entries    []exportEntry   `json:"entries"`
	Statistics schema.Snapshot `json:"statistics"`
}

type exportMetadata struct {
	GeneratedAt string `json:"generated_at"`
	EntryCount  int    `json:"entry_count"`
}

type exportEntry struct {
	FoodType      string  `json:"food_type"`
	WeightGrams   float64 `json:"weight_grams"`
	Timestamp     string  `json:"timestamp"`
	Confidence    float64 `json:"confidence"`
	MealPeriod    string  `json:"meal_period"`
	ImageFilename string  `json:"image_filename,omitempty"`
}

// ExportObservations writes the (already filtered) entries in the
// configured output format. Text mode falls back to the enriched CSV
// layout since an export is data, not a report.
func ExportObservations(entries []schema.Observation, snap schema.Snapshot, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeExportJSON(w, entries, snap)
		}, "Wrote JSON export")
	case schema.ParquetOut:
		return exportParquet(entries, cfg.OutputFile)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeEnrichedCSV(w, entries)
		}, "Wrote CSV export")
	}
}

// writeEnrichedCSV emits one row per observation with derived calendar
// columns. Unparsable timestamps leave the derived columns empty.
func writeEnrichedCSV(w io.Writer, entries []schema.Observation) error {
	csvWriter := csv.NewWriter(w)
	defer csvWriter.Flush()

	if err := csvWriter.Write(enrichedHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, obs := range entries {
		var dayOfWeek, month string
		if obs.TimeValid {
			dayOfWeek = obs.EventTime.Weekday().String()
			month = obs.EventTime.Month().String()
		}
		record := []string{
			obs.FoodType,
			strconv.FormatFloat(obs.WeightGrams, 'f', -1, 64),
			obs.Timestamp,
			string(obs.MealPeriod),
			dayOfWeek,
			month,
		}
		if err := csvWriter.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// writeExportJSON emits the structured document with metadata, raw
// entries and the aggregate statistics for the exported subset.
func writeExportJSON(w io.Writer, entries []schema.Observation, snap schema.Snapshot) error {
	doc := exportDocument{
		Metadata: exportMetadata{
			GeneratedAt: time.Now().Format(schema.TimestampFormat),
			EntryCount:  len(entries),
		},
		Entries:    make([]exportEntry, 0, len(entries)),
		Statistics: snap,
	}
	for _, obs := range entries {
		doc.Entries = append(doc.Entries, exportEntry{
			FoodType:      obs.FoodType,
			WeightGrams:   obs.WeightGrams,
			Timestamp:     obs.Timestamp,
			Confidence:    obs.Confidence,
			MealPeriod:    string(obs.MealPeriod),
			ImageFilename: obs.ImageFilename,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// exportParquet writes two Parquet files next to the requested path:
// the raw observations and the per-day totals.
func exportParquet(entries []schema.Observation, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for parquet export")
	}

	observations := parquet.ConvertObservations(entries)
	observationsFile := outputFile + ".observations.parquet"
	if err := parquet.WriteObservationsParquet(observations, observationsFile); err != nil {
		return fmt.Errorf("failed to write observations: %w", err)
	}
	fmt.Printf("Exported %d observations to: %s\n", len(observations), observationsFile)

	totals := parquet.ConvertDailyTotals(dailyTotals(entries))
	totalsFile := outputFile + ".daily_totals.parquet"
	if err := parquet.WriteDailyTotalsParquet(totals, totalsFile); err != nil {
		return fmt.Errorf("failed to write daily totals: %w", err)
	}
	fmt.Printf("Exported %d daily totals to: %s\n", len(totals), totalsFile)
	return nil
}

// dailyTotals folds entries into sorted per-day weight points.
func dailyTotals(entries []schema.Observation) []schema.TrendPoint {
	byDay := make(map[string]float64)
	for _, obs := range entries {
		if obs.TimeValid {
			byDay[contract.DateLabel(obs.EventTime)] += obs.WeightGrams
		}
	}

	points := make([]schema.TrendPoint, 0, len(byDay))
	for _, day := range schema.SortedKeys(byDay) {
		points = append(points, schema.TrendPoint{Label: day, Weight: byDay[day]})
	}
	return points
}

// writeWithFile handles the common pattern of opening a file, writing to it, and cleaning up.
func writeWithFile(outputFile string, writer func(io.Writer) error, successMsg string) error {
	file, err := contract.SelectOutputFile(outputFile)
	if err != nil {
		return err
	}
	if file != os.Stdout {
		defer func() { _ = file.Close() }()
	}

	if err := writer(file); err != nil {
		return err
	}

	if file != os.Stdout {
		fmt.Fprintf(os.Stderr, "💾 %s to %s\n", successMsg, outputFile)
	}
	return nil
}
