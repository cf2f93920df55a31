// Package parquet provides data structures and functions for exporting
// waste ledger data to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/kitchensight/wastetrack/schema"
	"github.com/parquet-go/parquet-go"
)

// WasteObservation represents a single logged waste event.
// This struct maps to the waste_observations archive table.
type WasteObservation struct {
	// FoodType is the detected or manually entered food category
	FoodType string `parquet:"food_type,snappy"`

	// WeightGrams is the measured waste weight in grams
	WeightGrams float64 `parquet:"weight_grams,snappy"`

	// EventTime is when the waste was captured (nullable for unparsable timestamps)
	EventTime *time.Time `parquet:"event_time,optional,snappy"`

	// Confidence is the detection confidence in [0, 1]
	Confidence float64 `parquet:"confidence,snappy"`

	// MealPeriod is the classified meal window
	MealPeriod string `parquet:"meal_period,snappy"`

	// ImageFilename references the stored capture image (nullable)
	ImageFilename *string `parquet:"image_filename,optional,snappy"`
}

// DailyTotal represents one day of aggregated waste.
type DailyTotal struct {
	// Date is the calendar day in YYYY-MM-DD form
	Date string `parquet:"date,snappy"`

	// TotalGrams is the summed waste weight for the day
	TotalGrams float64 `parquet:"total_grams,snappy"`
}

// ConvertObservations maps ledger observations into Parquet rows.
func ConvertObservations(entries []schema.Observation) []WasteObservation {
	rows := make([]WasteObservation, 0, len(entries))
	for _, obs := range entries {
		row := WasteObservation{
			FoodType:    obs.FoodType,
			WeightGrams: obs.WeightGrams,
			Confidence:  obs.Confidence,
			MealPeriod:  string(obs.MealPeriod),
		}
		if obs.TimeValid {
			t := obs.EventTime
			row.EventTime = &t
		}
		if obs.ImageFilename != "" {
			img := obs.ImageFilename
			row.ImageFilename = &img
		}
		rows = append(rows, row)
	}
	return rows
}

// ConvertDailyTotals maps labeled trend points into Parquet rows.
func ConvertDailyTotals(points []schema.TrendPoint) []DailyTotal {
	rows := make([]DailyTotal, 0, len(points))
	for _, p := range points {
		rows = append(rows, DailyTotal{Date: p.Label, TotalGrams: p.Weight})
	}
	return rows
}

// WriteObservationsParquet writes a slice of WasteObservation structs to a Parquet file.
func WriteObservationsParquet(data []WasteObservation, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the WasteObservation struct tags
	writer := parquet.NewGenericWriter[WasteObservation](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}

// MockFetchObservations generates sample WasteObservation data for demonstration.
func MockFetchObservations() []WasteObservation {
	now := time.Now()
	lunchTime := now.Add(-2 * time.Hour)
	breakfastTime := now.Add(-26 * time.Hour)
	image1 := "plate_0001.jpg"

	return []WasteObservation{
		{
			FoodType:      "Rice",
			WeightGrams:   250,
			EventTime:     &lunchTime,
			Confidence:    0.92,
			MealPeriod:    "Lunch",
			ImageFilename: &image1,
		},
		{
			FoodType:    "Bread",
			WeightGrams: 120,
			EventTime:   &breakfastTime,
			Confidence:  0.81,
			MealPeriod:  "Breakfast",
		},
		{
			// Note: EventTime and ImageFilename are nil to demonstrate nullable fields
			FoodType:    "Salad",
			WeightGrams: 75.5,
			Confidence:  1.0,
			MealPeriod:  "Unknown",
		},
	}
}

// MockFetchDailyTotals generates sample DailyTotal data for demonstration.
func MockFetchDailyTotals() []DailyTotal {
	now := time.Now()
	rows := make([]DailyTotal, 0, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		rows = append(rows, DailyTotal{
			Date:       day.Format("2006-01-02"),
			TotalGrams: float64(100 + 25*i),
		})
	}
	return rows
}

// WriteDailyTotalsParquet writes a slice of DailyTotal structs to a Parquet file.
func WriteDailyTotalsParquet(data []DailyTotal, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[DailyTotal](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	return nil
}
