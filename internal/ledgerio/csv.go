package ledgerio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/schema"
)

// ledgerHeader is the fixed column layout of the ledger file. Loading
// and saving must round-trip through this exact header.
var ledgerHeader = []string{"FoodType", "Weight", "Timestamp", "Confidence", "MealPeriod", "ImageFilename"}

// LoadObservations reads the ledger file. A missing file is an empty
// ledger, not an error. Malformed rows are skipped with a warning so
// one bad line never blocks the rest of the ledger.
func LoadObservations(path string, meals contract.MealSchedule) ([]schema.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []schema.Observation{}, nil
		}
		return nil, fmt.Errorf("cannot open ledger file %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // row length is checked per record

	var entries []schema.Observation
	line := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			contract.LogWarn("skipping unreadable ledger line", err)
			continue
		}
		line++
		if line == 1 && isHeaderRow(record) {
			continue
		}

		obs, err := parseLedgerRecord(record, meals)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("skipping ledger line %d", line), err)
			continue
		}
		entries = append(entries, obs)
	}

	return entries, nil
}

// SaveObservations writes the full ledger file, creating parent
// directories as needed. The write replaces the previous file.
func SaveObservations(path string, entries []schema.Observation) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create ledger directory %q: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create ledger file %q: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	if err := writer.Write(ledgerHeader); err != nil {
		return fmt.Errorf("cannot write ledger header: %w", err)
	}
	for _, obs := range entries {
		record := []string{
			obs.FoodType,
			strconv.FormatFloat(obs.WeightGrams, 'f', -1, 64),
			obs.Timestamp,
			strconv.FormatFloat(obs.Confidence, 'f', -1, 64),
			string(obs.MealPeriod),
			obs.ImageFilename,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("cannot write ledger row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// isHeaderRow detects the canonical header so old files without one
// still load.
func isHeaderRow(record []string) bool {
	if len(record) != len(ledgerHeader) {
		return false
	}
	for i, col := range ledgerHeader {
		if record[i] != col {
			return false
		}
	}
	return true
}

// parseLedgerRecord converts one CSV row into an observation. The meal
// column is trusted when it names a known period; anything else is
// reclassified from the timestamp.
func parseLedgerRecord(record []string, meals contract.MealSchedule) (schema.Observation, error) {
	if len(record) != len(ledgerHeader) {
		return schema.Observation{}, fmt.Errorf("expected %d fields, got %d", len(ledgerHeader), len(record))
	}

	weight, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return schema.Observation{}, fmt.Errorf("bad weight %q: %w", record[1], err)
	}
	if weight < 0 {
		return schema.Observation{}, fmt.Errorf("negative weight %q", record[1])
	}

	confidence, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return schema.Observation{}, fmt.Errorf("bad confidence %q: %w", record[3], err)
	}

	eventTime, valid := contract.ParseObservationTime(record[2])
	obs := schema.Observation{
		FoodType:      record[0],
		WeightGrams:   weight,
		Timestamp:     record[2],
		EventTime:     eventTime,
		TimeValid:     valid,
		Confidence:    confidence,
		MealPeriod:    schema.MealPeriod(record[4]),
		ImageFilename: record[5],
	}
	if _, known := schema.ValidMealPeriods[obs.MealPeriod]; !known {
		obs.MealPeriod = meals.Classify(eventTime, valid)
	}
	return obs, nil
}
