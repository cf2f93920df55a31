package core

import (
	"context"
	"fmt"
	"time"

	"github.com/kitchensight/wastetrack/internal/contract"
	"github.com/kitchensight/wastetrack/internal/ledgerio"
	"github.com/kitchensight/wastetrack/internal/outwriter"
	"github.com/kitchensight/wastetrack/schema"
)

// ExecutorFunc defines the function signature for executing different ledger commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteLogWaste appends one observation to the ledger file and prints a
// confirmation. It serves as the main entry point for the 'log' command.
func ExecuteLogWaste(ctx context.Context, cfg *contract.Config, foodType string, weightGrams float64) error {
	ledger, err := OpenLedger(cfg)
	if err != nil {
		return err
	}

	timestamp := cfg.LogTimestamp
	if timestamp == "" {
		timestamp = time.Now().Format(schema.TimestampFormat)
	}

	obs := NewObservation(foodType, weightGrams, timestamp, cfg.LogConfidence, cfg.LogImage, cfg.Meals)
	if cfg.MealFilter != "" {
		// Validation already resolved the override to its canonical period.
		obs.MealPeriod = cfg.MealFilter
	}

	if err := ledger.Append(obs); err != nil {
		return err
	}
	if err := ledgerio.SaveObservations(cfg.LedgerPath, ledger.Entries()); err != nil {
		return fmt.Errorf("cannot save ledger: %w", err)
	}

	if cfg.ArchiveBackend != schema.NoneBackend {
		archiveObservation(ctx, cfg, obs)
	}

	return outwriter.WriteLogConfirmation(obs, cfg)
}

// ExecuteStats computes the statistics snapshot for the configured period
// and prints results to stdout. It serves as the main entry point for the
// 'stats' command.
func ExecuteStats(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ledger, err := OpenLedger(cfg)
	if err != nil {
		return err
	}

	snap := ledger.Statistics(cfg.Period)
	snap.TopFoods = schema.RankByWeight(snap.WeightByType, cfg.TopFoods)

	var impact *schema.ImpactReport
	if cfg.ShowImpact {
		report := ledger.Impact(cfg.Period, cfg.PricePerKg, cfg.CO2PerKg, cfg.WaterPerKg)
		impact = &report
	}

	duration := time.Since(start)
	return outwriter.WriteStatistics(snap, impact, cfg, duration)
}

// ExecuteTrend builds the daily trend series, optionally restricted to a
// food type or meal period, and prints it. It serves as the main entry
// point for the 'trend' command.
func ExecuteTrend(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ledger, err := OpenLedger(cfg)
	if err != nil {
		return err
	}

	analyzer := NewAnalyzer(ledger)
	var series schema.TrendSeries
	switch {
	case cfg.FoodType != "":
		series = analyzer.FoodTypeTrend(cfg.FoodType, cfg.TrendDays)
	case cfg.MealFilter != "":
		series = analyzer.MealPeriodTrend(cfg.MealFilter, cfg.TrendDays)
	default:
		series = analyzer.DailyTrend(cfg.TrendDays)
	}

	duration := time.Since(start)
	return outwriter.WriteTrend(series, cfg, duration)
}

// ExecuteForecast fits the regression model over the daily series and
// projects future waste. It serves as the main entry point for the
// 'forecast' command.
func ExecuteForecast(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ledger, err := OpenLedger(cfg)
	if err != nil {
		return err
	}

	forecast := ledger.Forecast(cfg.ForecastDays)
	model := ledger.ForecastModel()

	duration := time.Since(start)
	return outwriter.WriteForecast(model, forecast, cfg, duration)
}

// ExecuteInsights gathers findings, pattern outliers and food-meal
// correlations. It serves as the main entry point for the 'insights'
// command.
func ExecuteInsights(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ledger, err := OpenLedger(cfg)
	if err != nil {
		return err
	}

	var findings []string
	if cfg.OutlierThreshold != contract.DefaultOutlierThreshold {
		snap := ledger.Statistics(schema.AllTime)
		findings = buildInsights(snap, ledger.nextWeekForecast(), ledger.Outliers(cfg.OutlierThreshold))
	} else {
		findings = ledger.Insights()
	}
	findings = append(findings, ledger.Correlations()...)

	duration := time.Since(start)
	return outwriter.WriteInsights(findings, cfg, duration)
}

// ExecuteRecommend ranks the heaviest food and meal pairings and prints
// reduction advice. It serves as the main entry point for the 'recommend'
// command.
func ExecuteRecommend(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	ledger, err := OpenLedger(cfg)
	if err != nil {
		return err
	}

	recs := ledger.Recommendations(cfg.ResultLimit)

	duration := time.Since(start)
	return outwriter.WriteRecommendations(recs, cfg, duration)
}

// ExecuteExport writes the ledger to the configured output format,
// honoring the food type, meal and time range filters. It serves as the
// main entry point for the 'export' command.
func ExecuteExport(ctx context.Context, cfg *contract.Config) error {
	ledger, err := OpenLedger(cfg)
	if err != nil {
		return err
	}

	entries := ledger.Query(cfg.FoodType, cfg.StartTime, cfg.EndTime)
	if cfg.MealFilter != "" {
		filtered := entries[:0]
		for _, obs := range entries {
			if obs.MealPeriod == cfg.MealFilter {
				filtered = append(filtered, obs)
			}
		}
		entries = filtered
	}

	snap := computeAllTimeSnapshot(entries, time.Now())
	return ledgerio.ExportObservations(entries, snap, cfg)
}

// ExecuteArchiveStatus reports the archive backend and its row counts.
func ExecuteArchiveStatus(ctx context.Context, cfg *contract.Config) error {
	mgr := ledgerio.NewArchiveStoreManager(cfg)
	defer mgr.Close()

	store := mgr.GetArchiveStore()
	if store == nil {
		return fmt.Errorf("no archive backend configured (set --archive-backend)")
	}

	status, err := store.Status()
	if err != nil {
		return fmt.Errorf("cannot read archive status: %w", err)
	}
	return outwriter.WriteArchiveStatus(status, cfg)
}

// ExecuteArchiveClear deletes all archived observations.
func ExecuteArchiveClear(ctx context.Context, cfg *contract.Config) error {
	mgr := ledgerio.NewArchiveStoreManager(cfg)
	defer mgr.Close()

	store := mgr.GetArchiveStore()
	if store == nil {
		return fmt.Errorf("no archive backend configured (set --archive-backend)")
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("cannot clear archive: %w", err)
	}
	fmt.Println("Archive cleared.")
	return nil
}

// ExecuteArchiveSync copies the ledger file into the archive database.
func ExecuteArchiveSync(ctx context.Context, cfg *contract.Config) error {
	ledger, err := OpenLedger(cfg)
	if err != nil {
		return err
	}

	mgr := ledgerio.NewArchiveStoreManager(cfg)
	defer mgr.Close()

	store := mgr.GetArchiveStore()
	if store == nil {
		return fmt.Errorf("no archive backend configured (set --archive-backend)")
	}

	count := 0
	for _, obs := range ledger.Entries() {
		if err := store.Insert(obs); err != nil {
			return fmt.Errorf("cannot archive observation: %w", err)
		}
		count++
	}
	fmt.Printf("Archived %d observations.\n", count)
	return nil
}

// OpenLedger reads the ledger file into a fresh in-memory ledger. A
// missing file yields an empty ledger rather than an error.
func OpenLedger(cfg *contract.Config) (*Ledger, error) {
	entries, err := ledgerio.LoadObservations(cfg.LedgerPath, cfg.Meals)
	if err != nil {
		return nil, fmt.Errorf("cannot load ledger: %w", err)
	}

	ledger := NewLedger(cfg.Meals)
	ledger.Replace(entries)
	return ledger, nil
}

// archiveObservation best-effort inserts into the archive backend.
// Archive failures never block the primary ledger write.
func archiveObservation(ctx context.Context, cfg *contract.Config, obs schema.Observation) {
	mgr := ledgerio.NewArchiveStoreManager(cfg)
	defer mgr.Close()

	if store := mgr.GetArchiveStore(); store != nil {
		if err := store.Insert(obs); err != nil {
			contract.LogWarn("archive insert failed", err)
		}
	}
}
