// Package main provides a performance benchmarking tool for the wastetrack CLI.
// It generates synthetic ledgers of increasing size, measures execution times
// across command types, running each test multiple times, treating the first
// successful run as cold and averaging the rest as warm, and generates CSV
// output for performance analysis and documentation.
//
// Prerequisites:
// - wastetrack binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic ledgers are written
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Ledger   string
	Command  string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Runs        int
	LedgerSizes map[string]int
}

var foodTypes = []string{"Rice", "Bread", "Pasta", "Salad", "Chicken", "Potato", "Soup", "Fruit"}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}
	workDir := os.Args[1]

	config := BenchmarkConfig{
		WorkDir: workDir,
		Timeout: 2 * time.Minute,
		Runs:    4,
		LedgerSizes: map[string]int{
			"small":  1_000,
			"medium": 10_000,
			"large":  100_000,
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the wastetrack binary and work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("wastetrack"); err != nil {
		return fmt.Errorf("wastetrack binary not found in PATH")
	}
	if err := os.MkdirAll(config.WorkDir, 0o755); err != nil {
		return fmt.Errorf("cannot create work directory %s: %w", config.WorkDir, err)
	}
	return nil
}

// generateLedger writes a synthetic ledger CSV with the given number of rows.
func generateLedger(path string, rows int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"FoodType", "Weight", "Timestamp", "Confidence", "MealPeriod", "ImageFilename"}); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(42))
	now := time.Now()
	for i := 0; i < rows; i++ {
		when := now.Add(-time.Duration(rng.Intn(90*24)) * time.Hour)
		record := []string{
			foodTypes[rng.Intn(len(foodTypes))],
			fmt.Sprintf("%.1f", 20+rng.Float64()*480),
			when.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%.2f", 0.5+rng.Float64()*0.5),
			"", // force reclassification from the timestamp
			"",
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// runBenchmarks executes all benchmark tests across the generated ledgers
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d ledgers, %v timeout, %d runs each\n",
		len(config.LedgerSizes), config.Timeout, config.Runs)

	for _, name := range []string{"small", "medium", "large"} {
		rows := config.LedgerSizes[name]
		ledgerPath := filepath.Join(config.WorkDir, name+".csv")

		fmt.Printf("Generating %s ledger (%d rows)\n", name, rows)
		if err := generateLedger(ledgerPath, rows); err != nil {
			fmt.Printf("Warning: failed to generate %s ledger: %v\n", name, err)
			continue
		}

		commands := []struct {
			command string
			args    string
		}{
			{"stats", "--impact"},
			{"trend", "--days 90"},
			{"forecast", "--days-ahead 14"},
			{"insights", ""},
			{"recommend", "--limit 10"},
		}
		for _, c := range commands {
			fmt.Printf("Running %s on %s\n", c.command, name)
			result := runBenchmarkSuite(config, name, ledgerPath, c.command, c.args)
			results = append(results, result)
		}
	}

	return results
}

// runBenchmarkSuite runs one command repeatedly against one ledger
func runBenchmarkSuite(config BenchmarkConfig, name, ledgerPath, command, extraArgs string) BenchmarkResult {
	cold, warmTimes := runBenchmark(config, ledgerPath, command, extraArgs)

	coldTimeStr := "TIMEOUT"
	if cold > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", cold)
	}

	warmAvg := "TIMEOUT"
	if len(warmTimes) > 0 {
		var sum float64
		for _, t := range warmTimes {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warmTimes)))
	}

	fmt.Printf("  Cold time: %s, Warm average: %s\n", coldTimeStr, warmAvg)

	return BenchmarkResult{
		Ledger:   name,
		Command:  command,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a wastetrack command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, ledgerPath, command, extraArgs string) (coldTime float64, warmTimes []float64) {
	args := []string{command, ledgerPath}
	if extraArgs != "" {
		args = append(args, strings.Fields(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("wastetrack", args...)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	var completionPhrase string
	switch command {
	case "stats":
		completionPhrase = "Statistics completed in"
	case "trend":
		completionPhrase = "Trend completed in"
	case "forecast":
		completionPhrase = "Forecast completed in"
	case "insights":
		completionPhrase = "Insights completed in"
	case "recommend":
		completionPhrase = "Recommendations completed in"
	default:
		completionPhrase = "completed in"
	}

	return strings.Contains(outputStr, completionPhrase)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/wastetrack_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"ledger", "cmd", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Ledger, result.Command, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	for _, command := range []string{"stats", "trend", "forecast", "insights", "recommend"} {
		fmt.Printf("%s:\n", strings.ToUpper(command[:1])+command[1:])
		for _, result := range results {
			if result.Command == command {
				fmt.Printf("  %-8s: Cold: %s, Warm: %s\n", result.Ledger, result.ColdTime, result.WarmTime)
			}
		}
	}

	fmt.Printf("Benchmark script completed successfully\n")
}
