//go:build basic

// Package integration contains integration tests for wastetrack.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
// Or use: make test-integration
package integration

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWastetrackStatsVerification logs known observations and verifies the
// stats CSV output against the expected arithmetic.
func TestWastetrackStatsVerification(t *testing.T) {
	binaryPath := getWastetrackBinary()
	ledgerPath := filepath.Join(t.TempDir(), "ledger.csv")

	logged := map[string]float64{}
	entries := []struct {
		food   string
		weight float64
	}{
		{"Rice", 250},
		{"Rice", 250},
		{"Bread", 100},
		{"Salad", 75.5},
	}
	for _, e := range entries {
		cmd := exec.Command(binaryPath, "log", e.food, strconv.FormatFloat(e.weight, 'f', -1, 64), "--ledger", ledgerPath)
		output, err := cmd.CombinedOutput()
		require.NoError(t, err, "log failed: %s", string(output))
		logged[e.food] += e.weight
	}

	// Run wastetrack stats --output csv
	cmd := exec.Command(binaryPath, "stats", ledgerPath, "--output", "csv", "--precision", "1")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	err := cmd.Run()
	require.NoError(t, err)

	// Parse output to extract food -> weight map
	reported := parseStatsOutput(t, stdout.String())

	for food, weight := range logged {
		t.Run(food, func(t *testing.T) {
			got, ok := reported[food]
			require.True(t, ok, "food %s missing from stats output", food)
			assert.InDelta(t, weight, got, 0.05, "weight mismatch for %s", food)
		})
	}
}

// parseStatsOutput extracts food types and weights from the stats CSV output.
func parseStatsOutput(t *testing.T, output string) map[string]float64 {
	t.Helper()

	reported := make(map[string]float64)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		fields := strings.Split(line, ",")
		if len(fields) < 3 || fields[0] == "rank" {
			continue
		}
		weight, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			continue
		}
		reported[fields[1]] = weight
	}
	return reported
}
