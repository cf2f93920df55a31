package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Severity label constants for waste share of total.
const (
	CriticalValue = "Critical" // Critical value
	HighValue     = "High"     // High value
	ModerateValue = "Moderate" // Moderate value
	LowValue      = "Low"      // Low value
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgMagenta, color.Bold) // highColor represents strong, distinct warning.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgCyan)                // lowColor represents informational / low-priority signal.
)

// GetPlainLabel returns a plain text severity label for a food type's share
// of total waste weight, expressed as a percentage. This is the core logic
// used for CSV, JSON, and table printing.
func GetPlainLabel(sharePct float64) string {
	switch {
	case sharePct >= 40:
		return CriticalValue
	case sharePct >= 20:
		return HighValue
	case sharePct >= 10:
		return ModerateValue
	default:
		return LowValue
	}
}

// GetColorLabel returns a colored severity label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the
// appropriate color.
func GetColorLabel(sharePct float64) string {
	text := GetPlainLabel(sharePct)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case HighValue:
		return HighColor.Sprint(text)
	case ModerateValue:
		return ModerateColor.Sprint(text)
	default: // "Low"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// TruncateLabel shortens a label to maxWidth runes, marking the cut with
// a leading ellipsis so the most specific suffix stays visible.
func TruncateLabel(label string, maxWidth int) string {
	if maxWidth <= 0 || len(label) <= maxWidth {
		return label
	}
	if maxWidth <= 3 {
		return label[len(label)-maxWidth:]
	}
	return "..." + label[len(label)-(maxWidth-3):]
}

// ParseBoolString interprets yes/no style flag values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes/no/true/false/1/0, got %q", s)
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetLedgerFilePath returns the default path of the flat-file waste ledger.
func GetLedgerFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "waste_ledger.csv"
	}
	return filepath.Join(homeDir, ".wastetrack", "waste_ledger.csv")
}

// GetArchiveDBFilePath returns the path to the SQLite DB file for the
// observation archive.
func GetArchiveDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".wastetrack_archive.db"
	}
	return filepath.Join(homeDir, ".wastetrack_archive.db")
}
