package contract

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
)

// Net-zero timing label constants.
const (
	NeverValue = "Never" // Series stays above the threshold for the whole horizon
	LateValue  = "Late"  // Crossing after 2070
	MidValue   = "Mid"   // Crossing between 2051 and 2070
	EarlyValue = "Early" // Crossing at or before 2050
)

// Color variables for console output.
var (
	NeverColor = color.New(color.FgRed, color.Bold)     // neverColor represents standard danger.
	LateColor  = color.New(color.FgMagenta, color.Bold) // lateColor represents strong, distinct warning.
	MidColor   = color.New(color.FgYellow)              // midColor represents standard caution, not bold.
	EarlyColor = color.New(color.FgCyan)                // earlyColor represents informational / on-track signal.
)

// GetPlainLabel returns a plain text label classifying a net-zero crossing
// year. This is the core logic used for CSV, JSON, and table printing.
func GetPlainLabel(year float64) string {
	switch {
	case math.IsInf(year, 1):
		return NeverValue
	case year > 2070:
		return LateValue
	case year > 2050:
		return MidValue
	default:
		return EarlyValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(year float64) string {
	text := GetPlainLabel(year)

	switch text {
	case NeverValue:
		return NeverColor.Sprint(text)
	case LateValue:
		return LateColor.Sprint(text)
	case MidValue:
		return MidColor.Sprint(text)
	default: // "Early"
		return EarlyColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout on an empty path.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnore returns true if the given scenario key string matches any of
// the exclude patterns. It supports simple glob patterns (using
// filepath.Match) when the pattern contains wildcard characters (*, ?, [ ]);
// any other pattern matches as a substring. A user can provide patterns like
// "MESSAGE*", "*Baseline", "SSP5".
func ShouldIgnore(key string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		// If the pattern contains glob characters, try filepath.Match.
		if strings.ContainsAny(ex, "*?[") || strings.Contains(ex, "**") {
			pat := strings.ReplaceAll(ex, "**", "*")
			if ok, err := filepath.Match(pat, key); err == nil && ok {
				return true
			}
			continue
		}

		if strings.Contains(key, ex) {
			return true
		}
	}
	return false
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

// GetArchiveDBFilePath returns the path to the SQLite DB file for archive storage.
func GetArchiveDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gigaton_archive.db"
	}
	return filepath.Join(homeDir, ".gigaton_archive.db")
}

// TruncateLabel truncates a scenario or model label to a maximum width with
// ellipsis prefix. Requires maxWidth > 3 to ensure there's space for both the
// "..." prefix and at least one character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return label
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
