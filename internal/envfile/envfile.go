// Package envfile scaffolds and inspects the flat KEY=VALUE .env file
// consumed by the payslip application. The launcher only ever creates
// the file when it is absent; an existing file is never modified.
package envfile

import (
	"fmt"
	"os"
	"strings"
)

// Default keys written into a freshly scaffolded .env file.
const (
	KeySpreadsheetID = "SPREADSHEET_ID"
	KeySecretKey     = "SECRET_KEY"

	// Placeholder values the operator is expected to replace.
	PlaceholderSpreadsheetID = "your_spreadsheet_id_here"
	PlaceholderSecretKey     = "change_me_in_production"
)

// Entry is a single KEY=VALUE line. Order is preserved.
type Entry struct {
	Key   string
	Value string
}

// DefaultEntries returns the exact two entries a scaffolded file contains.
func DefaultEntries() []Entry {
	return []Entry{
		{Key: KeySpreadsheetID, Value: PlaceholderSpreadsheetID},
		{Key: KeySecretKey, Value: PlaceholderSecretKey},
	}
}

// Exists reports whether the env file is present.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Scaffold writes the default env file if and only if it is absent.
// Returns true when the file was created, false when it already existed.
func Scaffold(path string) (bool, error) {
	if Exists(path) {
		return false, nil
	}

	var sb strings.Builder
	for _, e := range DefaultEntries() {
		sb.WriteString(e.Key)
		sb.WriteString("=")
		sb.WriteString(e.Value)
		sb.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}

// Load parses the env file into an ordered entry list.
// Blank lines and lines starting with '#' are skipped; lines without
// '=' are ignored rather than rejected, matching how the downstream
// application's loader behaves.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	return entries, nil
}

// IsPlaceholder reports whether an entry still carries a scaffolded
// default value. Used by doctor to warn about unedited config.
func IsPlaceholder(e Entry) bool {
	switch e.Key {
	case KeySpreadsheetID:
		return e.Value == PlaceholderSpreadsheetID || e.Value == ""
	case KeySecretKey:
		return e.Value == PlaceholderSecretKey || e.Value == ""
	default:
		return false
	}
}

// HasPlaceholders reports whether any entry still has a default value.
func HasPlaceholders(entries []Entry) bool {
	for _, e := range entries {
		if IsPlaceholder(e) {
			return true
		}
	}
	return false
}
