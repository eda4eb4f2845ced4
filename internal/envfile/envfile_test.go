package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaffold_CreatesFileWithTwoDefaultEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	created, err := Scaffold(path)
	require.NoError(t, err)
	assert.True(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"SPREADSHEET_ID=your_spreadsheet_id_here\nSECRET_KEY=change_me_in_production\n",
		string(data))
}

func TestScaffold_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")

	created, err := Scaffold(path)
	require.NoError(t, err)
	require.True(t, created)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	// Second run must not touch the file.
	created, err = Scaffold(path)
	require.NoError(t, err)
	assert.False(t, created)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestScaffold_PreservesOperatorEdits(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	edited := "SPREADSHEET_ID=1AbC\nSECRET_KEY=s3cret\n"
	require.NoError(t, os.WriteFile(path, []byte(edited), 0o644))

	created, err := Scaffold(path)
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, edited, string(data))
}

func TestLoad_ParsesOrderedEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nSPREADSHEET_ID=1AbC\n\nSECRET_KEY=s3cret\nbroken line\nEXTRA = spaced \n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	entries, err := Load(path)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Key: "SPREADSHEET_ID", Value: "1AbC"}, entries[0])
	assert.Equal(t, Entry{Key: "SECRET_KEY", Value: "s3cret"}, entries[1])
	assert.Equal(t, Entry{Key: "EXTRA", Value: "spaced"}, entries[2])
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), ".env"))
	assert.Error(t, err)
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		name     string
		entry    Entry
		expected bool
	}{
		{"default spreadsheet id", Entry{KeySpreadsheetID, PlaceholderSpreadsheetID}, true},
		{"default secret key", Entry{KeySecretKey, PlaceholderSecretKey}, true},
		{"empty spreadsheet id", Entry{KeySpreadsheetID, ""}, true},
		{"edited spreadsheet id", Entry{KeySpreadsheetID, "1AbC"}, false},
		{"edited secret key", Entry{KeySecretKey, "s3cret"}, false},
		{"unknown key", Entry{"SHEET_NAME", ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPlaceholder(tt.entry))
		})
	}
}

func TestHasPlaceholders_FreshScaffold(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	_, err := Scaffold(path)
	require.NoError(t, err)

	entries, err := Load(path)
	require.NoError(t, err)
	assert.True(t, HasPlaceholders(entries))
}
