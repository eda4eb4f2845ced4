package preflight

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeedsCheck(t *testing.T) {
	dir := t.TempDir()

	assert.True(t, NeedsCheck(dir))

	require.NoError(t, MarkPassed(dir))
	assert.False(t, NeedsCheck(dir))

	require.NoError(t, ClearMarker(dir))
	assert.True(t, NeedsCheck(dir))
}

func TestMarkPassed_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	require.NoError(t, MarkPassed(dir))
	assert.False(t, NeedsCheck(dir))
}

func TestMarkPassed_WritesTimestamp(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, MarkPassed(dir))

	content, err := os.ReadFile(filepath.Join(dir, MarkerFile))
	require.NoError(t, err)

	_, err = time.Parse(time.RFC3339, string(content))
	assert.NoError(t, err)
}

func TestClearMarker_MissingIsNoError(t *testing.T) {
	assert.NoError(t, ClearMarker(t.TempDir()))
}

func TestMarkerAge(t *testing.T) {
	dir := t.TempDir()

	assert.Zero(t, MarkerAge(dir))

	require.NoError(t, MarkPassed(dir))
	age := MarkerAge(dir)
	assert.GreaterOrEqual(t, age, time.Duration(0))
	assert.Less(t, age, time.Minute)
}

func TestMarkerAge_GarbageContent(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, MarkerFile), []byte("not a timestamp"), 0o644))

	assert.Zero(t, MarkerAge(dir))
}
