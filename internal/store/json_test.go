package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSON_DefaultForMissingFile(t *testing.T) {
	var logs testLogs
	got := LoadJSON(filepath.Join(t.TempDir(), "nope.json"), map[string]int{"x": 1}, logs.logger())
	assert.Equal(t, map[string]int{"x": 1}, got)
	assert.Zero(t, lineCount(&logs.errors))
}

func TestLoadJSON_DefaultForPathUnderFile(t *testing.T) {
	var logs testLogs
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	got := LoadJSON(filepath.Join(blocker, "data.json"), []string{"default"}, logs.logger())
	assert.Equal(t, []string{"default"}, got)
	assert.Zero(t, lineCount(&logs.errors))
}

func TestLoadJSON_WrongShape(t *testing.T) {
	var logs testLogs
	path := filepath.Join(t.TempDir(), "obj.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"query":"Q"}`), 0o644))

	got := LoadJSON(path, []FeedbackRecord{}, logs.logger())
	assert.Empty(t, got)
	assert.Equal(t, 1, lineCount(&logs.errors))
}

func TestSaveJSON_RoundTrip(t *testing.T) {
	var logs testLogs
	path := filepath.Join(t.TempDir(), "a", "b", "settings.json")

	require.NoError(t, SaveJSON(path, map[string]string{"k": "v"}, logs.logger()))

	got := LoadJSON(path, map[string]string{}, logs.logger())
	assert.Equal(t, map[string]string{"k": "v"}, got)
	assert.Zero(t, lineCount(&logs.errors))
}
