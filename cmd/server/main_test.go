package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptdesk/assistant/internal/config"
	"github.com/promptdesk/assistant/internal/eventlog"
	"github.com/promptdesk/assistant/internal/store"
)

func TestOpenFeedbackStore(t *testing.T) {
	dir := t.TempDir()
	logger := eventlog.New(&bytes.Buffer{}, &bytes.Buffer{}, nil)

	tests := []struct {
		backend string
		want    any
	}{
		{config.BackendJSON, &store.JSONFeedbackStore{}},
		{config.BackendSQLite, &store.SQLiteFeedbackStore{}},
		{config.BackendMemory, &store.MemoryFeedbackStore{}},
	}
	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := config.Config{
				FeedbackBackend: tt.backend,
				FeedbackFile:    filepath.Join(dir, "feedback_log.json"),
				DatabaseURL:     filepath.Join(dir, "feedback.db"),
			}

			s, closeStore, err := openFeedbackStore(cfg, logger)
			require.NoError(t, err)
			defer closeStore()

			assert.IsType(t, tt.want, s)
			require.NoError(t, s.Append(store.FeedbackRecord{Query: "Q", Response: "R", Helpful: true, Timestamp: "t"}))
			records, err := s.All()
			require.NoError(t, err)
			assert.NotEmpty(t, records)
		})
	}
}

func TestPrintFeedback(t *testing.T) {
	var out bytes.Buffer
	records := []store.FeedbackRecord{{Query: "Q", Response: "R", Helpful: false, Timestamp: "2025-01-01T00:00:00.000000"}}

	require.NoError(t, printFeedback(&out, records))

	var decoded []store.FeedbackRecord
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, records, decoded)
	assert.Contains(t, out.String(), "\n    {\n        \"query\": \"Q\"")
}

func TestPrintFeedback_EmptyIsArray(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printFeedback(&out, []store.FeedbackRecord{}))
	assert.Equal(t, "[]\n", out.String())
}
