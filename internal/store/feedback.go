package store

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/promptdesk/assistant/internal/eventlog"
)

// FeedbackStore is an append-only log of feedback records.
type FeedbackStore interface {
	Append(record FeedbackRecord) error
	All() ([]FeedbackRecord, error)
}

// JSONFeedbackStore keeps every record in a single JSON array on disk.
// Appends rewrite the whole file and are serialized within the process.
type JSONFeedbackStore struct {
	path   string
	logger logrus.FieldLogger
	mu     sync.Mutex
}

func NewJSONFeedbackStore(path string, logger logrus.FieldLogger) *JSONFeedbackStore {
	return &JSONFeedbackStore{path: path, logger: logger}
}

func (s *JSONFeedbackStore) Path() string {
	return s.path
}

func (s *JSONFeedbackStore) All() ([]FeedbackRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUnlocked(), nil
}

func (s *JSONFeedbackStore) Append(record FeedbackRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := append(s.loadUnlocked(), record)
	if err := SaveJSON(s.path, records, s.logger); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	logFeedbackSaved(s.logger, record)
	return nil
}

func (s *JSONFeedbackStore) loadUnlocked() []FeedbackRecord {
	records := LoadJSON(s.path, []FeedbackRecord{}, s.logger)
	if records == nil {
		// a file holding "null"
		return []FeedbackRecord{}
	}
	return records
}

// MemoryFeedbackStore holds records in process memory only.
type MemoryFeedbackStore struct {
	logger  logrus.FieldLogger
	mu      sync.Mutex
	records []FeedbackRecord
}

func NewMemoryFeedbackStore(logger logrus.FieldLogger) *MemoryFeedbackStore {
	return &MemoryFeedbackStore{logger: logger}
}

func (s *MemoryFeedbackStore) All() ([]FeedbackRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FeedbackRecord{}, s.records...), nil
}

func (s *MemoryFeedbackStore) Append(record FeedbackRecord) error {
	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()
	logFeedbackSaved(s.logger, record)
	return nil
}

func logFeedbackSaved(logger logrus.FieldLogger, record FeedbackRecord) {
	logger.Infof("Feedback saved: Query='%s...', Helpful=%t", eventlog.Preview(record.Query), record.Helpful)
}
