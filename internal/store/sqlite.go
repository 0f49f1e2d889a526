package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/sirupsen/logrus"
)

// SQLiteFeedbackStore keeps feedback records in an SQLite table. Row ids only
// preserve submission order and are never exposed.
type SQLiteFeedbackStore struct {
	db     *sql.DB
	logger logrus.FieldLogger
}

func NewSQLiteFeedbackStore(dataSourceName string, logger logrus.FieldLogger) (*SQLiteFeedbackStore, error) {
	if err := ensureDatabaseDir(dataSourceName); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite allows a single writer; one connection also keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLiteFeedbackStore{db: db, logger: logger}
	if err = store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func ensureDatabaseDir(dataSourceName string) error {
	if dataSourceName == ":memory:" || strings.HasPrefix(dataSourceName, "file:") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(dataSourceName), 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

func (s *SQLiteFeedbackStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteFeedbackStore) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS feedback (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        query TEXT NOT NULL,
        response TEXT NOT NULL,
        helpful BOOLEAN NOT NULL DEFAULT FALSE,
        timestamp TEXT NOT NULL
    );
    `
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteFeedbackStore) Append(record FeedbackRecord) error {
	stmt, err := s.db.Prepare("INSERT INTO feedback (query, response, helpful, timestamp) VALUES (?, ?, ?, ?)")
	if err != nil {
		s.logger.Errorf("Failed to prepare feedback insert: %v", err)
		return fmt.Errorf("failed to prepare feedback insert: %w", err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(record.Query, record.Response, record.Helpful, record.Timestamp)
	if err != nil {
		s.logger.Errorf("Failed to insert feedback: %v", err)
		return fmt.Errorf("failed to execute feedback insert: %w", err)
	}
	logFeedbackSaved(s.logger, record)
	return nil
}

func (s *SQLiteFeedbackStore) All() ([]FeedbackRecord, error) {
	rows, err := s.db.Query("SELECT query, response, helpful, timestamp FROM feedback ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback: %w", err)
	}
	defer rows.Close()

	records := []FeedbackRecord{}
	for rows.Next() {
		var rec FeedbackRecord
		if err := rows.Scan(&rec.Query, &rec.Response, &rec.Helpful, &rec.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan feedback row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate feedback rows: %w", err)
	}
	return records, nil
}
