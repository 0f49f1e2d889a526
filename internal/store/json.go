package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// LoadJSON decodes the JSON value stored at path. A missing, unreachable or
// empty file yields defaultValue silently; an unreadable or malformed file yields
// defaultValue and one error-log entry.
func LoadJSON[T any](path string, defaultValue T, logger logrus.FieldLogger) T {
	// Stat failures of any kind count as a missing file.
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return defaultValue
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Errorf("An unexpected error occurred while loading %s: %v", path, err)
		return defaultValue
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		logger.Errorf("Error decoding JSON from %s. Returning default value.", path)
		return defaultValue
	}
	return value
}

// SaveJSON writes value to path as indented JSON, creating parent directories.
// Failures are logged and returned.
func SaveJSON(path string, value any, logger logrus.FieldLogger) error {
	if err := writeJSON(path, value); err != nil {
		logger.Errorf("An unexpected error occurred while saving to %s: %v", path, err)
		return err
	}
	return nil
}

func writeJSON(path string, value any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(value); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}
