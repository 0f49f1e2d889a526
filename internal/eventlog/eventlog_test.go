package eventlog

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var linePattern = regexp.MustCompile(`^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] (.*)$`)

func TestNew_RoutesByLevel(t *testing.T) {
	var events, errs, console bytes.Buffer
	logger := New(&events, &errs, &console)

	logger.Info("Application started")
	logger.Error("GOOGLE_API_KEY environment variable not set")

	require.Equal(t, 1, strings.Count(events.String(), "\n"))
	require.Equal(t, 1, strings.Count(errs.String(), "\n"))
	assert.Contains(t, events.String(), "] Application started")
	assert.NotContains(t, events.String(), "GOOGLE_API_KEY")
	assert.Contains(t, errs.String(), "] GOOGLE_API_KEY environment variable not set")
	assert.Equal(t, 2, strings.Count(console.String(), "\n"))
}

func TestLineFormatter_Format(t *testing.T) {
	var events bytes.Buffer
	logger := New(&events, &bytes.Buffer{}, nil)

	logger.WithFields(logrus.Fields{"b": 2, "a": "x"}).Info("hello")

	line := strings.TrimSuffix(events.String(), "\n")
	m := linePattern.FindStringSubmatch(line)
	require.NotNil(t, m, "unexpected line %q", line)
	assert.Equal(t, "hello a=x b=2", m[1])
}

func TestOpen_CreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	eventsPath := filepath.Join(dir, "nested", "logs.txt")
	errorsPath := filepath.Join(dir, "other", "errors.log")

	logger, closer := Open(eventsPath, errorsPath, nil)
	logger.Info("first")
	logger.Info("second")
	logger.Error("broken")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(eventsPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, linePattern.MatchString(lines[0]))
	assert.True(t, strings.HasSuffix(lines[1], "] second"))

	data, err = os.ReadFile(errorsPath)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(data)), "] broken"))
}

func TestOpen_Appends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.txt")
	errorsPath := filepath.Join(t.TempDir(), "errors.log")

	logger, closer := Open(path, errorsPath, nil)
	logger.Info("one")
	require.NoError(t, closer.Close())

	logger, closer = Open(path, errorsPath, nil)
	logger.Info("two")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))
}

func TestSetLevel(t *testing.T) {
	logger := New(&bytes.Buffer{}, &bytes.Buffer{}, nil)

	SetLevel(logger, "DEBUG")
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	SetLevel(logger, "nonsense")
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short"))
	long := strings.Repeat("é", 80)
	assert.Equal(t, strings.Repeat("é", 50), Preview(long))
}
