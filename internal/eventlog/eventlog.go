// Package eventlog writes the application's text event and error logs.
//
// Every line has the form "[YYYY-MM-DD HH:MM:SS] message". Info-class entries go
// to the event log, error-class entries to the error log, and all of them are
// echoed to the console writer.
package eventlog

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"
	previewLength   = 50
)

var (
	eventLevels = []logrus.Level{logrus.WarnLevel, logrus.InfoLevel, logrus.DebugLevel, logrus.TraceLevel}
	errorLevels = []logrus.Level{logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel}
)

// LineFormatter renders an entry as a single bracketed-timestamp line.
// Entry fields, if any, are appended as sorted key=value pairs.
type LineFormatter struct{}

func (LineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('[')
	b.WriteString(entry.Time.Format(TimestampLayout))
	b.WriteString("] ")
	b.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		keys := make([]string, 0, len(entry.Data))
		for k := range entry.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
		}
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// New builds a logger that routes entries to the given event and error writers.
// console receives every line; pass nil to silence it.
func New(events, errors, console io.Writer) *logrus.Logger {
	if console == nil {
		console = io.Discard
	}

	logger := logrus.New()
	logger.SetFormatter(LineFormatter{})
	logger.SetOutput(console)
	logger.SetLevel(logrus.InfoLevel)
	logger.AddHook(&writer.Hook{Writer: &lockedWriter{w: events}, LogLevels: eventLevels})
	logger.AddHook(&writer.Hook{Writer: &lockedWriter{w: errors}, LogLevels: errorLevels})
	return logger
}

// logrus fires hooks outside its own lock.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// Open is New backed by rotating files. Parent directories are created on the
// first write. The returned closer releases both files.
func Open(eventsPath, errorsPath string, console io.Writer) (*logrus.Logger, io.Closer) {
	files := &rotatingFiles{
		events: newRotator(eventsPath),
		errors: newRotator(errorsPath),
	}
	return New(files.events, files.errors, console), files
}

func newRotator(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
}

type rotatingFiles struct {
	events *lumberjack.Logger
	errors *lumberjack.Logger
}

func (f *rotatingFiles) Close() error {
	errEvents := f.events.Close()
	errErrors := f.errors.Close()
	if errEvents != nil {
		return fmt.Errorf("close event log: %w", errEvents)
	}
	if errErrors != nil {
		return fmt.Errorf("close error log: %w", errErrors)
	}
	return nil
}

// SetLevel applies a textual level such as "DEBUG" or "info". Unknown values
// leave the logger at info.
func SetLevel(logger *logrus.Logger, level string) {
	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
}

// Preview shortens s to the first 50 characters for log messages.
func Preview(s string) string {
	r := []rune(s)
	if len(r) <= previewLength {
		return s
	}
	return string(r[:previewLength])
}
