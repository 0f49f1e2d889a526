package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// accessLogFormatter feeds chi's RequestLogger into logrus, so access lines
// share the event log format and panics reach the error log.
type accessLogFormatter struct {
	logger logrus.FieldLogger
}

func (f *accessLogFormatter) NewLogEntry(r *http.Request) middleware.LogEntry {
	entry := f.logger.WithFields(logrus.Fields{
		"remote": r.RemoteAddr,
	})
	if id := middleware.GetReqID(r.Context()); id != "" {
		entry = entry.WithField("request_id", id)
	}
	return &accessLogEntry{
		logger: entry,
		method: r.Method,
		path:   r.URL.Path,
	}
}

type accessLogEntry struct {
	logger *logrus.Entry
	method string
	path   string
}

func (e *accessLogEntry) Write(status, bytes int, header http.Header, elapsed time.Duration, extra interface{}) {
	e.logger.Infof("\"%s %s\" %d %dB in %s", e.method, e.path, status, bytes, elapsed.Round(time.Microsecond))
}

func (e *accessLogEntry) Panic(v interface{}, stack []byte) {
	e.logger.WithField("stack", fmt.Sprintf("%q", stack)).Errorf("panic serving \"%s %s\": %v", e.method, e.path, v)
}
