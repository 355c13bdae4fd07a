// Package logger holds the shared structured logger for the service.
package logger

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// L is the process-wide logger instance.
var L = logrus.New()

// Init configures JSON output and the log level ("debug", "info", ...).
// Unknown levels fall back to info.
func Init(level string) *logrus.Logger {
	L.SetOutput(os.Stdout)
	L.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "ts",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	L.SetLevel(lvl)
	return L
}

// WithRequestID returns an entry tagged with the request id, or a bare entry
// when the id is empty.
func WithRequestID(requestID string) *logrus.Entry {
	if requestID == "" {
		return logrus.NewEntry(L)
	}
	return L.WithField("request_id", requestID)
}
