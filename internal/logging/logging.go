// Package logging configures the logrus loggers used by coatingtk.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "COATINGTK_LOG_LEVEL"

// Format selects the log output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures New
type Options struct {
	Level  string
	Format Format
	Output io.Writer
}

// New creates a logger writing to opts.Output (stderr by default)
func New(opts Options) (*logrus.Logger, error) {
	logger := logrus.New()

	if opts.Output != nil {
		logger.SetOutput(opts.Output)
	} else {
		logger.SetOutput(os.Stderr)
	}

	switch opts.Format {
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	case FormatText, "":
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	level := opts.Level
	if env := os.Getenv(EnvLogLevel); env != "" {
		level = env
	}
	if level == "" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logLevel, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %v", level, err)
		}
		logger.SetLevel(logLevel)
	}

	return logger, nil
}

// Discard returns a logger that drops everything. Library types use it when no
// logger is supplied.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

// Component returns an entry tagged with the given component name
func Component(logger logrus.FieldLogger, name string) logrus.FieldLogger {
	if logger == nil {
		logger = Discard()
	}
	return logger.WithField("component", name)
}
