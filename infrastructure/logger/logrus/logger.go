// ABOUTME: Logger implementation backed by logrus
// ABOUTME: Maps the core Logger interface onto logrus levels and structured fields

package logrus

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Logger implements the core Logger interface using logrus.
type Logger struct {
	entry *log.Logger
}

// Options configures the logger.
type Options struct {
	// Level is the minimum level that gets emitted. Empty means info.
	Level string

	// JSON switches the output to JSON formatting for log collectors.
	JSON bool

	// Output overrides the destination; nil means stdout.
	Output io.Writer
}

// New creates a logrus-backed logger.
func New(opts Options) *Logger {
	l := log.New()

	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		level = log.InfoLevel
	}
	l.SetLevel(level)

	if opts.JSON {
		l.SetFormatter(&log.JSONFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	if opts.Output != nil {
		l.SetOutput(opts.Output)
	} else {
		l.SetOutput(os.Stdout)
	}

	return &Logger{entry: l}
}

// Debug logs a debug message with optional structured fields.
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(log.Fields(fields)).Debug(msg)
}

// Info logs an info message with optional structured fields.
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(log.Fields(fields)).Info(msg)
}

// Warn logs a warning message with optional structured fields.
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(log.Fields(fields)).Warn(msg)
}

// Error logs an error message with optional structured fields.
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(log.Fields(fields)).Error(msg)
}
