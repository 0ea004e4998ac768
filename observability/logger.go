package observability

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the structured logging interface used across the module.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)

	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)

	WithFields(fields map[string]any) Logger
	WithErr(err error) Logger
}

type logrusLogger struct {
	entry *logrus.Entry
}

// NewLogger creates a logrus-backed Logger writing to stderr. Stdout is
// reserved for the wire on stdio transports.
func NewLogger() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

// NewLoggerWithLevel creates a logrus-backed Logger with the given level
// name; an unknown name falls back to info.
func NewLoggerWithLevel(level string) Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	l.SetLevel(parsed)
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

// NewLogrusLogger wraps an existing logrus logger.
func NewLogrusLogger(l *logrus.Logger) Logger {
	return &logrusLogger{entry: logrus.NewEntry(l)}
}

func (l *logrusLogger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *logrusLogger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *logrusLogger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *logrusLogger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }

func (l *logrusLogger) Debug(args ...any) { l.entry.Debug(args...) }
func (l *logrusLogger) Info(args ...any)  { l.entry.Info(args...) }
func (l *logrusLogger) Warn(args ...any)  { l.entry.Warn(args...) }
func (l *logrusLogger) Error(args ...any) { l.entry.Error(args...) }

func (l *logrusLogger) WithFields(fields map[string]any) Logger {
	return &logrusLogger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

func (l *logrusLogger) WithErr(err error) Logger {
	return &logrusLogger{entry: l.entry.WithError(err)}
}

// NullLogger discards everything. Useful in tests.
type NullLogger struct{}

// NewNullLogger creates a NullLogger.
func NewNullLogger() Logger {
	return &NullLogger{}
}

func (l *NullLogger) Debugf(format string, args ...any) {}
func (l *NullLogger) Infof(format string, args ...any)  {}
func (l *NullLogger) Warnf(format string, args ...any)  {}
func (l *NullLogger) Errorf(format string, args ...any) {}

func (l *NullLogger) Debug(args ...any) {}
func (l *NullLogger) Info(args ...any)  {}
func (l *NullLogger) Warn(args ...any)  {}
func (l *NullLogger) Error(args ...any) {}

func (l *NullLogger) WithFields(fields map[string]any) Logger { return l }
func (l *NullLogger) WithErr(err error) Logger                { return l }
