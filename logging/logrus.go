package logging

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// LogrusAdapter wraps a logrus logger or entry to implement Logger.
// Attributes become logrus fields.
type LogrusAdapter struct {
	entry *log.Entry
}

// NewLogrusAdapter creates a LogrusAdapter. If logger is nil, the logrus
// standard logger is used.
func NewLogrusAdapter(logger *log.Logger) *LogrusAdapter {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogrusAdapter{entry: log.NewEntry(logger)}
}

// Debug implements Logger.
func (l *LogrusAdapter) Debug(msg string, attrs ...any) { l.with(attrs).Debug(msg) }

// Info implements Logger.
func (l *LogrusAdapter) Info(msg string, attrs ...any) { l.with(attrs).Info(msg) }

// Warn implements Logger.
func (l *LogrusAdapter) Warn(msg string, attrs ...any) { l.with(attrs).Warn(msg) }

// Error implements Logger.
func (l *LogrusAdapter) Error(msg string, attrs ...any) { l.with(attrs).Error(msg) }

// With implements Logger.
func (l *LogrusAdapter) With(attrs ...any) Logger {
	return &LogrusAdapter{entry: l.with(attrs)}
}

func (l *LogrusAdapter) with(attrs []any) *log.Entry {
	if len(attrs) == 0 {
		return l.entry
	}
	return l.entry.WithFields(fields(attrs))
}

// fields converts slog-style alternating pairs to logrus fields. A trailing
// key without a value is recorded under "!BADKEY", as slog does.
func fields(attrs []any) log.Fields {
	f := make(log.Fields, len(attrs)/2+1)
	for i := 0; i < len(attrs); i += 2 {
		if i+1 >= len(attrs) {
			f["!BADKEY"] = attrs[i]
			break
		}
		f[fmt.Sprint(attrs[i])] = attrs[i+1]
	}
	return f
}

var _ Logger = (*LogrusAdapter)(nil)
