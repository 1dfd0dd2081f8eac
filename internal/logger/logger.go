package logger

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
)

// ContextKey is the type for context keys used in logging
type ContextKey string

const (
	// DevisIDKey is the context key for devis_id
	DevisIDKey ContextKey = "devis_id"
	// CorrelationIDKey is the context key for correlation_id
	CorrelationIDKey ContextKey = "correlation_id"
)

var log = logrus.New()

// Init configures the global structured logger. Unknown levels fall back
// to info; any format other than "text" selects JSON output.
func Init(level, format string) {
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	if format == "text" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
}

// WithContext creates a log entry carrying the context values
// (devis_id, correlation_id)
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(log)

	if devisID, ok := ctx.Value(DevisIDKey).(int64); ok {
		entry = entry.WithField("devis_id", devisID)
	}
	if correlationID, ok := ctx.Value(CorrelationIDKey).(string); ok {
		entry = entry.WithField("correlation_id", correlationID)
	}

	return entry
}

// withArgs folds alternating key/value pairs into log fields
func withArgs(entry *logrus.Entry, args []any) *logrus.Entry {
	if len(args) == 0 {
		return entry
	}
	fields := logrus.Fields{}
	for i := 0; i+1 < len(args); i += 2 {
		if key, ok := args[i].(string); ok {
			fields[key] = args[i+1]
		}
	}
	return entry.WithFields(fields)
}

// Info logs an info message with context
func Info(ctx context.Context, msg string, args ...any) {
	withArgs(WithContext(ctx), args).Info(msg)
}

// Warn logs a warning message with context
func Warn(ctx context.Context, msg string, args ...any) {
	withArgs(WithContext(ctx), args).Warn(msg)
}

// Debug logs a debug message with context
func Debug(ctx context.Context, msg string, args ...any) {
	withArgs(WithContext(ctx), args).Debug(msg)
}

// LogError logs an error with its message attached as a field
func LogError(ctx context.Context, msg string, err error, args ...any) {
	withArgs(WithContext(ctx).WithField("error", err.Error()), args).Error(msg)
}

// LogStatusTransition logs a devis status transition
func LogStatusTransition(ctx context.Context, devisID int64, oldStatus, newStatus string) {
	WithContext(ctx).WithFields(logrus.Fields{
		"devis_id":   devisID,
		"old_status": oldStatus,
		"new_status": newStatus,
	}).Info("Devis status transition")
}
