package sketch

import (
	"errors"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with sketch-specific context.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithGeoID adds a geo_id field to the logger.
func (l *Logger) WithGeoID(id GeoID) *Logger {
	return &Logger{
		Logger: l.Logger.With("geo_id", int(id)),
	}
}

// WithOp adds an op field to the logger.
func (l *Logger) WithOp(op Op) *Logger {
	return &Logger{
		Logger: l.Logger.With("op", string(op)),
	}
}

// LogOperation logs the outcome of a sketch operation. Unmet geometric
// preconditions are expected user input and logged as warnings.
func (l *Logger) LogOperation(op Op, id GeoID, err error) {
	l = l.WithOp(op).WithGeoID(id)
	switch {
	case err == nil:
		l.Debug("operation completed")
	case errors.Is(err, ErrGeometricPrecondition):
		l.Warn("operation not applicable", "error", err)
	default:
		l.Error("operation failed", "error", err)
	}
}

// LogInternalGeometry logs the creation or removal of internal geometry.
func (l *Logger) LogInternalGeometry(parent GeoID, created, removed int) {
	l.Debug("internal geometry updated",
		"parent", int(parent),
		"created", created,
		"removed", removed,
	)
}

// LogPurge logs the removal of tombstoned constraints.
func (l *Logger) LogPurge(count int) {
	if count == 0 {
		return
	}
	l.Debug("purged constraints",
		"count", count,
	)
}
