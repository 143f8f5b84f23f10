package logger

import (
	"context"

	"go.uber.org/zap"
)

// Standard field names for consistent structured logging.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity and context
	FieldRunID     = "run_id"
	FieldMacro     = "macro"
	FieldComponent = "component"

	// Macro state
	FieldStatus   = "status"
	FieldFrom     = "from"
	FieldReason   = "reason"
	FieldExecuted = "executed"
	FieldRepeat   = "repeat"

	// Click details
	FieldPoint    = "point"
	FieldResolved = "resolved"
	FieldButton   = "button"
	FieldClicks   = "clicks"
	FieldHold     = "hold"
	FieldDelay    = "delay"

	// Capture and hook
	FieldTimeout = "timeout"
	FieldKeycode = "keycode"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError    = "error"
	FieldFailures = "failures"

	// Files and paths
	FieldPath = "path"

	// Symbol tag (see sym package)
	FieldSymbol = "symbol"
)

// Context keys for propagating logging context
type contextKey string

const (
	runIDKey     contextKey = "logger_run_id"
	componentKey contextKey = "logger_component"
)

// WithRunID adds a run ID to the context for logging
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// WithComponent adds a component name to the context for logging
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, componentKey, component)
}

// FieldsFromContext extracts logging fields from context.
// Returns key-value pairs suitable for use with Infow/Errorw/etc.
func FieldsFromContext(ctx context.Context) []interface{} {
	var fields []interface{}

	if runID, ok := ctx.Value(runIDKey).(string); ok && runID != "" {
		fields = append(fields, FieldRunID, runID)
	}
	if component, ok := ctx.Value(componentKey).(string); ok && component != "" {
		fields = append(fields, FieldComponent, component)
	}

	return fields
}

// FromContext returns base with the fields carried by ctx attached.
func FromContext(ctx context.Context, base *zap.SugaredLogger) *zap.SugaredLogger {
	fields := FieldsFromContext(ctx)
	if len(fields) == 0 {
		return base
	}
	return base.With(fields...)
}

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	svc := engine.NewService(executor, engine.DefaultConfig(), logger.ComponentLogger("engine"))
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}
