// Package telemetry holds the process-wide structured logger.
package telemetry

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger = zap.NewNop()

// Init builds the process logger. jsonLog selects the production JSON
// encoder (Stackdriver-friendly); otherwise a development console logger is
// used. level accepts the usual zap level names, defaulting to info.
func Init(jsonLog bool, level string) error {
	lvl := zap.InfoLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return err
		}
		lvl = parsed
	}

	var cfg zap.Config
	if jsonLog {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	built, err := cfg.Build()
	if err != nil {
		return err
	}
	logger = built
	return nil
}

// DebugEnabled reports whether debug-level logging is active.
func DebugEnabled() bool {
	return logger.Core().Enabled(zap.DebugLevel)
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	logger.Info(msg, zapFields(fields)...)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	logger.Error(msg, zapFields(fields)...)
}

// Debug writes a debug-level log line with the given fields.
func Debug(msg string, fields map[string]any) {
	logger.Debug(msg, zapFields(fields)...)
}

// Sync flushes buffered log entries; call before process exit.
func Sync() {
	_ = logger.Sync()
}

func zapFields(fields map[string]any) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for k, v := range fields {
		out = append(out, zap.Any(k, v))
	}
	return out
}
