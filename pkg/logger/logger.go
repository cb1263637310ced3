package logger

import (
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var global atomic.Pointer[zap.Logger]

func init() {
	// A no-op logger keeps early callers safe before Init runs.
	global.Store(zap.NewNop())
}

// Init configures the global logger at the given level. Unknown level strings
// fall back to info.
func Init(level string) error {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build()
	if err != nil {
		return err
	}

	global.Store(built)
	return nil
}

// Replace swaps the global logger and returns a restore function. Intended
// for tests that capture log output with an observer core.
func Replace(l *zap.Logger) func() {
	prev := global.Swap(l)
	return func() { global.Store(prev) }
}

// Logger returns the configured global logger.
func Logger() *zap.Logger {
	return global.Load()
}

// WithModule returns a child logger annotated with the module name.
func WithModule(module string) *zap.Logger {
	return Logger().With(zap.String("module", module))
}

// Sync flushes buffered log entries.
func Sync() error {
	return Logger().Sync()
}

// Info logs at info level using the global logger.
func Info(msg string, fields ...zap.Field) { Logger().Info(msg, fields...) }

// Warn logs at warn level using the global logger.
func Warn(msg string, fields ...zap.Field) { Logger().Warn(msg, fields...) }

// Error logs at error level using the global logger.
func Error(msg string, fields ...zap.Field) { Logger().Error(msg, fields...) }

// Debug logs at debug level using the global logger.
func Debug(msg string, fields ...zap.Field) { Logger().Debug(msg, fields...) }
