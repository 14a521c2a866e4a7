package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps the zap logger used by the backtest engine and its data sources.
type Logger struct {
	*zap.Logger
}

// NewLogger creates a new logger instance with production configuration
func NewLogger() (*Logger, error) {
	return newLogger(zapcore.InfoLevel)
}

// NewDebugLogger creates a production-encoded logger that also emits debug entries.
// The backtest CLI uses it when --verbose is set.
func NewDebugLogger() (*Logger, error) {
	return newLogger(zapcore.DebugLevel)
}

// NewNopLogger returns a logger that discards everything. Used by tests and by
// library callers that do not want engine output.
func NewNopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

func newLogger(level zapcore.Level) (*Logger, error) {
	config := zap.NewProductionConfig()

	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(level)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger: zapLogger,
	}, nil
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	if l.Logger != nil {
		return l.Logger.Sync()
	}

	return nil
}
