// Package logging provides a zap logger carried on the request context.
package logging

import (
	"context"
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const loggerKey = contextKey("logger")

var (
	fallbackLogger *zap.SugaredLogger
	fallbackOnce   sync.Once
)

// DefaultLogger returns the process-wide fallback logger. Debug level is
// enabled with LOG_DEBUG=true.
func DefaultLogger() *zap.SugaredLogger {
	fallbackOnce.Do(func() {
		debug, _ := strconv.ParseBool(os.Getenv("LOG_DEBUG"))
		fallbackLogger = NewLogger(debug)
	})
	return fallbackLogger
}

// NewLogger builds a production zap logger writing to stderr.
func NewLogger(debug bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// WithLogger attaches the logger to the context.
func WithLogger(ctx context.Context, logger *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the logger stored in the context, falling back to the
// process-wide logger.
func FromContext(ctx context.Context) *zap.SugaredLogger {
	if logger, ok := ctx.Value(loggerKey).(*zap.SugaredLogger); ok {
		return logger
	}
	return DefaultLogger()
}
