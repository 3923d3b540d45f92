// Package logger provides structured logging for the audit service.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Field is a structured log field.
type Field = zapcore.Field

// Logger defines the interface for structured logging.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Sync() error
}

type zapLogger struct {
	logger *zap.Logger
}

func (l *zapLogger) Debug(msg string, fields ...Field) {
	l.logger.Debug(msg, fields...)
}

func (l *zapLogger) Info(msg string, fields ...Field) {
	l.logger.Info(msg, fields...)
}

func (l *zapLogger) Warn(msg string, fields ...Field) {
	l.logger.Warn(msg, fields...)
}

func (l *zapLogger) Error(msg string, fields ...Field) {
	l.logger.Error(msg, fields...)
}

func (l *zapLogger) With(fields ...Field) Logger {
	return &zapLogger{
		logger: l.logger.With(fields...),
	}
}

func (l *zapLogger) Sync() error {
	return l.logger.Sync()
}

// New creates a logger. Development mode uses a colored console encoder at
// debug level; production mode uses the zap JSON encoder at info level.
func New(development bool) (Logger, error) {
	var z *zap.Logger
	var err error

	if development {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Sampling = nil

		z, err = cfg.Build(zap.AddStacktrace(zapcore.WarnLevel))
	} else {
		z, err = zap.NewProduction()
	}

	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return &zapLogger{logger: z}, nil
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() Logger {
	return &zapLogger{logger: zap.NewNop()}
}
