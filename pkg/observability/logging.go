// Package observability provides the structured logging bootstrap shared by
// Vireo's engine components. Logging is built on zap; components take or
// look up a *zap.Logger and attach their own fields.
package observability

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggingConfig configures the engine-wide logger.
type LoggingConfig struct {
	// Level is the minimum enabled level. Defaults to info; overridden by
	// the VIREO_LOG_LEVEL environment variable when set.
	Level zapcore.Level

	// Development enables the development config (console encoding,
	// DPanic panics).
	Development bool

	// OutputPaths and ErrorPaths follow zap.Config semantics.
	OutputPaths []string
	ErrorPaths  []string
}

var (
	loggerMu sync.RWMutex
	logger   = zap.NewNop()
)

// InitLogging builds the engine logger from config and installs it as both
// the package logger and zap's global logger.
func InitLogging(config LoggingConfig) error {
	level := config.Level
	if env := os.Getenv("VIREO_LOG_LEVEL"); env != "" {
		if err := level.Set(env); err != nil {
			return fmt.Errorf("invalid VIREO_LOG_LEVEL %q: %w", env, err)
		}
	}

	logConfig := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: config.Development,
		Encoding:    "json",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "timestamp",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "message",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      config.OutputPaths,
		ErrorOutputPaths: config.ErrorPaths,
	}
	if config.Development {
		logConfig.Encoding = "console"
	}
	if len(logConfig.OutputPaths) == 0 {
		logConfig.OutputPaths = []string{"stdout"}
	}
	if len(logConfig.ErrorOutputPaths) == 0 {
		logConfig.ErrorOutputPaths = []string{"stderr"}
	}

	built, err := logConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	SetLogger(built)
	zap.ReplaceGlobals(built)

	return nil
}

// GetLogger returns the engine logger. Before InitLogging it is a no-op
// logger, so library code can log unconditionally.
func GetLogger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger replaces the engine logger. Intended for embedding applications
// that manage their own zap configuration.
func SetLogger(l *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	logger = l
}
