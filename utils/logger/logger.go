package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the process-wide logger. It discards everything until Init is called.
var Logger = zap.NewNop().Sugar()

// Config contains configuration for the logger
type Config struct {
	Debug     bool   // Enable debug level logging
	LogFormat string // "json" or "human"
	LogFile   string // Optional path to an additional log file
}

// DefaultConfig returns a human-readable, info-level configuration
func DefaultConfig() Config {
	return Config{
		LogFormat: "human",
	}
}

// Init builds the global logger from cfg
func Init(cfg Config) error {
	var zapConfig zap.Config

	if cfg.LogFormat == "json" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	outputPaths := []string{"stderr"}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		outputPaths = append(outputPaths, cfg.LogFile)
	}
	zapConfig.OutputPaths = outputPaths

	if cfg.Debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	built, err := zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	Logger = built.Sugar()
	return nil
}

// Info logs a message with optional key/value pairs
func Info(message string, keysAndValues ...interface{}) {
	Logger.Infow(message, keysAndValues...)
}

// Warn logs a warning with optional key/value pairs
func Warn(message string, keysAndValues ...interface{}) {
	Logger.Warnw(message, keysAndValues...)
}

// Error logs err under the "error" key
func Error(message string, err error, keysAndValues ...interface{}) {
	if err != nil {
		keysAndValues = append(keysAndValues, "error", err.Error())
	}
	Logger.Errorw(message, keysAndValues...)
}

// Debug logs at debug level
func Debug(message string, keysAndValues ...interface{}) {
	Logger.Debugw(message, keysAndValues...)
}

// With returns a child logger carrying the given fields
func With(keysAndValues ...interface{}) *zap.SugaredLogger {
	return Logger.With(keysAndValues...)
}

// Sync flushes any buffered log entries
func Sync() error {
	return Logger.Sync()
}
