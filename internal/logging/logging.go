// Package logging builds the application's zap logger.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alarm-timer/alarm-timer/internal/config"
)

// New creates a zap logger from the logging settings.
// It outputs to the console and optionally to a JSON log file. A log file
// that cannot be opened is reported on warn and skipped.
func New(cfg config.LoggingConfig, warn io.Writer) *zap.Logger {
	level := ParseLevel(cfg.Level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.AddSync(os.Stdout), level),
	}

	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
		if err != nil {
			fmt.Fprintf(warn, "alarm-timer: log file %s unavailable, logging to console only: %v\n", cfg.File, err)
		} else {
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(file), level))
		}
	}

	return zap.New(zapcore.NewTee(cores...))
}

// ParseLevel maps a config level name to a zap level. Unknown names mean info.
func ParseLevel(name string) zapcore.Level {
	switch name {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
