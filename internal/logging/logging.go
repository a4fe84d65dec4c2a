// SPDX-License-Identifier: MIT

// Package logging builds the zap logger shared by the server and the CLI.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/janayne/salon/internal/config"
)

// Config describes where and how much to log
type Config struct {
	Level      string // debug, info, warn, error
	OutputPath string // rotated JSON log file, empty disables it
	MaxSize    int    // megabytes per file
	MaxBackups int
	MaxAge     int // days
	Console    bool
}

// DefaultConfig returns console-only info logging
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
		Console:    true,
	}
}

// FromSettings reads the log.* keys from the loaded configuration
func FromSettings() Config {
	cfg := DefaultConfig()
	if level := config.GetString("log.level"); level != "" {
		cfg.Level = level
	}
	cfg.OutputPath = config.GetString("log.path")
	if n := config.GetInt("log.max_size_mb"); n > 0 {
		cfg.MaxSize = n
	}
	if n := config.GetInt("log.max_backups"); n > 0 {
		cfg.MaxBackups = n
	}
	if n := config.GetInt("log.max_age_days"); n > 0 {
		cfg.MaxAge = n
	}
	cfg.Console = config.GetBool("log.console")
	return cfg
}

// New creates a logger writing JSON to a rotated file and text to stdout
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var cores []zapcore.Core

	if cfg.OutputPath != "" {
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.OutputPath,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   true,
		})
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			fileWriter,
			level,
		))
	}

	if cfg.Console {
		consoleEncoder := encoderConfig
		consoleEncoder.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoder),
			zapcore.AddSync(os.Stdout),
			level,
		))
	}

	if len(cores) == 0 {
		return zap.NewNop(), nil
	}

	return zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// OrNop returns l, or a no-op logger when l is nil
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
