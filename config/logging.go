package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogConfig selects the zap logger flavor
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level" env:"EMBERFIELD_LOG_LEVEL"`

	// Development switches to the human-readable console encoder
	Development bool `yaml:"development" env:"EMBERFIELD_LOG_DEV"`
}

// Build constructs the logger. verbose forces debug level.
func (c LogConfig) Build(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if c.Development {
		zcfg = zap.NewDevelopmentConfig()
	}

	level := zapcore.InfoLevel
	if c.Level != "" {
		parsed, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", c.Level, err)
		}
		level = parsed
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
