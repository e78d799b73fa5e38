// Package logging builds the zap logger the framework writes through.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/km-arc/go-inject/framework/config"
)

// New builds a logger for env: JSON production settings in production,
// console development settings elsewhere. cfg.Level and cfg.Format override
// the defaults.
//
//	log, err := logging.New(cfg.Log, cfg.App.Env)
func New(cfg config.LogConfig, env string) (*zap.Logger, error) {
	var zc zap.Config
	if env == "production" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		zc.Level = level
	}

	switch strings.ToLower(cfg.Format) {
	case "":
	case "json":
		zc.Encoding = "json"
		zc.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	case "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("logging: unknown format %q", cfg.Format)
	}

	return zc.Build()
}

// MustNew is New, falling back to a development logger when the
// configuration is invalid.
func MustNew(cfg config.LogConfig, env string) *zap.Logger {
	log, err := New(cfg, env)
	if err == nil {
		return log
	}
	fallback, ferr := zap.NewDevelopment()
	if ferr != nil {
		return zap.NewNop()
	}
	fallback.Warn("invalid log configuration, using development logger", zap.Error(err))
	return fallback
}
