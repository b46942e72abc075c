// Package logger provides the shared zap logger. Every entry carries the
// service name and environment so aggregated logs stay attributable.
package logger

import (
	"context"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Additional-Code/ricebowl/internal/config"
)

// Module exposes the configured logger to the Fx container.
var Module = fx.Provide(New)

// New builds the logger from observability settings. The console encoding is
// meant for local runs; json is the production default.
func New(lc fx.Lifecycle, cfg config.Config) (*zap.Logger, error) {
	obs := cfg.Observability

	level := zapcore.InfoLevel
	if err := level.Set(strings.ToLower(obs.LogLevel)); err != nil {
		level = zapcore.InfoLevel
	}

	logger, err := buildConfig(obs.LogEncoding, level).Build()
	if err != nil {
		return nil, err
	}

	logger = logger.With(
		zap.String("service", obs.ServiceName),
		zap.String("environment", obs.Environment),
	)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return logger.Sync()
		},
	})

	return logger, nil
}

func buildConfig(encoding string, level zapcore.Level) zap.Config {
	if encoding == "console" {
		zapCfg := zap.NewDevelopmentConfig()
		zapCfg.Level = zap.NewAtomicLevelAt(level)
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339)
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return zapCfg
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.Encoding = encoding
	zapCfg.EncoderConfig.TimeKey = "ts"
	zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout(time.RFC3339Nano)
	zapCfg.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder
	zapCfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	return zapCfg
}
