package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevinmichaelchen/repo-lens/internal/config"
)

func New(cfg *config.Config) *zap.Logger {
	var zcfg zap.Config

	if cfg.IsDev() {
		zcfg = zap.NewDevelopmentConfig()
		zcfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		zcfg = zap.NewProductionConfig()
	}

	zcfg.EncoderConfig.TimeKey = "timestamp"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}

	return logger.With(zap.String("service", "repo-lens"))
}
