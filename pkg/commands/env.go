package commands

import (
	"go.uber.org/zap"

	"tableflip.dev/plancal/pkg/logging"
	"tableflip.dev/plancal/pkg/store"
)

// env is what every command loads before running.
type env struct {
	cfg   store.Config
	p     store.Persistence
	log   *zap.Logger
	color string
}

func loadEnv() (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}

	level := global.LogLevel
	if level == "" {
		level = cfg.LogLevel()
	}
	log, err := logging.New(level)
	if err != nil {
		return nil, err
	}

	p, err := store.Load(cfg, log)
	if err != nil {
		return nil, err
	}

	color := global.Color
	if color == "" {
		color = cfg.Color()
	}
	log.Debug("loaded config",
		zap.String("path", cfg.BasePath()),
		zap.Bool("samples", cfg.Samples()),
		zap.String("color", color))

	return &env{cfg: cfg, p: p, log: log, color: color}, nil
}
