// Package cli provides the startup steps shared by command entry points:
// environment loading, configuration, logging and store bootstrap.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/joho/godotenv"

	"kakeibo/internal/backend"
	"kakeibo/internal/config"
	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
	"kakeibo/internal/log"
)

// LoadEnvFile loads .env files for local development. A missing file is
// not an error.
func LoadEnvFile(paths ...string) {
	_ = godotenv.Load(paths...)
}

// LoadAndValidateConfig reads the environment, applies overrides and
// validates the result.
func LoadAndValidateConfig(overrides ...func(*config.Config)) (*config.Config, error) {
	cfg := config.Load()
	for _, o := range overrides {
		o(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the process logger from cfg and installs it as the
// slog default.
func SetupLogger(cfg *config.Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	lc := log.DefaultConfig()
	lc.Level = level
	lc.Format = cfg.LogFormat
	logger := log.New(lc)
	log.SetDefault(logger)
	return logger, nil
}

// OpenStore creates the configured blob backend and loads the ledger from
// it. Unreadable persisted data is logged and the store starts empty; any
// other failure is returned. The returned cleanup closes the backend.
func OpenStore(ctx context.Context, cfg *config.Config, logger *log.Logger, opts ...ledger.Option) (*ledger.Store, func(), error) {
	bc, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	res, err := backend.NewFactory(logger).CreateBackend(ctx, bc)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if res.Cleanup == nil {
			return
		}
		if err := res.Cleanup(); err != nil {
			logger.Warn("backend cleanup failed", log.FieldError, err)
		}
	}

	store := ledger.New(res.Store, append([]ledger.Option{ledger.WithLogger(logger)}, opts...)...)
	if err := store.Refresh(ctx); err != nil {
		if !errors.Is(err, core.ErrStorageRead) {
			cleanup()
			return nil, nil, fmt.Errorf("loading ledger: %w", err)
		}
		logger.Warn("persisted data unreadable, starting empty", log.FieldError, err, log.FieldBackend, bc.Type.String())
	}
	logger.Debug("store ready", log.FieldBackend, bc.Type.String(), log.FieldCount, len(store.List()))
	return store, cleanup, nil
}
