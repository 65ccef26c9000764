package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jask/tenantadmin/internal/api"
	"github.com/jask/tenantadmin/internal/config"
	"github.com/jask/tenantadmin/internal/database"
	"github.com/jask/tenantadmin/internal/database/repository"
	"github.com/jask/tenantadmin/internal/logger"
	"github.com/jask/tenantadmin/internal/management"
	"github.com/jask/tenantadmin/internal/secrets"
	"github.com/jask/tenantadmin/internal/service"
)

var configPath string

func loadConfig() (config.Config, error) {
	if configPath != "" {
		if err := os.Setenv("TENANTADMIN_CONFIG", configPath); err != nil {
			return config.Config{}, err
		}
	}
	return config.Load()
}

// newLogger logs to the configured destination for the console, which owns
// the terminal, and to stderr for every other command.
func newLogger(cfg config.Config, console bool) (*slog.Logger, io.Closer, error) {
	lc := cfg.Log
	if !console {
		lc.Path = "stderr"
	}
	return logger.New(lc)
}

// localStore is the sqlite-backed registry.
type localStore struct {
	db          *sql.DB
	registry    *service.RegistryService
	maintenance *service.MaintenanceService
}

func openLocal(ctx context.Context, cfg config.Config) (*localStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.SeedDefaults(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}
	return &localStore{
		db:          db,
		registry:    service.NewRegistryService(repository.NewCompanyRepo(db), repository.NewPlanRepo(db)),
		maintenance: &service.MaintenanceService{DB: db},
	}, nil
}

func (s *localStore) Close() error { return s.db.Close() }

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// openBackend returns the backend selected by backend.mode and a closer for it.
func openBackend(ctx context.Context, cfg config.Config) (management.Backend, io.Closer, error) {
	if cfg.Backend.Mode == config.BackendHTTP {
		return api.NewClient(cfg.Backend.BaseURL, resolveToken(cfg), cfg.Backend.Timeout), closerFunc(func() error { return nil }), nil
	}
	store, err := openLocal(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return store.registry, store, nil
}

func requireLocal(cfg config.Config, cmd string) error {
	if cfg.Backend.Mode != config.BackendLocal {
		return fmt.Errorf("%s needs backend.mode=local (got %q)", cmd, cfg.Backend.Mode)
	}
	return nil
}

// resolveToken prefers the env var and falls back to the stored token.
func resolveToken(cfg config.Config) string {
	if t := cfg.Backend.Token(); t != "" {
		return t
	}
	store, err := secrets.DefaultStore()
	if err != nil {
		return ""
	}
	t, err := store.FetchToken(cfg.Backend.BaseURL)
	if err != nil && !errors.Is(err, secrets.ErrTokenNotFound) {
		slog.Warn("read stored token", "error", err)
	}
	return t
}
