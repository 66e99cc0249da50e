// ABOUTME: Opens the configured storage backend and wires the app controllers
// ABOUTME: Shared by every command that works on the workspace
package main

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/harperreed/revenueos/charm"
	"github.com/harperreed/revenueos/config"
	"github.com/harperreed/revenueos/controllers"
	"github.com/harperreed/revenueos/db"
	"github.com/harperreed/revenueos/metrics"
	"github.com/harperreed/revenueos/notify"
	"github.com/harperreed/revenueos/rediskv"
	"github.com/harperreed/revenueos/store"
	"github.com/harperreed/revenueos/team"
)

// workspace is an opened store with its controllers.
type workspace struct {
	app     *controllers.AppController
	metrics *metrics.Collector
	close   func() error
}

func openBackend(cfg *config.Config, logger *log.Logger) (store.Backend, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		slots, err := db.OpenSlotStore(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database: %w", err)
		}
		logger.Debug("opened sqlite backend", "path", cfg.DBPath)
		return slots, slots.Close, nil
	case config.BackendCharm:
		charmCfg, err := charm.LoadConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load charm config: %w", err)
		}
		client, err := charm.Open(charmCfg, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open charm kv: %w", err)
		}
		return client, client.Close, nil
	case config.BackendRedis:
		b, err := rediskv.New(rediskv.Config{Addr: cfg.RedisAddr, DB: cfg.RedisDB, Prefix: cfg.RedisPrefix})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Debug("opened redis backend", "addr", cfg.RedisAddr)
		return b, b.Close, nil
	case config.BackendMemory:
		return store.NewMemoryBackend(), func() error { return nil }, nil
	}
	return nil, nil, fmt.Errorf("invalid backend: %s", cfg.Backend)
}

func openWorkspace(cfg *config.Config, logger *log.Logger) (*workspace, error) {
	backend, closeFn, err := openBackend(cfg, logger)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	s := store.New(backend, store.WithLogger(logger), store.WithMetrics(m))
	if err := s.Load(); err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}
	m.Watch(s)
	if report := s.LoadReport(); report.Reason != "" {
		logger.Debug("workspace loaded", "source", report.Source, "reason", report.Reason)
	}

	if cfg.MonthlyGoal > 0 && cfg.MonthlyGoal != s.Get().MonthlyGoal {
		if err := s.SetMonthlyGoal(cfg.MonthlyGoal); err != nil {
			_ = closeFn()
			return nil, fmt.Errorf("failed to set monthly goal: %w", err)
		}
	}

	roster, err := team.Open(backend, s.Get().TeamPerformance, cfg.TeamSeed, s.Now(), logger)
	if err != nil {
		_ = closeFn()
		return nil, fmt.Errorf("failed to open team roster: %w", err)
	}

	return &workspace{
		app:     controllers.NewApp(s, notify.New(), roster),
		metrics: m,
		close:   closeFn,
	}, nil
}
