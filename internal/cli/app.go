package cli

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/mrz1836/syncstatus/internal/config"
	"github.com/mrz1836/syncstatus/internal/engine"
	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/status"
	"github.com/mrz1836/syncstatus/internal/store"
)

// services are the engines and stores a command works with.
type services struct {
	cfg       *config.Config
	logger    zerolog.Logger
	lastSync  store.LastSync
	sessions  *store.SessionFileStore
	accounts  *engine.AccountManager
	syncer    *engine.SimulatedSyncer
	sync      *engine.SyncManager
	formatter *status.Formatter
}

// openServices wires the stores and engines described by cfg.
// The caller must Close the result.
func openServices(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*services, error) {
	if cfg == nil {
		return nil, errors.ErrConfigNil
	}

	lastSync, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	sessionPath, err := cfg.SessionPath()
	if err != nil {
		_ = lastSync.Close()
		return nil, err
	}
	sessions := store.NewSessionFileStore(sessionPath)

	syncer := &engine.SimulatedSyncer{
		RunDuration: cfg.Sync.RunDuration,
		FailEvery:   cfg.Sync.FailEvery,
	}

	return &services{
		cfg:      cfg,
		logger:   logger,
		lastSync: lastSync,
		sessions: sessions,
		accounts: engine.NewAccountManager(sessions, nil, logger),
		syncer:   syncer,
		sync: engine.NewSyncManager(engine.SyncManagerConfig{
			Syncer:   syncer,
			Store:    lastSync,
			Schedule: cfg.Sync.Schedule,
			Timeout:  cfg.Sync.Timeout,
			Logger:   logger,
		}),
		formatter: status.NewFormatter(
			status.WithLocale(language.Make(cfg.UI.Locale)),
			status.WithLocation(cfg.UI.Location()),
		),
	}, nil
}

// servicesFor opens services for the config and logger stored in ctx.
func servicesFor(ctx context.Context) (*services, error) {
	return openServices(ctx, ConfigFromContext(ctx), *zerolog.Ctx(ctx))
}

// Close stops the scheduler and waits for runs in flight, then closes the store.
func (s *services) Close() {
	s.sync.Stop()
	if err := s.lastSync.Close(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to close last-sync store")
	}
}
