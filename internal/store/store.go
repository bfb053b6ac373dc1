// Package store persists the last sync outcome and the account session.
//
// Last-sync stores never fail on Read: an unreachable backend reads as
// "never synced" and the failure is logged. Record reports errors so the
// sync engine can log them.
//
// Import rules:
//   - CAN import: internal/config, internal/constants, internal/ctxutil,
//     internal/domain, internal/errors, internal/flock
//   - MUST NOT import: internal/engine, internal/screen, internal/tui, internal/cli
package store

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mrz1836/syncstatus/internal/config"
	"github.com/mrz1836/syncstatus/internal/constants"
	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/errors"
)

// File permissions for state files.
const (
	dirPerm  = 0o750
	filePerm = 0o600
)

// LastSync is a last-sync outcome store.
type LastSync interface {
	Read() domain.SyncOutcome
	Record(ctx context.Context, outcome domain.SyncOutcome) error
	Close() error
}

// Open returns the LastSync selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (LastSync, error) {
	if cfg == nil {
		return nil, errors.ErrConfigNil
	}
	logger = logger.With().Str("component", "store").Str("backend", cfg.Store.Backend).Logger()

	switch cfg.Store.Backend {
	case constants.StoreBackendBolt:
		path, err := cfg.StatePath()
		if err != nil {
			return nil, err
		}
		return OpenBolt(path, logger)
	case constants.StoreBackendRedis:
		return OpenRedis(ctx, cfg.Store.RedisURL, cfg.Store.RedisKey, logger)
	case constants.StoreBackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errors.Wrapf(errors.ErrUnknownStoreBackend, "store.backend %q", cfg.Store.Backend)
	}
}
