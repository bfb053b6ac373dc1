package config

import (
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/text/language"

	"github.com/mrz1836/syncstatus/internal/constants"
	"github.com/mrz1836/syncstatus/internal/errors"
)

const (
	minRefreshInterval = time.Second
	minMaxWidth        = 20
)

// Validate checks the configuration for invalid or inconsistent values and
// returns the first failure, wrapping one of the ErrConfigInvalid* sentinels.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}
	if err := validateSyncConfig(&cfg.Sync); err != nil {
		return err
	}
	if err := validateStoreConfig(&cfg.Store); err != nil {
		return err
	}
	return validateUIConfig(&cfg.UI)
}

func validateSyncConfig(cfg *SyncConfig) error {
	if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
		return errors.Wrapf(errors.ErrConfigInvalidSync,
			"sync.schedule %q: %v", cfg.Schedule, err)
	}
	if cfg.RunDuration < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidSync,
			"sync.run_duration cannot be negative, got %s", cfg.RunDuration)
	}
	if cfg.FailEvery < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidSync,
			"sync.fail_every cannot be negative, got %d", cfg.FailEvery)
	}
	if cfg.Timeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalidSync,
			"sync.timeout must be positive, got %s", cfg.Timeout)
	}
	return nil
}

func validateStoreConfig(cfg *StoreConfig) error {
	switch cfg.Backend {
	case constants.StoreBackendBolt, constants.StoreBackendMemory:
		return nil
	case constants.StoreBackendRedis:
		if cfg.RedisURL == "" {
			return errors.Wrap(errors.ErrConfigInvalidStore,
				"store.redis_url is required for the redis backend")
		}
		if cfg.RedisKey == "" {
			return errors.Wrap(errors.ErrConfigInvalidStore,
				"store.redis_key must not be empty")
		}
		return nil
	default:
		return errors.Wrapf(errors.ErrUnknownStoreBackend,
			"store.backend %q", cfg.Backend)
	}
}

func validateUIConfig(cfg *UIConfig) error {
	if _, err := language.Parse(cfg.Locale); err != nil {
		return errors.Wrapf(errors.ErrConfigInvalidUI,
			"ui.locale %q: %v", cfg.Locale, err)
	}
	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			return errors.Wrapf(errors.ErrConfigInvalidUI,
				"ui.timezone %q: %v", cfg.Timezone, err)
		}
	}
	if cfg.RefreshInterval < minRefreshInterval {
		return errors.Wrapf(errors.ErrConfigInvalidUI,
			"ui.refresh_interval must be at least %s, got %s", minRefreshInterval, cfg.RefreshInterval)
	}
	if cfg.MaxWidth < minMaxWidth {
		return errors.Wrapf(errors.ErrConfigInvalidUI,
			"ui.max_width must be at least %d, got %d", minMaxWidth, cfg.MaxWidth)
	}
	return nil
}
