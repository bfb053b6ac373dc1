// Package config provides layered configuration for syncstatus.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (--config selects an explicit file)
//  2. Environment variables (SYNCSTATUS_* prefix, e.g. SYNCSTATUS_STORE_BACKEND)
//  3. Project config (.syncstatus/config.yaml)
//  4. Global config (~/.syncstatus/config.yaml)
//  5. Built-in defaults
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

import "time"

// Config is the root configuration structure.
type Config struct {
	// Sync controls the local sync engine and its schedule.
	Sync SyncConfig `yaml:"sync" mapstructure:"sync" json:"sync"`

	// Store selects where the last sync outcome is persisted.
	Store StoreConfig `yaml:"store" mapstructure:"store" json:"store"`

	// Account controls the local account engine.
	Account AccountConfig `yaml:"account" mapstructure:"account" json:"account"`

	// UI controls rendering of the account screen.
	UI UIConfig `yaml:"ui" mapstructure:"ui" json:"ui"`

	// Logging controls the rotating log file.
	Logging LoggingConfig `yaml:"logging" mapstructure:"logging" json:"logging"`
}

// SyncConfig contains settings for the local sync engine.
type SyncConfig struct {
	// Schedule is a cron spec (standard five fields or a descriptor such as
	// "@every 15m") for background syncs while the settings screen is open.
	// Default: "@every 15m"
	Schedule string `yaml:"schedule" mapstructure:"schedule" json:"schedule"`

	// RunDuration is how long a simulated sync run takes.
	// Default: 2s
	RunDuration time.Duration `yaml:"run_duration" mapstructure:"run_duration" json:"run_duration"`

	// FailEvery makes every Nth simulated run fail. Zero never fails.
	FailEvery int `yaml:"fail_every" mapstructure:"fail_every" json:"fail_every"`

	// Timeout bounds a single run.
	// Default: 5m
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" json:"timeout"`
}

// StoreConfig contains settings for the last-sync store.
type StoreConfig struct {
	// Backend is one of "bolt", "redis" or "memory".
	// Default: "bolt"
	Backend string `yaml:"backend" mapstructure:"backend" json:"backend"`

	// Path is the bbolt database file. Empty means ~/.syncstatus/state.db.
	Path string `yaml:"path,omitempty" mapstructure:"path" json:"path,omitempty"`

	// RedisURL is a redis:// URL, required for the redis backend.
	RedisURL string `yaml:"redis_url,omitempty" mapstructure:"redis_url" json:"redis_url,omitempty"`

	// RedisKey is the hash holding the outcome.
	// Default: "syncstatus:last_sync"
	RedisKey string `yaml:"redis_key" mapstructure:"redis_key" json:"redis_key"`
}

// AccountConfig contains settings for the local account engine.
type AccountConfig struct {
	// SessionPath is the YAML session file. Empty means ~/.syncstatus/session.yaml.
	SessionPath string `yaml:"session_path,omitempty" mapstructure:"session_path" json:"session_path,omitempty"`
}

// UIConfig contains settings for the account screen.
type UIConfig struct {
	// Locale is the BCP 47 tag used for relative times.
	// Default: "en"
	Locale string `yaml:"locale" mapstructure:"locale" json:"locale"`

	// Timezone is the IANA zone for absolute dates. Empty means local time.
	Timezone string `yaml:"timezone,omitempty" mapstructure:"timezone" json:"timezone,omitempty"`

	// RefreshInterval is how often the summary's relative time is re-rendered.
	// Default: 30s
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval" json:"refresh_interval"`

	// MaxWidth caps the rendered width of the screen.
	// Default: 80
	MaxWidth int `yaml:"max_width" mapstructure:"max_width" json:"max_width"`
}

// LoggingConfig contains settings for the rotating log file.
type LoggingConfig struct {
	MaxSizeMB  int `yaml:"max_size_mb" mapstructure:"max_size_mb" json:"max_size_mb"`
	MaxBackups int `yaml:"max_backups" mapstructure:"max_backups" json:"max_backups"`
	MaxAgeDays int `yaml:"max_age_days" mapstructure:"max_age_days" json:"max_age_days"`
}

// Location resolves Timezone, falling back to time.Local when it is empty
// or unknown. Validate rejects unknown zones before this is reached.
func (c UIConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
