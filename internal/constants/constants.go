// Package constants provides centralized constant values used throughout syncstatus.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// AppName is the binary and product name.
const AppName = "syncstatus"

// Directory names used for organizing data.
const (
	// AppHome is the hidden directory name where syncstatus stores all its data.
	// This directory is created in the user's home directory.
	AppHome = ".syncstatus"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// HomeEnvVar overrides the AppHome location when set.
	HomeEnvVar = "SYNCSTATUS_HOME"

	// EnvPrefix is the prefix for configuration environment variables.
	EnvPrefix = "SYNCSTATUS"
)

// Sync engine defaults.
const (
	// DefaultSyncSchedule is the cron spec for background syncs.
	DefaultSyncSchedule = "@every 15m"

	// DefaultSyncRunDuration is how long a simulated sync run takes.
	DefaultSyncRunDuration = 2 * time.Second

	// DefaultSyncTimeout bounds a single sync run.
	DefaultSyncTimeout = 5 * time.Minute
)

// UI defaults.
const (
	// DefaultRefreshInterval is how often the account screen re-renders the
	// relative time in its summary.
	DefaultRefreshInterval = 30 * time.Second

	// DefaultLocale is the BCP 47 tag used for relative-time rendering.
	DefaultLocale = "en"

	// DefaultMaxWidth caps the rendered width of the account screen.
	DefaultMaxWidth = 80
)

// Store defaults.
const (
	// StoreBackendBolt persists the last sync outcome in a bbolt file.
	StoreBackendBolt = "bolt"

	// StoreBackendRedis persists the last sync outcome in a redis hash.
	StoreBackendRedis = "redis"

	// StoreBackendMemory keeps the last sync outcome in process memory.
	StoreBackendMemory = "memory"

	// DefaultRedisKey is the redis hash holding the last sync outcome.
	DefaultRedisKey = "syncstatus:last_sync"

	// LockTimeout is the maximum duration to wait for the session file lock.
	LockTimeout = 5 * time.Second
)
