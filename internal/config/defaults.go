package config

import (
	"github.com/spf13/viper"

	"github.com/mrz1836/syncstatus/internal/constants"
)

// DefaultConfig returns a Config populated with built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Sync: SyncConfig{
			Schedule:    constants.DefaultSyncSchedule,
			RunDuration: constants.DefaultSyncRunDuration,
			Timeout:     constants.DefaultSyncTimeout,
		},
		Store: StoreConfig{
			Backend:  constants.StoreBackendBolt,
			RedisKey: constants.DefaultRedisKey,
		},
		UI: UIConfig{
			Locale:          constants.DefaultLocale,
			RefreshInterval: constants.DefaultRefreshInterval,
			MaxWidth:        constants.DefaultMaxWidth,
		},
		Logging: LoggingConfig{
			MaxSizeMB:  constants.LogMaxSizeMB,
			MaxBackups: constants.LogMaxBackups,
			MaxAgeDays: constants.LogMaxAgeDays,
		},
	}
}

// setDefaults mirrors DefaultConfig on a Viper instance.
// Keys must match the mapstructure tags exactly, and every key needs a
// default so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("sync.schedule", d.Sync.Schedule)
	v.SetDefault("sync.run_duration", d.Sync.RunDuration.String())
	v.SetDefault("sync.fail_every", d.Sync.FailEvery)
	v.SetDefault("sync.timeout", d.Sync.Timeout.String())

	v.SetDefault("store.backend", d.Store.Backend)
	v.SetDefault("store.path", "")
	v.SetDefault("store.redis_url", "")
	v.SetDefault("store.redis_key", d.Store.RedisKey)

	v.SetDefault("account.session_path", "")

	v.SetDefault("ui.locale", d.UI.Locale)
	v.SetDefault("ui.timezone", "")
	v.SetDefault("ui.refresh_interval", d.UI.RefreshInterval.String())
	v.SetDefault("ui.max_width", d.UI.MaxWidth)

	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
}
