package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mrz1836/syncstatus/internal/constants"
	"github.com/mrz1836/syncstatus/internal/errors"
)

// newViperInstance creates a Viper with defaults and SYNCSTATUS_* env binding.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var configNotFoundErr viper.ConfigFileNotFoundError
	return stderrors.As(err, &configNotFoundErr) || os.IsNotExist(err)
}

// viperDecoderOption decodes duration strings such as "30s" into time.Duration.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

func unmarshalAndValidate(ctx context.Context, v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	zerolog.Ctx(ctx).Debug().
		Str("component", "config").
		Str("sync.schedule", cfg.Sync.Schedule).
		Dur("sync.timeout", cfg.Sync.Timeout).
		Str("store.backend", cfg.Store.Backend).
		Str("ui.locale", cfg.UI.Locale).
		Msg("configuration loaded")

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads the global and project config files (both optional), applies
// SYNCSTATUS_* environment overrides and validates the result.
func Load(ctx context.Context) (*Config, error) {
	global, err := GlobalConfigPath()
	if err != nil {
		global = ""
	}
	return LoadFromPaths(ctx, ProjectConfigPath(), global)
}

// LoadFromPaths loads configuration from specific files. The project file
// merges over the global one. Either path may be empty, and missing files
// are skipped.
func LoadFromPaths(ctx context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" && fileExists(globalConfigPath) {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}

	if projectConfigPath != "" && fileExists(projectConfigPath) {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(ctx, v)
}

// LoadFile loads an explicitly named config file over the global one.
// Unlike LoadFromPaths, the file must exist.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	if !fileExists(path) {
		return nil, errors.Wrapf(os.ErrNotExist, "config file %s", path)
	}
	global, err := GlobalConfigPath()
	if err != nil {
		global = ""
	}
	return LoadFromPaths(ctx, path, global)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
