package config

import (
	"os"
	"path/filepath"

	"github.com/mrz1836/syncstatus/internal/constants"
	"github.com/mrz1836/syncstatus/internal/errors"
)

// HomeDir returns the syncstatus data directory: $SYNCSTATUS_HOME when set,
// otherwise ~/.syncstatus.
func HomeDir() (string, error) {
	if dir := os.Getenv(constants.HomeEnvVar); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.AppHome), nil
}

// GlobalConfigPath returns ~/.syncstatus/config.yaml.
func GlobalConfigPath() (string, error) {
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns .syncstatus/config.yaml relative to the working directory.
func ProjectConfigPath() string {
	return filepath.Join(constants.AppHome, constants.GlobalConfigName)
}

// StatePath returns the bbolt database path, honoring store.path.
func (c *Config) StatePath() (string, error) {
	if c.Store.Path != "" {
		return c.Store.Path, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.StateDBName), nil
}

// SessionPath returns the session file path, honoring account.session_path.
func (c *Config) SessionPath() (string, error) {
	if c.Account.SessionPath != "" {
		return c.Account.SessionPath, nil
	}
	dir, err := HomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constants.SessionFileName), nil
}
