package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mrz1836/syncstatus/internal/constants"
	"github.com/mrz1836/syncstatus/internal/ctxutil"
	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/flock"
)

// SessionFileStore keeps the session in a YAML file guarded by a lock file.
type SessionFileStore struct {
	path string
}

// NewSessionFileStore returns a store for the file at path.
func NewSessionFileStore(path string) *SessionFileStore {
	return &SessionFileStore{path: path}
}

// Path returns the session file location.
func (s *SessionFileStore) Path() string {
	return s.path
}

// Load reads the session. It returns (nil, nil) when there is no session file
// and errors.ErrSessionCorrupted when the file cannot be parsed.
func (s *SessionFileStore) Load(ctx context.Context) (*domain.Session, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, nil //nolint:nilnil // no session is not an error
	}

	lock, err := s.lock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	defer func() { _ = lock.Release() }()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil //nolint:nilnil // removed while waiting for the lock
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session domain.Session
	if err := yaml.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrSessionCorrupted, err)
	}
	if session.Token == "" {
		return nil, errors.Wrap(errors.ErrSessionCorrupted, "missing token")
	}

	return &session, nil
}

// Save writes the session atomically.
func (s *SessionFileStore) Save(ctx context.Context, session *domain.Session) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	if session == nil {
		return errors.Wrap(errors.ErrEmptyValue, "session")
	}

	data, err := yaml.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), dirPerm); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	lock, err := s.lock(ctx)
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	defer func() { _ = lock.Release() }()

	if err := atomicWrite(s.path, data, filePerm); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *SessionFileStore) Clear(ctx context.Context) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}

	lock, err := s.lock(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	defer func() { _ = lock.Release() }()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (s *SessionFileStore) lock(ctx context.Context) (*flock.Lock, error) {
	return flock.Acquire(ctx, s.path, constants.LockTimeout)
}

// atomicWrite writes data to a temp file and renames it over path.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm) //#nosec G304 -- path is built from the configured state directory
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
