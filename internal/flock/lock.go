package flock

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/mrz1836/syncstatus/internal/errors"
)

// retryInterval is how long Acquire waits between lock attempts.
const retryInterval = 50 * time.Millisecond

// lockFilePerm matches the permissions of the files being guarded.
const lockFilePerm = 0o600

// Lock is a held exclusive lock. Release it exactly once; extra calls are
// ignored.
type Lock struct {
	file *os.File
	once sync.Once
}

// Acquire takes an exclusive lock on path+".lock", retrying until timeout.
// It returns errors.ErrLockTimeout when the lock stays held by someone else
// and the context error when ctx is canceled first.
func Acquire(ctx context.Context, path string, timeout time.Duration) (*Lock, error) {
	lockPath := path + ".lock"
	f, err := os.OpenFile(lockPath, os.O_RDWR|os.O_CREATE, lockFilePerm) //#nosec G304 -- path is built from the configured state directory
	if err != nil {
		return nil, errors.Wrapf(err, "open lock file %s", lockPath)
	}

	deadline := time.Now().Add(timeout)
	for {
		if lockErr := tryLock(f.Fd()); lockErr == nil {
			return &Lock{file: f}, nil
		}

		if time.Now().After(deadline) {
			_ = f.Close()
			return nil, errors.Wrapf(errors.ErrLockTimeout, "lock %s", lockPath)
		}

		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

// Release unlocks and closes the lock file.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	var err error
	l.once.Do(func() {
		unlockErr := unlock(l.file.Fd())
		closeErr := l.file.Close()
		if unlockErr != nil {
			err = unlockErr
			return
		}
		err = closeErr
	})
	return err
}
