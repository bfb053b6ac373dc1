package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/mrz1836/syncstatus/internal/ctxutil"
	"github.com/mrz1836/syncstatus/internal/errors"
)

// Syncer moves data. It returns nil on success.
type Syncer interface {
	Sync(ctx context.Context) error
}

// SyncerFunc adapts a function to Syncer.
type SyncerFunc func(ctx context.Context) error

// Sync implements Syncer.
func (f SyncerFunc) Sync(ctx context.Context) error {
	return f(ctx)
}

// SimulatedSyncer pretends to sync: it waits RunDuration and fails every
// FailEvery-th run (never when FailEvery is 0).
type SimulatedSyncer struct {
	RunDuration time.Duration
	FailEvery   int

	runs atomic.Int64
}

// Sync implements Syncer.
func (s *SimulatedSyncer) Sync(ctx context.Context) error {
	n := s.runs.Add(1)
	if err := ctxutil.Sleep(ctx, s.RunDuration); err != nil {
		return err
	}
	if s.FailEvery > 0 && n%int64(s.FailEvery) == 0 {
		return errors.Wrapf(errors.ErrSyncFailed, "simulated failure on run %d", n)
	}
	return nil
}

// Runs returns how many runs have started.
func (s *SimulatedSyncer) Runs() int64 {
	return s.runs.Load()
}
