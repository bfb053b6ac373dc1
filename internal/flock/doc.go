// Package flock provides advisory file locks for the syncstatus state files.
//
// Locks are exclusive and taken on a sidecar "<path>.lock" file so readers
// and writers of the session file in separate processes never interleave:
//
//	lock, err := flock.Acquire(ctx, sessionPath, constants.LockTimeout)
//	if err != nil {
//	    return err
//	}
//	defer lock.Release()
//
// The platform primitive (flock(2) on Unix, LockFileEx on Windows) is
// non-blocking; Acquire polls until the timeout elapses.
package flock
