package domain

import "time"

// SyncOutcome is the result of the most recent sync run.
//
// LastSyncedAtMillis is the Unix time in milliseconds of the last
// successful sync, or 0 if no sync ever succeeded. Failed reports whether
// the most recent run failed; a failed run keeps the previous success time.
type SyncOutcome struct {
	LastSyncedAtMillis int64 `json:"last_synced_at_millis"`
	Failed             bool  `json:"failed"`
}

// NewSyncOutcome builds an outcome, clamping malformed (negative) timestamps to 0.
func NewSyncOutcome(lastSyncedAtMillis int64, failed bool) SyncOutcome {
	return SyncOutcome{LastSyncedAtMillis: lastSyncedAtMillis, Failed: failed}.Normalize()
}

// Normalize returns o with a negative timestamp clamped to 0.
func (o SyncOutcome) Normalize() SyncOutcome {
	if o.LastSyncedAtMillis < 0 {
		o.LastSyncedAtMillis = 0
	}
	return o
}

// NeverSynced reports whether no sync has ever succeeded.
func (o SyncOutcome) NeverSynced() bool {
	return o.LastSyncedAtMillis <= 0
}

// WithFailed returns a copy of o with Failed set.
func (o SyncOutcome) WithFailed(failed bool) SyncOutcome {
	o.Failed = failed
	return o
}

// Succeeded returns the outcome of a successful run finishing at t.
func Succeeded(t time.Time) SyncOutcome {
	return NewSyncOutcome(t.UnixMilli(), false)
}

// FailedAfter returns the outcome of a failed run that follows prev:
// the last success time is preserved.
func FailedAfter(prev SyncOutcome) SyncOutcome {
	return prev.Normalize().WithFailed(true)
}

// LastSyncedAt returns the last success time, or the zero time if never.
func (o SyncOutcome) LastSyncedAt() time.Time {
	if o.NeverSynced() {
		return time.Time{}
	}
	return time.UnixMilli(o.LastSyncedAtMillis)
}
