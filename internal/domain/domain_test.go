package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewSyncOutcome_ClampsNegative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		millis int64
		want   int64
	}{
		{"negative", -42, 0},
		{"zero", 0, 0},
		{"positive", 1_700_000_000_000, 1_700_000_000_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			o := NewSyncOutcome(tt.millis, true)
			assert.Equal(t, tt.want, o.LastSyncedAtMillis)
			assert.True(t, o.Failed)
		})
	}
}

func TestSyncOutcome_FailedAfterPreservesLastSuccess(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	prev := Succeeded(at)
	got := FailedAfter(prev)

	assert.True(t, got.Failed)
	assert.Equal(t, at.UnixMilli(), got.LastSyncedAtMillis)
	assert.True(t, got.LastSyncedAt().Equal(at))

	never := FailedAfter(SyncOutcome{})
	assert.True(t, never.NeverSynced())
	assert.True(t, never.LastSyncedAt().IsZero())
}

func TestEventName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		ev   Event
		want string
	}{
		{Authenticated{}, "authenticated"},
		{AuthProblem{}, "auth_problem"},
		{LoggedOut{}, "logged_out"},
		{ProfileUpdated{}, "profile_updated"},
		{AccountError{Cause: errors.New("x")}, "account_error"},
		{SyncStarted{}, "sync_started"},
		{SyncIdle{}, "sync_idle"},
		{SyncError{Cause: errors.New("y")}, "sync_error"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, EventName(c.ev))
	}
}

func TestAccount_Label(t *testing.T) {
	t.Parallel()

	acct := Account{Email: "jane@example.com"}
	assert.Equal(t, "jane@example.com", acct.Label())

	acct.Profile.DisplayName = "Jane"
	assert.Equal(t, "Jane", acct.Label())
}
