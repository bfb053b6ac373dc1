package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	syncerrors "github.com/mrz1836/syncstatus/internal/errors"
)

// testError is a custom error type used to test default branches
// in UserMessage and Actionable without matching any sentinel.
type testError struct {
	msg string
}

func (e testError) Error() string {
	return e.msg
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		syncerrors.ErrNotSignedIn,
		syncerrors.ErrLogoutFailed,
		syncerrors.ErrSyncFailed,
		syncerrors.ErrSyncInProgress,
		syncerrors.ErrSyncTimeout,
		syncerrors.ErrStoreUnavailable,
		syncerrors.ErrUnknownStoreBackend,
		syncerrors.ErrSessionCorrupted,
		syncerrors.ErrLockTimeout,
		syncerrors.ErrConfigNil,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b, "%v should not match %v", a, b)
		}
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("preserves error chain", func(t *testing.T) {
		t.Parallel()
		err := syncerrors.Wrap(syncerrors.ErrLogoutFailed, "sign out")
		require.Error(t, err)
		require.ErrorIs(t, err, syncerrors.ErrLogoutFailed)
		assert.Equal(t, "sign out: logout failed", err.Error())
	})

	t.Run("nil error stays nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, syncerrors.Wrap(nil, "ignored"))
	})

	t.Run("multiple wraps", func(t *testing.T) {
		t.Parallel()
		err := syncerrors.Wrap(syncerrors.Wrap(syncerrors.ErrStoreUnavailable, "inner"), "outer")
		require.ErrorIs(t, err, syncerrors.ErrStoreUnavailable)
		assert.Equal(t, "outer: inner: store unavailable", err.Error())
	})
}

func TestWrapf(t *testing.T) {
	t.Parallel()

	err := syncerrors.Wrapf(syncerrors.ErrStoreUnavailable, "open %s", "/tmp/state.db")
	require.ErrorIs(t, err, syncerrors.ErrStoreUnavailable)
	assert.Equal(t, "open /tmp/state.db: store unavailable", err.Error())
	assert.NoError(t, syncerrors.Wrapf(nil, "open %s", "x"))
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil", nil, ""},
		{"direct sentinel", syncerrors.ErrNotSignedIn, "No account is signed in."},
		{"wrapped sentinel", fmt.Errorf("logout: %w", syncerrors.ErrLogoutFailed), "Signing out did not complete."},
		{"unknown error", testError{msg: "boom"}, "boom"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, syncerrors.UserMessage(tc.err))
		})
	}
}

func TestActionable(t *testing.T) {
	t.Parallel()

	msg, action := syncerrors.Actionable(syncerrors.Wrap(syncerrors.ErrUnknownStoreBackend, "open store"))
	assert.Equal(t, "The configured store backend is not supported.", msg)
	assert.Contains(t, action, "bolt, redis or memory")

	msg, action = syncerrors.Actionable(syncerrors.ErrOperationCanceled)
	assert.Equal(t, "Operation canceled.", msg)
	assert.Empty(t, action)

	msg, action = syncerrors.Actionable(nil)
	assert.Empty(t, msg)
	assert.Empty(t, action)
}

func TestExitCode2Error(t *testing.T) {
	t.Parallel()

	base := fmt.Errorf("bad flag: %w", syncerrors.ErrInvalidOutputFormat)
	err := syncerrors.NewExitCode2Error(base)

	assert.True(t, syncerrors.IsExitCode2Error(err))
	assert.True(t, syncerrors.IsExitCode2Error(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, syncerrors.IsExitCode2Error(base))
	require.ErrorIs(t, err, syncerrors.ErrInvalidOutputFormat)
	assert.Equal(t, base.Error(), err.Error())
}
