package ctxutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanceled(t *testing.T) {
	t.Parallel()

	t.Run("returns nil for active context", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, Canceled(context.Background()))
	})

	t.Run("returns context.Canceled for canceled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, Canceled(ctx), context.Canceled)
	})

	t.Run("returns DeadlineExceeded for expired context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()
		assert.ErrorIs(t, Canceled(ctx), context.DeadlineExceeded)
	})
}

func TestSleep(t *testing.T) {
	t.Parallel()

	t.Run("waits the full duration", func(t *testing.T) {
		t.Parallel()
		start := time.Now()
		require.NoError(t, Sleep(context.Background(), 20*time.Millisecond))
		assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	})

	t.Run("returns early when canceled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		start := time.Now()
		err := Sleep(ctx, time.Minute)
		require.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("zero duration returns immediately", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, Sleep(context.Background(), 0))
	})
}
