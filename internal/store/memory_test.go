package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/syncstatus/internal/domain"
)

func TestMemoryStore_RecordAndRead(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	assert.True(t, s.Read().NeverSynced())

	require.NoError(t, s.Record(context.Background(), domain.NewSyncOutcome(1_700_000_000_000, true)))
	assert.Equal(t, domain.SyncOutcome{LastSyncedAtMillis: 1_700_000_000_000, Failed: true}, s.Read())
	assert.NoError(t, s.Close())
}

func TestMemoryStore_ClampsNegative(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	require.NoError(t, s.Record(context.Background(), domain.SyncOutcome{LastSyncedAtMillis: -5}))
	assert.Equal(t, int64(0), s.Read().LastSyncedAtMillis)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMemoryStore()
	require.ErrorIs(t, s.Record(ctx, domain.NewSyncOutcome(1, false)), context.Canceled)
	assert.True(t, s.Read().NeverSynced())
}
