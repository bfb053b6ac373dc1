package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/errors"
)

func testSession() *domain.Session {
	return &domain.Session{
		Account: domain.Account{
			ID:         "acct-1",
			Email:      "ada@example.com",
			Profile:    domain.Profile{DisplayName: "Ada"},
			SignedInAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		},
		Token:        "sst_0123456789abcdef0123456789abcdef",
		RefreshToken: "srt_0123456789abcdef0123456789abcdef",
	}
}

func TestSessionFileStore_LoadMissing(t *testing.T) {
	t.Parallel()

	s := NewSessionFileStore(filepath.Join(t.TempDir(), "session.yaml"))
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionFileStore_SaveLoadClear(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "home", "session.yaml")
	s := NewSessionFileStore(path)

	require.NoError(t, s.Save(ctx, testSession()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), info.Mode().Perm())
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, testSession().Account.Email, got.Account.Email)
	assert.Equal(t, testSession().Token, got.Token)
	assert.True(t, testSession().Account.SignedInAt.Equal(got.Account.SignedInAt))

	require.NoError(t, s.Clear(ctx))
	got, err = s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Clear(ctx))
}

func TestSessionFileStore_Corrupted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
	}{
		{name: "not yaml", body: "account: [unterminated"},
		{name: "missing token", body: "account:\n  email: ada@example.com\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "session.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o600))

			_, err := NewSessionFileStore(path).Load(context.Background())
			require.ErrorIs(t, err, errors.ErrSessionCorrupted)
		})
	}
}

func TestSessionFileStore_SaveNil(t *testing.T) {
	t.Parallel()

	s := NewSessionFileStore(filepath.Join(t.TempDir(), "session.yaml"))
	require.ErrorIs(t, s.Save(context.Background(), nil), errors.ErrEmptyValue)
}

func TestSessionFileStore_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSessionFileStore(filepath.Join(t.TempDir(), "session.yaml"))
	_, err := s.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, s.Save(ctx, testSession()), context.Canceled)
	require.ErrorIs(t, s.Clear(ctx), context.Canceled)
}
