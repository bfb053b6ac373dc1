package tui

import (
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/status"
)

func TestAccountScreen_InitialState(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sc := h.openSettings()

	assert.Equal(t, status.DisplayState{SyncLabel: status.Idle, SyncEnabled: true, Summary: "never synced"}, sc.State())
	assert.Equal(t, 1, sc.Renders())

	view := h.shell.View()
	assert.Contains(t, view, "[s] Sync now")
	assert.Contains(t, view, "[o] Sign out")
	assert.Contains(t, view, "never synced")
}

func TestAccountScreen_InitialStateWhileSyncing(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.sync.running.Store(true)
	sc := h.openSettings()

	assert.Equal(t, status.Syncing, sc.State().SyncLabel)
	assert.False(t, sc.State().SyncEnabled)
	assert.Contains(t, h.shell.View(), "Syncing…")

	h.press("s")
	assert.Equal(t, int32(0), h.sync.triggers.Load())
}

func TestAccountScreen_SyncLifecycle(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sc := h.openSettings()

	h.press("s")
	assert.Equal(t, int32(1), h.sync.triggers.Load())
	assert.Equal(t, status.Idle, sc.State().SyncLabel, "pressing does not change local state")

	h.sync.emit(domain.SyncStarted{})
	h.pump()

	assert.Equal(t, status.Syncing, sc.State().SyncLabel)
	assert.Equal(t, "Syncing…", sc.Announcement())
	assert.Contains(t, h.shell.View(), "Syncing…")

	h.store.set(domain.Succeeded(testNow.Add(-5 * time.Minute)))
	h.sync.emit(domain.SyncIdle{})
	h.pump()

	assert.Equal(t, status.DisplayState{SyncLabel: status.Idle, SyncEnabled: true, Summary: "synced 5 minutes ago"}, sc.State())
	assert.Contains(t, h.shell.View(), "synced 5 minutes ago")
}

func TestAccountScreen_SyncErrorShowsFailure(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sc := h.openSettings()

	h.sync.emit(domain.SyncStarted{})
	h.pump()

	h.store.set(domain.FailedAfter(domain.Succeeded(testNow.Add(-2 * time.Hour))))
	h.sync.emit(domain.SyncError{Cause: stderrors.New("network down")})
	h.pump()

	assert.Equal(t, "sync failed, last success 2 hours ago", sc.State().Summary)
	assert.True(t, sc.State().SyncEnabled)
}

func TestAccountScreen_SignOutLeavesOnce(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sc := h.openSettings()

	h.press("o")
	h.pump() // LoggedOut event
	h.pump() // logout completion

	assert.Equal(t, int32(1), h.account.logouts.Load())
	assert.Equal(t, 1, h.shell.Depth())
	assert.False(t, h.shell.Quitting())
	assert.False(t, sc.Controller().Alive())
}

func TestAccountScreen_SignOutFailureStays(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.account.logoutErr = stderrors.New("server said no")
	sc := h.openSettings()

	h.press("o")
	h.pump()

	assert.Equal(t, 2, h.shell.Depth())
	assert.True(t, sc.Controller().Alive())
	assert.False(t, sc.Controller().SigningOut())
	assert.Contains(t, h.shell.View(), "[o] Sign out")
}

func TestAccountScreen_AuthProblemLeaves(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	h.openSettings()

	h.account.registry.Notify(domain.AuthProblem{})
	h.pump()

	assert.Equal(t, 1, h.shell.Depth())
}

func TestAccountScreen_RefreshRereadsStore(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sc := h.openSettings()

	h.store.set(domain.Succeeded(testNow.Add(-3 * 24 * time.Hour)))
	h.update(refreshMsg{gen: 0})

	assert.Equal(t, "synced 3 days ago", sc.State().Summary)
}

func TestAccountScreen_StaleRefreshIgnored(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sc := h.openSettings()

	sc.Pause()
	sc.Resume()
	h.store.set(domain.Succeeded(testNow.Add(-time.Hour)))

	h.update(refreshMsg{gen: 0})
	assert.Equal(t, "never synced", sc.State().Summary)

	h.update(refreshMsg{gen: 1})
	assert.Equal(t, "synced 1 hour ago", sc.State().Summary)
}

func TestAccountScreen_AnnouncementExpires(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sc := h.openSettings()

	h.sync.emit(domain.SyncStarted{})
	h.pump()
	require.Equal(t, "Syncing…", sc.Announcement())

	h.update(announceExpiredMsg{shownAt: testNow.Add(-time.Second)})
	assert.Equal(t, "Syncing…", sc.Announcement(), "older expiry does not clear a newer announcement")

	h.update(announceExpiredMsg{shownAt: testNow})
	assert.Empty(t, sc.Announcement())
}

func TestAccountScreen_PausedScreenDropsEvents(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sc := h.openSettings()

	sc.Pause()
	h.sync.emit(domain.SyncStarted{})

	select {
	case msg := <-h.msgs:
		t.Fatalf("unexpected post %T while paused", msg)
	case <-time.After(50 * time.Millisecond):
	}
	assert.Equal(t, status.Idle, sc.State().SyncLabel)
}

func TestAccountScreen_ViewFitsNarrowWidth(t *testing.T) {
	t.Parallel()

	h := newHarness(t)
	sc := h.openSettings()
	h.store.set(domain.FailedAfter(domain.Succeeded(testNow.Add(-3 * time.Hour))))
	h.update(refreshMsg{gen: 0})

	for _, line := range strings.Split(sc.View(24), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 24, line)
	}
}
