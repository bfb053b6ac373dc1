// Package screen binds the account/sync status reducer to a visible screen.
//
// All state in this package is owned by a single UI goroutine. Engine
// callbacks arrive on arbitrary goroutines and are handed to a Poster,
// which runs them on the UI goroutine in order. Two Posters exist: Looper
// for headless commands and tests, and the TUI shell.
//
// Import rules:
//   - CAN import: internal/domain, internal/errors, internal/lifecycle,
//     internal/observer, internal/status
//   - MUST NOT import: internal/tui, internal/cli, internal/engine, internal/store
package screen

import (
	"context"

	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/lifecycle"
	"github.com/mrz1836/syncstatus/internal/observer"
	"github.com/mrz1836/syncstatus/internal/status"
)

// SyncEngine is the part of the sync engine the account screen uses.
type SyncEngine interface {
	IsRunning() bool
	TriggerSync()
	SubscribeSync(listener func(domain.SyncEvent), scope *lifecycle.Scope, autoPause bool) observer.Registration
}

// AccountEngine is the part of the account engine the account screen uses.
type AccountEngine interface {
	// Logout blocks until the session is cleared or fails.
	Logout(ctx context.Context) error
	SubscribeAccount(listener func(domain.AccountEvent), scope *lifecycle.Scope, autoPause bool) observer.Registration
}

// LastSyncStore reads the outcome of the last sync. Read never fails;
// unavailable stores report the zero outcome.
type LastSyncStore interface {
	Read() domain.SyncOutcome
}

// Renderer draws a DisplayState. Called on the UI goroutine only.
type Renderer interface {
	Render(state status.DisplayState)

	// Announce surfaces a transient accessibility message.
	Announce(text string)
}

// Navigator leaves the current screen. Called on the UI goroutine only.
type Navigator interface {
	NavigateBack()
}

// Poster runs fn on the UI goroutine, after every fn posted before it.
// Post never blocks on the UI goroutine and is safe from any goroutine.
// Posts made after the poster has shut down are dropped.
type Poster interface {
	Post(fn func())
}

// EventHandler consumes events on the UI goroutine.
type EventHandler interface {
	HandleEvent(ev domain.Event)
}
