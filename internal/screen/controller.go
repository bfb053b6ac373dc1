package screen

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/lifecycle"
	"github.com/mrz1836/syncstatus/internal/status"
)

// AccountControllerDeps collects the collaborators of an AccountController.
// SyncEngine, AccountEngine and Store may be nil; the screen then shows
// "never synced" and receives no events from the missing side.
type AccountControllerDeps struct {
	SyncEngine    SyncEngine
	AccountEngine AccountEngine
	Store         LastSyncStore
	Summarizer    status.Summarizer
	Renderer      Renderer
	Navigator     Navigator
	Poster        Poster
	Logger        zerolog.Logger
}

// AccountController drives the account settings screen. Every method except
// Deactivate must be called on the UI goroutine.
type AccountController struct {
	deps   AccountControllerDeps
	logger zerolog.Logger
	subs   *SubscriptionManager

	// baseCtx carries the logger into the logout goroutine. It is detached
	// from screen teardown so a sign out in flight always completes.
	baseCtx context.Context //nolint:containedctx // outlives the screen on purpose

	// UI goroutine state.
	scope    *lifecycle.Scope
	state    status.DisplayState
	rendered bool
	exited   bool
	sub      *Subscription

	dead           atomic.Bool
	logoutInFlight atomic.Bool
}

// NewAccountController builds a controller. ctx supplies values only; its
// cancellation is ignored.
func NewAccountController(ctx context.Context, deps AccountControllerDeps) *AccountController {
	logger := deps.Logger.With().Str("component", "screen").Str("screen", "account").Logger()
	c := &AccountController{
		deps:    deps,
		logger:  logger,
		baseCtx: context.WithoutCancel(logger.WithContext(ctx)),
	}
	c.subs = NewSubscriptionManager(deps.SyncEngine, deps.AccountEngine, deps.Poster, c, deps.Logger)
	return c
}

// Activate snapshots the engines, renders the initial state and attaches
// the subscription. It does nothing after Deactivate.
func (c *AccountController) Activate(scope *lifecycle.Scope) {
	if c.dead.Load() {
		c.logger.Debug().Msg("activate after deactivate ignored")
		return
	}
	c.scope = scope

	running := false
	if c.deps.SyncEngine != nil {
		running = c.deps.SyncEngine.IsRunning()
	}

	c.render(status.Initial(running, c.readOutcome(), c.deps.Summarizer))
	c.sub = c.subs.Attach(scope)
	if c.dead.Load() {
		// Deactivate ran on another goroutine while attaching.
		c.sub.Dispose()
	}

	c.logger.Debug().
		Bool("sync_running", running).
		Str("summary", c.state.Summary).
		Msg("account screen activated")
}

// Deactivate disposes the subscription and marks the screen dead, even if
// Activate never ran. Safe from any goroutine and idempotent.
func (c *AccountController) Deactivate() {
	if c.dead.Swap(true) {
		return
	}
	c.subs.DisposeLive()
	c.logger.Debug().Msg("account screen deactivated")
}

// Alive reports whether the screen has not been deactivated.
func (c *AccountController) Alive() bool {
	return !c.dead.Load()
}

// State returns the last rendered state.
func (c *AccountController) State() status.DisplayState {
	return c.state
}

// Subscription returns the live subscription, or nil before Activate.
func (c *AccountController) Subscription() *Subscription {
	return c.sub
}

// HandleEvent implements EventHandler.
func (c *AccountController) HandleEvent(ev domain.Event) {
	if c.dead.Load() {
		return
	}

	var outcome domain.SyncOutcome
	switch ev.(type) {
	case domain.SyncIdle, domain.SyncError:
		outcome = c.readOutcome()
	}

	tr := status.Reduce(c.state, ev, outcome, c.deps.Summarizer)
	c.logger.Debug().Str("event", domain.EventName(ev)).Str("sync_label", tr.State.SyncLabel.String()).Msg("event reduced")
	if cause := eventCause(ev); cause != nil {
		c.logger.Warn().Err(cause).Str("event", domain.EventName(ev)).Msg("engine reported an error")
	}

	c.render(tr.State)
	for _, eff := range tr.Effects {
		switch eff.Kind {
		case status.EffectAnnounce:
			c.deps.Renderer.Announce(eff.Text)
		case status.EffectExit:
			c.exit(domain.EventName(ev))
		}
	}
}

// Refresh re-reads the stored outcome so the relative time in the summary
// stays current. It leaves a running sync's label alone.
func (c *AccountController) Refresh() {
	if c.dead.Load() || !c.rendered {
		return
	}
	next := c.state
	next.Summary = c.deps.Summarizer.Summary(c.readOutcome())
	c.render(next)
}

// OnSyncNowPressed asks the sync engine for a run. The resulting events
// drive the state; nothing changes locally.
func (c *AccountController) OnSyncNowPressed() {
	if c.dead.Load() {
		c.logger.Debug().Msg("sync pressed on a closed screen, ignoring")
		return
	}
	if !c.state.SyncEnabled {
		return
	}
	if c.deps.SyncEngine == nil {
		c.logger.Debug().Msg("sync engine unavailable")
		return
	}
	c.deps.SyncEngine.TriggerSync()
}

// OnSignOutPressed signs out in the background and leaves the screen once
// the logout succeeded. A failure is logged and the screen stays put.
// Presses while a logout is in flight are ignored.
func (c *AccountController) OnSignOutPressed() {
	if c.dead.Load() {
		c.logger.Debug().Msg("sign out pressed on a closed screen, ignoring")
		return
	}
	if c.deps.AccountEngine == nil {
		c.logger.Debug().Msg("account engine unavailable")
		return
	}
	if !c.logoutInFlight.CompareAndSwap(false, true) {
		c.logger.Debug().Msg("sign out already in progress")
		return
	}

	go func() {
		err := c.deps.AccountEngine.Logout(c.baseCtx)
		c.deps.Poster.Post(func() {
			c.logoutInFlight.Store(false)
			if err != nil {
				c.logger.Error().
					Err(fmt.Errorf("%w: %w", errors.ErrLogoutFailed, err)).
					Msg("sign out failed, staying on screen")
				return
			}
			if c.dead.Load() {
				c.logger.Debug().Msg("sign out finished after screen closed")
				return
			}
			c.exit("signed_out")
		})
	}()
}

// SigningOut reports whether a logout is in flight.
func (c *AccountController) SigningOut() bool {
	return c.logoutInFlight.Load()
}

func (c *AccountController) render(next status.DisplayState) {
	if c.rendered && next == c.state {
		return
	}
	c.state = next
	c.rendered = true
	c.deps.Renderer.Render(next)
}

// exit navigates back at most once per controller.
func (c *AccountController) exit(reason string) {
	if c.exited {
		return
	}
	c.exited = true
	c.logger.Info().Str("reason", reason).Msg("leaving account screen")
	c.deps.Navigator.NavigateBack()
}

func (c *AccountController) readOutcome() domain.SyncOutcome {
	if c.deps.Store == nil {
		return domain.SyncOutcome{}
	}
	return c.deps.Store.Read().Normalize()
}

func eventCause(ev domain.Event) error {
	switch e := ev.(type) {
	case domain.SyncError:
		return e.Cause
	case domain.AccountError:
		return e.Cause
	default:
		return nil
	}
}
