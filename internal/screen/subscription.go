package screen

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/lifecycle"
	"github.com/mrz1836/syncstatus/internal/observer"
)

// SubscriptionManager owns the one account listener and the one sync
// listener of a screen.
type SubscriptionManager struct {
	sync    SyncEngine
	account AccountEngine
	poster  Poster
	handler EventHandler
	logger  zerolog.Logger

	mu   sync.Mutex
	live *Subscription
}

// NewSubscriptionManager wires engines to handler through poster. Either
// engine may be nil, in which case its stream is simply never delivered.
func NewSubscriptionManager(syncEngine SyncEngine, accountEngine AccountEngine, poster Poster, handler EventHandler, logger zerolog.Logger) *SubscriptionManager {
	return &SubscriptionManager{
		sync:    syncEngine,
		account: accountEngine,
		poster:  poster,
		handler: handler,
		logger:  logger.With().Str("component", "subscription").Logger(),
	}
}

// Subscription pairs the two registrations of one screen.
type Subscription struct {
	id         string
	syncReg    observer.Registration
	accountReg observer.Registration
	disposed   atomic.Bool
	once       sync.Once
	logger     zerolog.Logger
}

// Attach registers both listeners with autoPause against scope. While a
// subscription is live, Attach returns it instead of registering again.
func (m *SubscriptionManager) Attach(scope *lifecycle.Scope) *Subscription {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live != nil && !m.live.Disposed() {
		m.logger.Debug().Str("subscription_id", m.live.id).Msg("already attached")
		return m.live
	}

	sub := &Subscription{
		id:     uuid.NewString(),
		logger: m.logger,
	}
	sub.logger = m.logger.With().Str("subscription_id", sub.id).Logger()

	if m.sync != nil {
		sub.syncReg = m.sync.SubscribeSync(func(ev domain.SyncEvent) {
			m.deliver(sub, ev)
		}, scope, true)
	} else {
		sub.logger.Debug().Msg("sync engine unavailable, no sync events")
		sub.syncReg = observer.Noop()
	}

	if m.account != nil {
		sub.accountReg = m.account.SubscribeAccount(func(ev domain.AccountEvent) {
			m.deliver(sub, ev)
		}, scope, true)
	} else {
		sub.logger.Debug().Msg("account engine unavailable, no account events")
		sub.accountReg = observer.Noop()
	}

	m.live = sub
	if scope != nil {
		sub.logger.Debug().Str("scope", scope.Name()).Msg("attached")
	}
	return sub
}

// deliver runs on the engine's goroutine and hops to the UI goroutine.
// The disposed flag is checked on both sides of the hop.
func (m *SubscriptionManager) deliver(sub *Subscription, ev domain.Event) {
	if sub.Disposed() {
		return
	}
	m.poster.Post(func() {
		if sub.Disposed() {
			sub.logger.Debug().Str("event", domain.EventName(ev)).Msg("dropping event after dispose")
			return
		}
		m.handler.HandleEvent(ev)
	})
}

// ID identifies the subscription in logs.
func (s *Subscription) ID() string {
	return s.id
}

// Disposed reports whether Dispose has been called.
func (s *Subscription) Disposed() bool {
	return s != nil && s.disposed.Load()
}

// Dispose unregisters both listeners. It is idempotent, safe from any
// goroutine, and safe on a nil Subscription.
func (s *Subscription) Dispose() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.disposed.Store(true)
		s.syncReg.Unregister()
		s.accountReg.Unregister()
		s.logger.Debug().Msg("disposed")
	})
}

// DisposeLive disposes the live subscription, if any.
func (m *SubscriptionManager) DisposeLive() {
	m.mu.Lock()
	live := m.live
	m.mu.Unlock()
	live.Dispose()
}
