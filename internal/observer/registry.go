// Package observer provides scope-bound listener registries for the account
// and sync engines.
//
// A listener registered with a lifecycle.Scope is removed when the scope is
// destroyed. With autoPause set, events that arrive while the scope is not
// foreground are dropped, not queued: delivery is at-most-once.
//
// Listeners run on the goroutine that calls Notify. They must hand work off
// to the UI goroutine themselves.
package observer

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mrz1836/syncstatus/internal/lifecycle"
)

// Registration is the handle returned by Register.
type Registration interface {
	// ID identifies the registration in logs.
	ID() string

	// Unregister stops delivery. It is idempotent and safe from any goroutine.
	Unregister()
}

// Registry fans events of type T out to registered listeners.
// The zero value is not usable; call NewRegistry.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry[T]
}

// NewRegistry returns an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{entries: make(map[uuid.UUID]*entry[T])}
}

type entry[T any] struct {
	id        uuid.UUID
	registry  *Registry[T]
	listener  func(T)
	scope     *lifecycle.Scope
	autoPause bool

	mu            sync.Mutex
	removed       bool
	cancelObserve func()
}

// Register adds listener. A nil scope means the listener lives until
// Unregister; a destroyed scope yields a registration that never delivers.
func (r *Registry[T]) Register(listener func(T), scope *lifecycle.Scope, autoPause bool) Registration {
	e := &entry[T]{
		id:        uuid.New(),
		registry:  r,
		listener:  listener,
		scope:     scope,
		autoPause: autoPause,
	}

	r.mu.Lock()
	r.entries[e.id] = e
	r.mu.Unlock()

	if scope != nil {
		// Observe outside r.mu: a destroyed scope calls back synchronously.
		cancel := scope.Observe(func(st lifecycle.State) {
			if st == lifecycle.Destroyed {
				e.Unregister()
			}
		})
		e.mu.Lock()
		if e.removed {
			e.mu.Unlock()
			cancel()
		} else {
			e.cancelObserve = cancel
			e.mu.Unlock()
		}
	}

	return e
}

// Notify delivers ev to every live listener, in no particular order.
func (r *Registry[T]) Notify(ev T) {
	r.mu.RLock()
	targets := make([]*entry[T], 0, len(r.entries))
	for _, e := range r.entries {
		targets = append(targets, e)
	}
	r.mu.RUnlock()

	for _, e := range targets {
		if !e.deliverable() {
			continue
		}
		e.listener(ev)
	}
}

// Len returns the number of live registrations.
func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (e *entry[T]) deliverable() bool {
	e.mu.Lock()
	removed := e.removed
	e.mu.Unlock()
	if removed {
		return false
	}
	if e.scope == nil {
		return true
	}
	switch {
	case e.scope.IsDestroyed():
		e.Unregister()
		return false
	case e.autoPause && !e.scope.IsForeground():
		return false
	default:
		return true
	}
}

func (e *entry[T]) ID() string {
	return e.id.String()
}

func (e *entry[T]) Unregister() {
	e.mu.Lock()
	if e.removed {
		e.mu.Unlock()
		return
	}
	e.removed = true
	cancel := e.cancelObserve
	e.cancelObserve = nil
	e.mu.Unlock()

	e.registry.mu.Lock()
	delete(e.registry.entries, e.id)
	e.registry.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Noop returns a registration that was never attached to anything.
// Engines that are unavailable hand it out instead of failing.
func Noop() Registration {
	return noop{}
}

type noop struct{}

func (noop) ID() string  { return "noop" }
func (noop) Unregister() {}
