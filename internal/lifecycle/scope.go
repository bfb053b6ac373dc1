// Package lifecycle models the bounded lifetime of one visible screen.
//
// A Scope moves Created → Started ⇄ Stopped → Destroyed. Started means the
// screen is the foreground surface; Stopped means it is still alive but
// covered. Destroyed is terminal.
//
// Import rules:
//   - CAN import: std lib only
package lifecycle

import "sync"

// State is the lifecycle position of a Scope.
type State int

// Scope states.
const (
	Created State = iota
	Started
	Stopped
	Destroyed
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Created:
		return "created"
	case Started:
		return "started"
	case Stopped:
		return "stopped"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// Scope is safe for concurrent use.
type Scope struct {
	name string

	mu        sync.Mutex
	state     State
	done      chan struct{}
	observers map[uint64]func(State)
	nextID    uint64
}

// NewScope returns a scope in the Created state.
func NewScope(name string) *Scope {
	return &Scope{
		name:      name,
		done:      make(chan struct{}),
		observers: make(map[uint64]func(State)),
	}
}

// Name identifies the scope in logs.
func (s *Scope) Name() string {
	return s.name
}

// State returns the current state.
func (s *Scope) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsForeground reports whether the scope is Started.
func (s *Scope) IsForeground() bool {
	return s.State() == Started
}

// IsDestroyed reports whether Destroy has been called.
func (s *Scope) IsDestroyed() bool {
	return s.State() == Destroyed
}

// Done is closed when the scope is destroyed.
func (s *Scope) Done() <-chan struct{} {
	return s.done
}

// Start moves the scope to the foreground. It has no effect once destroyed.
func (s *Scope) Start() {
	s.transition(Started, nil)
}

// Stop moves the scope to the background. It has no effect unless Started.
func (s *Scope) Stop() {
	s.transition(Stopped, func(from State) bool { return from == Started })
}

// Destroy ends the scope. Calling it more than once is harmless.
func (s *Scope) Destroy() {
	s.transition(Destroyed, nil)
}

// Observe registers fn to be called after every state change, outside the
// scope's lock. Observing a destroyed scope calls fn(Destroyed) at once.
// The returned cancel func removes the observer and is idempotent.
func (s *Scope) Observe(fn func(State)) (cancel func()) {
	s.mu.Lock()
	if s.state == Destroyed {
		s.mu.Unlock()
		fn(Destroyed)
		return func() {}
	}
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// transition moves to the target state when allowed(from) holds, or always
// when allowed is nil. Destroyed is never left.
func (s *Scope) transition(to State, allowed func(from State) bool) {
	s.mu.Lock()
	if s.state == Destroyed || s.state == to || (allowed != nil && !allowed(s.state)) {
		s.mu.Unlock()
		return
	}
	s.state = to
	fns := make([]func(State), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	if to == Destroyed {
		close(s.done)
		s.observers = map[uint64]func(State){}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(to)
	}
}
