package screen

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/lifecycle"
	"github.com/mrz1836/syncstatus/internal/observer"
	"github.com/mrz1836/syncstatus/internal/status"
)

//nolint:gochecknoglobals // shared fixture
var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeSyncEngine struct {
	registry  *observer.Registry[domain.SyncEvent]
	running   atomic.Bool
	triggers  atomic.Int32
	subscribe atomic.Int32
}

func newFakeSyncEngine() *fakeSyncEngine {
	return &fakeSyncEngine{registry: observer.NewRegistry[domain.SyncEvent]()}
}

func (f *fakeSyncEngine) IsRunning() bool { return f.running.Load() }
func (f *fakeSyncEngine) TriggerSync()    { f.triggers.Add(1) }

func (f *fakeSyncEngine) SubscribeSync(l func(domain.SyncEvent), scope *lifecycle.Scope, autoPause bool) observer.Registration {
	f.subscribe.Add(1)
	return f.registry.Register(l, scope, autoPause)
}

// emit delivers from a foreign goroutine, as a real engine would.
func (f *fakeSyncEngine) emit(ev domain.SyncEvent) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.registry.Notify(ev)
	}()
	<-done
}

type fakeAccountEngine struct {
	registry     *observer.Registry[domain.AccountEvent]
	subscribe    atomic.Int32
	logoutCalls  atomic.Int32
	release      chan error
	emitOnLogout bool
}

func newFakeAccountEngine() *fakeAccountEngine {
	return &fakeAccountEngine{
		registry: observer.NewRegistry[domain.AccountEvent](),
		release:  make(chan error, 1),
	}
}

func (f *fakeAccountEngine) Logout(_ context.Context) error {
	f.logoutCalls.Add(1)
	err := <-f.release
	if err == nil && f.emitOnLogout {
		f.registry.Notify(domain.LoggedOut{})
	}
	return err
}

func (f *fakeAccountEngine) SubscribeAccount(l func(domain.AccountEvent), scope *lifecycle.Scope, autoPause bool) observer.Registration {
	f.subscribe.Add(1)
	return f.registry.Register(l, scope, autoPause)
}

func (f *fakeAccountEngine) emit(ev domain.AccountEvent) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.registry.Notify(ev)
	}()
	<-done
}

type fakeStore struct {
	mu      sync.Mutex
	outcome domain.SyncOutcome
}

func (s *fakeStore) Read() domain.SyncOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

func (s *fakeStore) set(o domain.SyncOutcome) {
	s.mu.Lock()
	s.outcome = o
	s.mu.Unlock()
}

type recordingRenderer struct {
	mu        sync.Mutex
	renders   []status.DisplayState
	announced []string
}

func (r *recordingRenderer) Render(s status.DisplayState) {
	r.mu.Lock()
	r.renders = append(r.renders, s)
	r.mu.Unlock()
}

func (r *recordingRenderer) Announce(text string) {
	r.mu.Lock()
	r.announced = append(r.announced, text)
	r.mu.Unlock()
}

func (r *recordingRenderer) snapshot() ([]status.DisplayState, []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]status.DisplayState(nil), r.renders...), append([]string(nil), r.announced...)
}

type countingNavigator struct {
	backs atomic.Int32
}

func (n *countingNavigator) NavigateBack() { n.backs.Add(1) }

type movableClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *movableClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *movableClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
