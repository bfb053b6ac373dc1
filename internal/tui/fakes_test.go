package tui

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mrz1836/syncstatus/internal/clock"
	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/lifecycle"
	"github.com/mrz1836/syncstatus/internal/observer"
	"github.com/mrz1836/syncstatus/internal/status"
)

//nolint:gochecknoglobals // shared fixture
var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeSyncEngine struct {
	registry *observer.Registry[domain.SyncEvent]
	running  atomic.Bool
	triggers atomic.Int32
}

func newFakeSyncEngine() *fakeSyncEngine {
	return &fakeSyncEngine{registry: observer.NewRegistry[domain.SyncEvent]()}
}

func (f *fakeSyncEngine) IsRunning() bool { return f.running.Load() }
func (f *fakeSyncEngine) TriggerSync()    { f.triggers.Add(1) }

func (f *fakeSyncEngine) SubscribeSync(l func(domain.SyncEvent), scope *lifecycle.Scope, autoPause bool) observer.Registration {
	return f.registry.Register(l, scope, autoPause)
}

// emit notifies from another goroutine, as the real engine does.
func (f *fakeSyncEngine) emit(ev domain.SyncEvent) {
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.registry.Notify(ev)
	}()
	<-done
}

type fakeAccountEngine struct {
	registry  *observer.Registry[domain.AccountEvent]
	logoutErr error
	logouts   atomic.Int32
}

func newFakeAccountEngine() *fakeAccountEngine {
	return &fakeAccountEngine{registry: observer.NewRegistry[domain.AccountEvent]()}
}

func (f *fakeAccountEngine) Logout(_ context.Context) error {
	f.logouts.Add(1)
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.registry.Notify(domain.LoggedOut{})
	return nil
}

func (f *fakeAccountEngine) SubscribeAccount(l func(domain.AccountEvent), scope *lifecycle.Scope, autoPause bool) observer.Registration {
	return f.registry.Register(l, scope, autoPause)
}

type fakeAccounts struct {
	mu      sync.Mutex
	account *domain.Account
}

func (f *fakeAccounts) Account(_ context.Context) (domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.account == nil {
		return domain.Account{}, errors.ErrNotSignedIn
	}
	return *f.account, nil
}

func (f *fakeAccounts) signOut() {
	f.mu.Lock()
	f.account = nil
	f.mu.Unlock()
}

type memStore struct {
	mu      sync.Mutex
	outcome domain.SyncOutcome
}

func (s *memStore) Read() domain.SyncOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

func (s *memStore) set(o domain.SyncOutcome) {
	s.mu.Lock()
	s.outcome = o
	s.mu.Unlock()
}

func testFormatter() *status.Formatter {
	return status.NewFormatter(
		status.WithClock(clock.Fixed(testNow)),
		status.WithLocation(time.UTC),
	)
}

// harness runs a Shell without a terminal: posted work is captured on a
// channel and fed back through Update by pump.
type harness struct {
	t        *testing.T
	shell    *Shell
	msgs     chan tea.Msg
	sync     *fakeSyncEngine
	account  *fakeAccountEngine
	accounts *fakeAccounts
	store    *memStore
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		t:       t,
		msgs:    make(chan tea.Msg, 64),
		sync:    newFakeSyncEngine(),
		account: newFakeAccountEngine(),
		accounts: &fakeAccounts{account: &domain.Account{
			ID:      "acct-1",
			Email:   "ada@example.com",
			Profile: domain.Profile{DisplayName: "Ada"},
		}},
		store: &memStore{},
	}

	f := testFormatter()
	root := NewOverviewScreen(context.Background(), h.accounts, h.store, f, func() Screen {
		return h.newAccountScreen()
	})
	h.shell = NewShell(root, zerolog.Nop(), WithMaxWidth(60))
	h.shell.BindSender(func(msg tea.Msg) { h.msgs <- msg })
	t.Cleanup(h.shell.Close)

	h.run(h.shell.Init())
	return h
}

func (h *harness) newAccountScreen() *AccountScreen {
	return NewAccountScreen(context.Background(), AccountScreenConfig{
		SyncEngine:      h.sync,
		AccountEngine:   h.account,
		Store:           h.store,
		Summarizer:      testFormatter(),
		Poster:          h.shell,
		Clock:           clock.Fixed(testNow),
		Logger:          zerolog.Nop(),
		RefreshInterval: time.Hour,
	})
}

// run executes an immediate command and feeds its message to the shell.
// Only use it for commands known not to sleep.
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	if cmd == nil {
		return
	}
	h.update(cmd())
}

// update feeds msg to the shell and discards the returned command.
func (h *harness) update(msg tea.Msg) {
	h.t.Helper()
	_, _ = h.shell.Update(msg)
}

// press sends a key and returns the resulting command.
func (h *harness) press(key string) tea.Cmd {
	h.t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	_, cmd := h.shell.Update(msg)
	return cmd
}

// pump waits for one posted message and runs it on the shell.
func (h *harness) pump() {
	h.t.Helper()
	select {
	case msg := <-h.msgs:
		h.update(msg)
	case <-time.After(2 * time.Second):
		h.t.Fatal("nothing was posted")
	}
}

// openSettings presses enter on the overview and returns the new screen.
func (h *harness) openSettings() *AccountScreen {
	h.t.Helper()
	h.run(h.press("enter"))
	sc, ok := h.shell.Top().(*AccountScreen)
	if !ok {
		h.t.Fatalf("top screen is %T, want *AccountScreen", h.shell.Top())
	}
	return sc
}
