package engine

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mrz1836/syncstatus/internal/clock"
	"github.com/mrz1836/syncstatus/internal/ctxutil"
	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/lifecycle"
	"github.com/mrz1836/syncstatus/internal/logging"
	"github.com/mrz1836/syncstatus/internal/observer"
)

// Token prefixes; the log filter recognizes both.
const (
	sessionTokenPrefix = "sst_"
	refreshTokenPrefix = "srt_"
)

// SessionStore persists the signed-in session. Load returns (nil, nil)
// when nobody is signed in.
type SessionStore interface {
	Load(ctx context.Context) (*domain.Session, error)
	Save(ctx context.Context, session *domain.Session) error
	Clear(ctx context.Context) error
}

// AccountManager is a single-account engine over a SessionStore.
type AccountManager struct {
	store    SessionStore
	clock    clock.Clock
	logger   zerolog.Logger
	registry *observer.Registry[domain.AccountEvent]

	// mu serializes read-modify-write cycles on the session.
	mu sync.Mutex
}

// NewAccountManager returns a manager backed by store.
func NewAccountManager(store SessionStore, c clock.Clock, logger zerolog.Logger) *AccountManager {
	if c == nil {
		c = clock.RealClock{}
	}
	return &AccountManager{
		store:    store,
		clock:    c,
		logger:   logger.With().Str("component", "account_engine").Logger(),
		registry: observer.NewRegistry[domain.AccountEvent](),
	}
}

// SubscribeAccount registers listener for account events.
func (m *AccountManager) SubscribeAccount(listener func(domain.AccountEvent), scope *lifecycle.Scope, autoPause bool) observer.Registration {
	return m.registry.Register(listener, scope, autoPause)
}

// Login starts a new session, replacing any existing one, and emits
// Authenticated followed by ProfileUpdated.
func (m *AccountManager) Login(ctx context.Context, email, displayName string) (domain.Account, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return domain.Account{}, err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return domain.Account{}, errors.Wrap(errors.ErrEmptyValue, "email")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	acct := domain.Account{
		ID:         uuid.NewString(),
		Email:      email,
		Profile:    domain.Profile{DisplayName: strings.TrimSpace(displayName)},
		SignedInAt: m.clock.Now().UTC(),
	}
	session := &domain.Session{
		Account:      acct,
		Token:        newToken(sessionTokenPrefix),
		RefreshToken: newToken(refreshTokenPrefix),
	}
	if err := m.store.Save(ctx, session); err != nil {
		return domain.Account{}, m.fail(errors.Wrap(err, "failed to save session"))
	}

	m.logger.Info().
		Str("account_id", acct.ID).
		Str("email", logging.SafeValue("email", acct.Email)).
		Msg("signed in")
	m.registry.Notify(domain.Authenticated{Account: acct})
	m.registry.Notify(domain.ProfileUpdated{Profile: acct.Profile})
	return acct, nil
}

// Logout clears the session and emits LoggedOut. A corrupted session is
// cleared too; with no session at all it returns ErrNotSignedIn.
func (m *AccountManager) Logout(ctx context.Context) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.store.Load(ctx)
	switch {
	case err != nil && !stderrors.Is(err, errors.ErrSessionCorrupted):
		return m.fail(errors.Wrap(err, "failed to load session"))
	case err == nil && session == nil:
		return errors.ErrNotSignedIn
	}

	if err := m.store.Clear(ctx); err != nil {
		return m.fail(errors.Wrap(err, "failed to clear session"))
	}

	m.logger.Info().Msg("signed out")
	m.registry.Notify(domain.LoggedOut{})
	return nil
}

// Account returns the signed-in account.
func (m *AccountManager) Account(ctx context.Context) (domain.Account, error) {
	session, err := m.load(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	return session.Account, nil
}

// NeedsReauth reports whether the session was flagged by ReportAuthProblem.
func (m *AccountManager) NeedsReauth(ctx context.Context) (bool, error) {
	session, err := m.load(ctx)
	if err != nil {
		return false, err
	}
	return session.NeedsReauth, nil
}

// ReportAuthProblem flags the session as unusable and emits AuthProblem.
func (m *AccountManager) ReportAuthProblem(ctx context.Context) error {
	return m.update(ctx, func(s *domain.Session) domain.AccountEvent {
		s.NeedsReauth = true
		m.logger.Warn().Str("account_id", s.Account.ID).Msg("authentication problem reported")
		return domain.AuthProblem{}
	})
}

// UpdateProfile replaces the profile and emits ProfileUpdated.
func (m *AccountManager) UpdateProfile(ctx context.Context, p domain.Profile) error {
	return m.update(ctx, func(s *domain.Session) domain.AccountEvent {
		s.Account.Profile = p
		return domain.ProfileUpdated{Profile: p}
	})
}

func (m *AccountManager) update(ctx context.Context, mutate func(*domain.Session) domain.AccountEvent) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.store.Load(ctx)
	if err != nil {
		return m.fail(errors.Wrap(err, "failed to load session"))
	}
	if session == nil {
		return errors.ErrNotSignedIn
	}

	ev := mutate(session)
	if err := m.store.Save(ctx, session); err != nil {
		return m.fail(errors.Wrap(err, "failed to save session"))
	}
	m.registry.Notify(ev)
	return nil
}

func (m *AccountManager) load(ctx context.Context) (*domain.Session, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	session, err := m.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, errors.ErrNotSignedIn
	}
	return session, nil
}

// fail emits AccountError for a persistence failure and returns err.
func (m *AccountManager) fail(err error) error {
	m.logger.Error().Err(err).Msg("account engine error")
	m.registry.Notify(domain.AccountError{Cause: err})
	return err
}

func newToken(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}
