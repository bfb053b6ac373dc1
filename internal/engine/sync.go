package engine

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/mrz1836/syncstatus/internal/clock"
	"github.com/mrz1836/syncstatus/internal/constants"
	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/lifecycle"
	"github.com/mrz1836/syncstatus/internal/observer"
)

// OutcomeStore persists the last sync outcome.
type OutcomeStore interface {
	Read() domain.SyncOutcome
	Record(ctx context.Context, outcome domain.SyncOutcome) error
}

// SyncManagerConfig configures a SyncManager. Zero values take defaults.
type SyncManagerConfig struct {
	Syncer   Syncer
	Store    OutcomeStore
	Clock    clock.Clock
	Schedule string
	Timeout  time.Duration
	Logger   zerolog.Logger
}

// SyncManager runs at most one sync at a time and publishes
// SyncStarted, then SyncIdle or SyncError, for every run.
type SyncManager struct {
	syncer   Syncer
	store    OutcomeStore
	clock    clock.Clock
	schedule string
	timeout  time.Duration
	logger   zerolog.Logger
	registry *observer.Registry[domain.SyncEvent]

	running atomic.Bool
	runs    sync.WaitGroup

	mu      sync.Mutex
	baseCtx context.Context //nolint:containedctx // parent of triggered runs, replaced by Start
	cancel  context.CancelFunc
	cron    *cron.Cron
}

// NewSyncManager builds a stopped manager.
func NewSyncManager(cfg SyncManagerConfig) *SyncManager {
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.Schedule == "" {
		cfg.Schedule = constants.DefaultSyncSchedule
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.DefaultSyncTimeout
	}
	logger := cfg.Logger.With().Str("component", "sync_engine").Logger()
	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	return &SyncManager{
		syncer:   cfg.Syncer,
		store:    cfg.Store,
		clock:    cfg.Clock,
		schedule: cfg.Schedule,
		timeout:  cfg.Timeout,
		logger:   logger,
		registry: observer.NewRegistry[domain.SyncEvent](),
		baseCtx:  ctx,
		cancel:   cancel,
	}
}

// IsRunning reports whether a run is in flight.
func (m *SyncManager) IsRunning() bool {
	return m.running.Load()
}

// SubscribeSync registers listener for sync events.
func (m *SyncManager) SubscribeSync(listener func(domain.SyncEvent), scope *lifecycle.Scope, autoPause bool) observer.Registration {
	return m.registry.Register(listener, scope, autoPause)
}

// TriggerSync starts a run in the background. It does nothing while a run
// is in flight.
func (m *SyncManager) TriggerSync() {
	if !m.running.CompareAndSwap(false, true) {
		m.logger.Debug().Msg("sync already running, trigger ignored")
		return
	}
	m.mu.Lock()
	ctx := m.baseCtx
	m.mu.Unlock()

	m.runs.Add(1)
	go func() {
		defer m.runs.Done()
		_ = m.run(ctx)
	}()
}

// SyncNow runs a sync and waits for it. It returns ErrSyncInProgress when
// another run is in flight and the run's error otherwise.
func (m *SyncManager) SyncNow(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.running.CompareAndSwap(false, true) {
		return errors.ErrSyncInProgress
	}
	m.runs.Add(1)
	defer m.runs.Done()
	return m.run(ctx)
}

// Start schedules background runs until ctx is canceled or Stop is called.
func (m *SyncManager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cron != nil {
		return nil
	}

	m.cancel()
	m.baseCtx, m.cancel = context.WithCancel(ctx)

	logger := cronLogger{logger: m.logger}
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithLogger(logger),
		cron.WithChain(cron.Recover(logger)),
	)
	if _, err := c.AddFunc(m.schedule, m.TriggerSync); err != nil {
		return errors.Wrapf(errors.ErrConfigInvalidSync, "schedule %q: %v", m.schedule, err)
	}
	c.Start()
	m.cron = c

	stop := m.baseCtx
	go func() {
		<-stop.Done()
		m.Stop()
	}()

	m.logger.Info().Str("schedule", m.schedule).Msg("sync scheduler started")
	return nil
}

// Stop halts the schedule, cancels runs in flight and waits for them.
// It is idempotent.
func (m *SyncManager) Stop() {
	m.mu.Lock()
	c := m.cron
	m.cron = nil
	m.cancel()
	m.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
		m.logger.Info().Msg("sync scheduler stopped")
	}
	m.runs.Wait()
}

// run performs one sync. The caller must have set running.
func (m *SyncManager) run(ctx context.Context) error {
	started := m.clock.Now()
	m.logger.Info().Msg("sync started")
	m.registry.Notify(domain.SyncStarted{})

	runCtx, cancel := context.WithTimeout(ctx, m.timeout)
	err := m.doSync(runCtx)
	if err != nil && stderrors.Is(runCtx.Err(), context.DeadlineExceeded) {
		err = errors.Wrapf(errors.ErrSyncTimeout, "after %s", m.timeout)
	}
	cancel()

	var outcome domain.SyncOutcome
	if err == nil {
		outcome = domain.Succeeded(m.clock.Now())
	} else {
		outcome = domain.FailedAfter(m.readOutcome())
	}
	if m.store != nil {
		if recErr := m.store.Record(context.WithoutCancel(ctx), outcome); recErr != nil {
			m.logger.Warn().Err(recErr).Msg("failed to record sync outcome")
		}
	}

	m.running.Store(false)

	elapsed := m.clock.Now().Sub(started)
	if err != nil {
		m.logger.Warn().Err(err).Dur("elapsed", elapsed).Msg("sync failed")
		m.registry.Notify(domain.SyncError{Cause: err})
		return err
	}
	m.logger.Info().Dur("elapsed", elapsed).Msg("sync finished")
	m.registry.Notify(domain.SyncIdle{})
	return nil
}

func (m *SyncManager) doSync(ctx context.Context) error {
	if m.syncer == nil {
		return nil
	}
	return m.syncer.Sync(ctx)
}

func (m *SyncManager) readOutcome() domain.SyncOutcome {
	if m.store == nil {
		return domain.SyncOutcome{}
	}
	return m.store.Read()
}
