package cli

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/lifecycle"
	"github.com/mrz1836/syncstatus/internal/screen"
	"github.com/mrz1836/syncstatus/internal/status"
)

// syncScheduler is a sync engine that can also run on a schedule.
type syncScheduler interface {
	screen.SyncEngine
	Start(ctx context.Context) error
	Stop()
}

// syncDeps holds the collaborators of `syncstatus sync`.
type syncDeps struct {
	engine     syncScheduler
	accounts   screen.AccountEngine
	lastSync   screen.LastSyncStore
	formatter  *status.Formatter
	logger     zerolog.Logger
	interrupts InterruptNotifier
}

type syncOptions struct {
	wait bool
}

func newSyncCmd(flags *GlobalFlags) *cobra.Command {
	var opts syncOptions

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync now and print the account screen's sync row",
		Long: `Sync now runs one sync and prints the "Sync now" row as it changes.

With --wait it keeps following scheduled syncs (sync.schedule) until
interrupted or until the account is signed out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := servicesFor(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			return runSyncWithDeps(ctx, cmd.OutOrStdout(), flags.Output, syncDeps{
				engine:     svc.sync,
				accounts:   svc.accounts,
				lastSync:   svc.lastSync,
				formatter:  svc.formatter,
				logger:     svc.logger,
				interrupts: interruptsFromContext(ctx),
			}, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.wait, "wait", false, "keep following scheduled syncs until interrupted")

	return cmd
}

// runSyncWithDeps drives an account screen controller without a terminal:
// it presses "sync now" and prints every state the screen would show.
func runSyncWithDeps(ctx context.Context, w io.Writer, format string, deps syncDeps, opts syncOptions) error {
	looper := screen.NewLooper()
	defer looper.Close()

	scope := lifecycle.NewScope("sync_command")
	scope.Start()
	defer scope.Destroy()

	r := newHeadlessRenderer(w, format, deps.formatter.SyncingLabel(), deps.logger)
	ctrl := screen.NewAccountController(ctx, screen.AccountControllerDeps{
		SyncEngine:    deps.engine,
		AccountEngine: deps.accounts,
		Store:         deps.lastSync,
		Summarizer:    deps.formatter,
		Renderer:      r,
		Navigator:     r,
		Poster:        looper,
		Logger:        deps.logger,
	})
	defer ctrl.Deactivate()
	if deps.interrupts != nil {
		deps.interrupts.OnInterrupt(ctrl.Deactivate)
	}

	if opts.wait {
		// Start replaces the engine's run context, so it goes before the press.
		if err := deps.engine.Start(ctx); err != nil {
			return err
		}
		defer deps.engine.Stop()
	}

	looper.Post(func() {
		ctrl.Activate(scope)
		ctrl.OnSyncNowPressed()
	})

	if opts.wait {
		select {
		case <-r.Left():
			return errors.Wrap(errors.ErrNotSignedIn, "account screen closed")
		case <-ctx.Done():
			return nil
		}
	}

	select {
	case <-r.Finished():
		if outcome := deps.lastSync.Read(); outcome.Failed {
			return errors.Wrap(errors.ErrSyncFailed, deps.formatter.Summary(outcome))
		}
		return nil
	case <-r.Left():
		return errors.Wrap(errors.ErrNotSignedIn, "account screen closed")
	case <-ctx.Done():
		return ctx.Err()
	}
}
