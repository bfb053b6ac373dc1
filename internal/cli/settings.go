package cli

import (
	"context"
	stderrors "errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/tui"
)

func newSettingsCmd() *cobra.Command {
	var direct bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Open the interactive account settings screen",
		Long: `Open the account overview. Enter shows the account settings screen with
"Sync now" and "Sign out"; scheduled syncs keep running while it is open.

Keys: s sync now, o sign out, esc back, ctrl+c quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !terminalCheck() {
				return errors.ErrTerminalRequired
			}
			ctx := cmd.Context()
			svc, err := servicesFor(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()

			restore := muteConsole()
			defer restore()

			return runSettings(ctx, svc, direct, tea.WithAltScreen())
		},
	}

	cmd.Flags().BoolVar(&direct, "account", false, "open the account settings screen directly")

	return cmd
}

// newSettingsShell builds the overview screen with the account settings
// screen behind it. Account screens post engine events through the shell.
func newSettingsShell(ctx context.Context, svc *services) (*tui.Shell, func() tui.Screen) {
	var shell *tui.Shell

	settings := func() tui.Screen {
		return tui.NewAccountScreen(ctx, tui.AccountScreenConfig{
			SyncEngine:      svc.sync,
			AccountEngine:   svc.accounts,
			Store:           svc.lastSync,
			Summarizer:      svc.formatter,
			Poster:          shell,
			Logger:          svc.logger,
			RefreshInterval: svc.cfg.UI.RefreshInterval,
		})
	}
	root := tui.NewOverviewScreen(ctx, svc.accounts, svc.lastSync, svc.formatter, settings)

	shell = tui.NewShell(root, svc.logger,
		tui.WithLocale(svc.formatter.Locale()),
		tui.WithMaxWidth(svc.cfg.UI.MaxWidth),
	)
	return shell, settings
}

// runSettings runs the TUI with the sync scheduler in the background.
// Leaving the TUI stops the scheduler.
func runSettings(ctx context.Context, svc *services, direct bool, opts ...tea.ProgramOption) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	if err := svc.sync.Start(gctx); err != nil {
		return err
	}

	shell, settings := newSettingsShell(gctx, svc)
	opts = append([]tea.ProgramOption{tea.WithContext(gctx), tea.WithoutSignalHandler()}, opts...)
	p := tea.NewProgram(shell, opts...)
	shell.Bind(p)

	if direct {
		// Send returns once the program reads it or exits.
		go p.Send(tui.PushCmd(settings())())
	}

	g.Go(func() error {
		<-gctx.Done()
		svc.sync.Stop()
		return nil
	})

	g.Go(func() error {
		defer cancel()
		defer shell.Close()

		_, err := p.Run()
		if err != nil && stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			// Interrupted from outside; the command context carries the reason.
			return nil
		}
		return err
	})

	err := g.Wait()
	svc.logger.Debug().Err(err).Msg("settings screen closed")
	return err
}
