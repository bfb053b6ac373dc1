package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mrz1836/syncstatus/internal/config"
	"github.com/mrz1836/syncstatus/internal/constants"
	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/tui"
)

// BuildInfo contains version information set at build time via ldflags.
type BuildInfo struct {
	// Version is the semantic version (e.g., "1.0.0").
	Version string
	// Commit is the git commit hash.
	Commit string
	// Date is the build date.
	Date string
}

// globalLogger stores the initialized logger for use by subcommands.
// It is set during PersistentPreRunE and read through GetLogger.
//
//nolint:gochecknoglobals // CLI logger requires global access
var (
	globalLogger   zerolog.Logger
	globalLoggerMu sync.RWMutex
)

// GetLogger returns the initialized logger for use by subcommands.
//
// It MUST only be called after the root command's PersistentPreRunE has
// executed; before that it returns a zero-value logger that discards output.
func GetLogger() zerolog.Logger {
	globalLoggerMu.RLock()
	defer globalLoggerMu.RUnlock()
	return globalLogger
}

func setLogger(logger zerolog.Logger) {
	globalLoggerMu.Lock()
	globalLogger = logger
	globalLoggerMu.Unlock()
}

// newRootCmd creates and returns the root command for the syncstatus CLI.
func newRootCmd(flags *GlobalFlags, info BuildInfo) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   constants.AppName,
		Short: "Account and sync status for the local sync engine",
		Long: `syncstatus shows who is signed in and when data was last synced.

The settings screen keeps the "Sync now" row and its summary in step with
the sync engine while it runs, and leaves once you sign out.`,
		Version: formatVersion(info),
		// RunE displays help so PersistentPreRunE still validates flags.
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := BindGlobalFlags(v, cmd); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}
			applyBoundFlags(v, flags)

			if !IsValidOutputFormat(flags.Output) {
				return fmt.Errorf("%w: %q must be one of %v", errors.ErrInvalidOutputFormat, flags.Output, ValidOutputFormats())
			}

			ctx := cmd.Context()
			cfg, err := loadConfig(ctx, flags.ConfigFile)
			if err != nil {
				return err
			}

			logger := InitLogger(flags.Verbose, flags.Quiet, cfg.Logging)
			setLogger(logger)

			cmd.SetContext(WithConfig(logger.WithContext(ctx), cfg))
			return nil
		},
		// Errors are printed by Execute; usage is not repeated on error.
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	AddGlobalFlags(cmd, flags)

	cmd.AddCommand(
		newSettingsCmd(),
		newStatusCmd(flags),
		newSyncCmd(flags),
		newLoginCmd(flags),
		newLogoutCmd(flags),
		newConfigCmd(flags),
	)

	return cmd
}

// loadConfig loads path when given, otherwise the layered project and
// global files.
func loadConfig(ctx context.Context, path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadFile(ctx, path)
		if err != nil {
			return nil, errors.NewExitCode2Error(err)
		}
		return cfg, nil
	}
	return config.Load(ctx)
}

// formatVersion creates the version string from build info.
func formatVersion(info BuildInfo) string {
	if info.Version == "" {
		info.Version = "dev"
	}
	if info.Commit == "" {
		info.Commit = "none"
	}
	if info.Date == "" {
		info.Date = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
}

// Execute runs the root command with the provided context and build info.
func Execute(ctx context.Context, info BuildInfo) error {
	flags := &GlobalFlags{}
	//nolint:contextcheck // Cobra command pattern uses cmd.Context() internally
	cmd := newRootCmd(flags, info)
	err := cmd.ExecuteContext(ctx)
	reportError(cmd.ErrOrStderr(), err)
	return err
}

// reportError prints err for humans unless it was already written as JSON.
func reportError(w io.Writer, err error) {
	if err == nil || stderrors.Is(err, errors.ErrJSONErrorOutput) {
		return
	}
	GetLogger().Debug().Err(err).Msg("command failed")
	tui.NewTTYOutput(w).Error(err)
}
