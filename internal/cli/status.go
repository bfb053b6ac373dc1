package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/screen"
	"github.com/mrz1836/syncstatus/internal/status"
	"github.com/mrz1836/syncstatus/internal/tui"
)

// accountStatus reads the signed-in account.
type accountStatus interface {
	Account(ctx context.Context) (domain.Account, error)
	NeedsReauth(ctx context.Context) (bool, error)
}

// statusResult is the JSON form of `syncstatus status`.
type statusResult struct {
	SignedIn       bool            `json:"signed_in"`
	Account        *domain.Account `json:"account,omitempty"`
	NeedsReauth    bool            `json:"needs_reauth,omitempty"`
	LastSyncedAt   *time.Time      `json:"last_synced_at,omitempty"`
	LastSyncFailed bool            `json:"last_sync_failed"`
	Summary        string          `json:"summary"`
}

func newStatusCmd(flags *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the signed-in account and the last sync",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := servicesFor(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()
			return runStatusWithDeps(ctx, cmd.OutOrStdout(), flags.Output, svc.accounts, svc.lastSync, svc.formatter)
		},
	}
}

// runStatusWithDeps prints the account and last sync summary.
func runStatusWithDeps(ctx context.Context, w io.Writer, format string, accounts accountStatus, lastSync screen.LastSyncStore, summarizer status.Summarizer) error {
	result, err := collectStatus(ctx, accounts, lastSync, summarizer)
	if err != nil {
		return outputError(w, format, err)
	}

	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(result)
	}

	out := tui.NewTTYOutput(w)
	if result.SignedIn {
		out.Info(fmt.Sprintf("Signed in as %s <%s>", result.Account.Label(), result.Account.Email))
		if result.NeedsReauth {
			out.Warning("Session needs to be renewed: run `syncstatus login`")
		}
	} else {
		out.Info("Not signed in")
	}
	if result.LastSyncFailed {
		out.Warning(result.Summary)
	} else {
		out.Info(result.Summary)
	}
	return nil
}

func collectStatus(ctx context.Context, accounts accountStatus, lastSync screen.LastSyncStore, summarizer status.Summarizer) (statusResult, error) {
	outcome := lastSync.Read()
	result := statusResult{
		LastSyncFailed: outcome.Failed,
		Summary:        summarizer.Summary(outcome),
	}
	if !outcome.NeverSynced() {
		at := outcome.LastSyncedAt().UTC()
		result.LastSyncedAt = &at
	}

	acct, err := accounts.Account(ctx)
	switch {
	case stderrors.Is(err, errors.ErrNotSignedIn):
		return result, nil
	case err != nil:
		return result, errors.Wrap(err, "failed to read account")
	}

	result.SignedIn = true
	result.Account = &acct
	if reauth, err := accounts.NeedsReauth(ctx); err == nil {
		result.NeedsReauth = reauth
	}
	return result, nil
}
