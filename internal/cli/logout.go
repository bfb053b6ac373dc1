package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/tui"
)

// logoutEngine signs the current account out.
type logoutEngine interface {
	Account(ctx context.Context) (domain.Account, error)
	Logout(ctx context.Context) error
}

type logoutOptions struct {
	force bool
}

// logoutResult is the JSON form of `syncstatus logout`.
type logoutResult struct {
	SignedOut bool   `json:"signed_out"`
	Email     string `json:"email,omitempty"`
}

func newLogoutCmd(flags *GlobalFlags) *cobra.Command {
	var opts logoutOptions

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out and remove the saved session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := servicesFor(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()
			return runLogoutWithDeps(ctx, cmd.OutOrStdout(), flags.Output, svc.accounts, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "skip the confirmation prompt")

	return cmd
}

// runLogoutWithDeps confirms, then signs out. A corrupted session can
// still be signed out of; it is removed.
func runLogoutWithDeps(ctx context.Context, w io.Writer, format string, accounts logoutEngine, opts logoutOptions) error {
	label := "the saved session"
	acct, err := accounts.Account(ctx)
	switch {
	case stderrors.Is(err, errors.ErrNotSignedIn):
		return outputError(w, format, err)
	case err == nil:
		label = acct.Label()
	}

	if !opts.force {
		if format == OutputJSON || !terminalCheck() {
			return outputError(w, format, errors.ErrNonInteractiveMode)
		}
		confirm := false
		if err := runForm(createLogoutConfirmForm(label, &confirm)); err != nil {
			return outputError(w, format, err)
		}
		if !confirm {
			tui.NewTTYOutput(w).Info("Sign out canceled")
			return nil
		}
	}

	if err := accounts.Logout(ctx); err != nil {
		return outputError(w, format, fmt.Errorf("%w: %w", errors.ErrLogoutFailed, err))
	}

	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(logoutResult{SignedOut: true, Email: acct.Email})
	}
	tui.NewTTYOutput(w).Success("Signed out of " + label)
	return nil
}
