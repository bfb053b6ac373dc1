package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/tui"
)

// loginEngine signs an account in.
type loginEngine interface {
	Login(ctx context.Context, email, displayName string) (domain.Account, error)
}

type loginOptions struct {
	email string
	name  string
}

// loginResult is the JSON form of a successful `syncstatus login`.
type loginResult struct {
	SignedIn bool           `json:"signed_in"`
	Account  domain.Account `json:"account"`
}

func newLoginCmd(flags *GlobalFlags) *cobra.Command {
	var opts loginOptions

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the local account engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			svc, err := servicesFor(ctx)
			if err != nil {
				return err
			}
			defer svc.Close()
			return runLoginWithDeps(ctx, cmd.OutOrStdout(), flags.Output, svc.accounts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "account e-mail address (prompted when omitted)")
	cmd.Flags().StringVar(&opts.name, "name", "", "display name")

	return cmd
}

// runLoginWithDeps signs in, prompting for the e-mail address on a terminal.
func runLoginWithDeps(ctx context.Context, w io.Writer, format string, accounts loginEngine, opts loginOptions) error {
	if strings.TrimSpace(opts.email) == "" {
		if format == OutputJSON || !terminalCheck() {
			return outputError(w, format, errors.NewExitCode2Error(errors.Wrap(errors.ErrEmptyValue, "--email is required in non-interactive mode")))
		}
		if err := runForm(createLoginForm(&opts.email, &opts.name)); err != nil {
			return outputError(w, format, err)
		}
	}

	if err := validateEmail(opts.email); err != nil {
		return outputError(w, format, errors.NewExitCode2Error(err))
	}

	acct, err := accounts.Login(ctx, opts.email, opts.name)
	if err != nil {
		return outputError(w, format, errors.Wrap(err, "failed to sign in"))
	}

	if format == OutputJSON {
		return tui.NewJSONOutput(w).JSON(loginResult{SignedIn: true, Account: acct})
	}
	tui.NewTTYOutput(w).Success(fmt.Sprintf("Signed in as %s <%s>", acct.Label(), acct.Email))
	return nil
}
