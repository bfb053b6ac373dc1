package cli

import (
	stderrors "errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mrz1836/syncstatus/internal/errors"
)

// formRunner runs an interactive form. huh.Form satisfies it.
type formRunner interface {
	Run() error
}

// createLoginForm builds the sign-in form. Tests replace it.
//
//nolint:gochecknoglobals // test seam
var createLoginForm = func(email, name *string) formRunner {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("E-mail").
				Placeholder("you@example.com").
				Validate(validateEmail).
				Value(email),
			huh.NewInput().
				Title("Display name").
				Description("Optional. Shown instead of the e-mail address.").
				Value(name),
		),
	)
}

// createLogoutConfirmForm builds the sign-out confirmation. Tests replace it.
//
//nolint:gochecknoglobals // test seam
var createLogoutConfirmForm = func(label string, confirm *bool) formRunner {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Sign out %s?", label)).
				Description("The saved session is removed from this machine.").
				Affirmative("Sign out").
				Negative("Cancel").
				Value(confirm),
		),
	)
}

// runForm runs f, mapping a user abort to ErrOperationCanceled.
func runForm(f formRunner) error {
	if err := f.Run(); err != nil {
		if stderrors.Is(err, huh.ErrUserAborted) {
			return errors.ErrOperationCanceled
		}
		return errors.Wrap(err, "form failed")
	}
	return nil
}

func validateEmail(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return errors.Wrap(errors.ErrEmptyValue, "email")
	}
	if _, err := mail.ParseAddress(s); err != nil {
		return fmt.Errorf("invalid email %q: %w", s, err)
	}
	return nil
}
