package cli

import (
	"os"

	"golang.org/x/term"
)

// terminalCheck reports whether stdin is interactive. Tests replace it.
//
//nolint:gochecknoglobals // test seam
var terminalCheck = isTerminal

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int
}
