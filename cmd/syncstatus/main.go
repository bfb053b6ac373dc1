// Package main provides the entry point for the syncstatus CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/syncstatus/internal/cli"
	"github.com/mrz1836/syncstatus/internal/signal"
)

// Set via ldflags at build time.
//
//nolint:gochecknoglobals // ldflags targets
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run())
}

func run() int {
	sig := signal.NewHandler(context.Background())
	defer sig.Stop()
	defer cli.CloseLogFile()

	ctx := cli.WithInterruptNotifier(sig.Context(), sig)
	err := cli.Execute(ctx, cli.BuildInfo{Version: version, Commit: commit, Date: date})
	return cli.ExitCodeForError(err)
}
