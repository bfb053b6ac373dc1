package cli

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/mrz1836/syncstatus/internal/screen"
	"github.com/mrz1836/syncstatus/internal/status"
	"github.com/mrz1836/syncstatus/internal/tui"
)

// stateLine is the JSON line written for each rendered state.
type stateLine struct {
	Type        string `json:"type"`
	SyncLabel   string `json:"sync_label"`
	SyncEnabled bool   `json:"sync_enabled"`
	Summary     string `json:"summary"`
}

// headlessRenderer prints account screen states to a writer instead of a
// terminal UI. It runs on a Looper goroutine.
type headlessRenderer struct {
	w         io.Writer
	format    string
	out       tui.Output
	logger    zerolog.Logger
	syncLabel string

	last     status.DisplayState
	rendered bool

	finished     chan struct{}
	left         chan struct{}
	finishedOnce sync.Once
	leftOnce     sync.Once
}

var (
	_ screen.Renderer  = (*headlessRenderer)(nil)
	_ screen.Navigator = (*headlessRenderer)(nil)
)

func newHeadlessRenderer(w io.Writer, format string, syncingLabel string, logger zerolog.Logger) *headlessRenderer {
	return &headlessRenderer{
		w:         w,
		format:    format,
		out:       tui.NewOutput(w, format),
		logger:    logger,
		syncLabel: syncingLabel,
		finished:  make(chan struct{}),
		left:      make(chan struct{}),
	}
}

// Render implements screen.Renderer.
func (r *headlessRenderer) Render(state status.DisplayState) {
	prev, had := r.last, r.rendered
	r.last, r.rendered = state, true

	if r.format == OutputJSON {
		//nolint:errchkjson // Render has no error return
		_ = json.NewEncoder(r.w).Encode(stateLine{
			Type:        "state",
			SyncLabel:   state.SyncLabel.String(),
			SyncEnabled: state.SyncEnabled,
			Summary:     state.Summary,
		})
	} else if state.SyncLabel == status.Syncing {
		r.out.Info(r.syncLabel)
	} else {
		r.out.Info(state.Summary)
	}

	if had && prev.SyncLabel == status.Syncing && state.SyncLabel == status.Idle {
		r.finishedOnce.Do(func() { close(r.finished) })
	}
}

// Announce implements screen.Renderer.
func (r *headlessRenderer) Announce(text string) {
	r.logger.Info().Str("announcement", text).Msg("screen announcement")
}

// NavigateBack implements screen.Navigator.
func (r *headlessRenderer) NavigateBack() {
	r.leftOnce.Do(func() { close(r.left) })
}

// Finished is closed the first time a sync goes from running to idle.
func (r *headlessRenderer) Finished() <-chan struct{} {
	return r.finished
}

// Left is closed when the screen asks to be closed.
func (r *headlessRenderer) Left() <-chan struct{} {
	return r.left
}
