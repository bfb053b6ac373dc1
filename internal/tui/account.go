package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mrz1836/syncstatus/internal/clock"
	"github.com/mrz1836/syncstatus/internal/constants"
	"github.com/mrz1836/syncstatus/internal/lifecycle"
	"github.com/mrz1836/syncstatus/internal/screen"
	"github.com/mrz1836/syncstatus/internal/status"
)

// AccountScreenTitle is the header of the account settings screen.
const AccountScreenTitle = "Account settings"

// announceTTL is how long an announcement stays on screen.
const announceTTL = 3 * time.Second

// summaryIndent is the left padding of the summary line.
const summaryIndent = 6

// AccountScreenConfig holds the collaborators of an AccountScreen.
type AccountScreenConfig struct {
	SyncEngine    screen.SyncEngine
	AccountEngine screen.AccountEngine
	Store         screen.LastSyncStore
	Summarizer    status.Summarizer
	Poster        screen.Poster
	Clock         clock.Clock
	Logger        zerolog.Logger

	// RefreshInterval re-renders the relative time. Zero uses the default.
	RefreshInterval time.Duration
}

// refreshMsg re-reads the stored outcome. gen discards ticks scheduled
// before the screen was last resumed.
type refreshMsg struct {
	gen int
}

// announceExpiredMsg clears the announcement shown at shownAt.
type announceExpiredMsg struct {
	shownAt time.Time
}

// AccountScreen shows "sync now" with the last sync summary and "sign out".
// It is the screen.Renderer of its controller.
type AccountScreen struct {
	cfg    AccountScreenConfig
	styles *ScreenStyles

	//nolint:containedctx // Required for the controller's background sign out
	ctx context.Context

	scope *lifecycle.Scope
	ctrl  *screen.AccountController
	nav   screen.Navigator

	state       status.DisplayState
	renders     int
	announce    string
	announcedAt time.Time
	announceDue bool

	spinner  spinner.Model
	spinning bool
	gen      int
}

// NewAccountScreen creates the screen. Nothing is subscribed until the
// shell opens it.
func NewAccountScreen(ctx context.Context, cfg AccountScreenConfig) *AccountScreen {
	if cfg.Clock == nil {
		cfg.Clock = clock.RealClock{}
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = constants.DefaultRefreshInterval
	}
	return &AccountScreen{
		cfg:    cfg,
		styles: NewScreenStyles(),
		ctx:    ctx,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(NewScreenStyles().Syncing),
		),
	}
}

// Title implements Screen.
func (a *AccountScreen) Title() string {
	return AccountScreenTitle
}

// Open implements Screen.
func (a *AccountScreen) Open(nav screen.Navigator) tea.Cmd {
	a.nav = nav
	a.scope = lifecycle.NewScope("account_settings")
	a.scope.Start()
	a.ctrl = screen.NewAccountController(a.ctx, screen.AccountControllerDeps{
		SyncEngine:    a.cfg.SyncEngine,
		AccountEngine: a.cfg.AccountEngine,
		Store:         a.cfg.Store,
		Summarizer:    a.cfg.Summarizer,
		Renderer:      a,
		Navigator:     nav,
		Poster:        a.cfg.Poster,
		Logger:        a.cfg.Logger,
	})
	a.ctrl.Activate(a.scope)
	return tea.Batch(a.scheduleRefresh(), a.followUp())
}

// Update implements Screen.
func (a *AccountScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			a.ctrl.OnSyncNowPressed()
		case "o":
			a.ctrl.OnSignOutPressed()
		case "esc", "backspace", "q":
			a.nav.NavigateBack()
			return nil
		}

	case spinner.TickMsg:
		if a.state.SyncLabel != status.Syncing {
			a.spinning = false
			return nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return cmd

	case refreshMsg:
		if msg.gen != a.gen || !a.ctrl.Alive() {
			return nil
		}
		a.ctrl.Refresh()
		return tea.Batch(a.scheduleRefresh(), a.followUp())

	case announceExpiredMsg:
		if msg.shownAt.Equal(a.announcedAt) {
			a.announce = ""
		}
		return nil
	}

	return a.followUp()
}

// View implements Screen.
func (a *AccountScreen) View(width int) string {
	var b strings.Builder

	if a.state.SyncLabel == status.Syncing {
		b.WriteString(a.spinner.View())
		b.WriteString(" ")
		b.WriteString(a.styles.RowDisabled.Render(a.cfg.Summarizer.SyncingLabel()))
	} else {
		b.WriteString(a.row("s", "Sync now", a.state.SyncEnabled))
	}
	b.WriteString("\n")
	b.WriteString(a.styles.Summary.Render(strings.Repeat(" ", summaryIndent-2) + Truncate(a.state.Summary, width-summaryIndent)))
	b.WriteString("\n\n")

	if a.ctrl != nil && a.ctrl.SigningOut() {
		b.WriteString(a.styles.RowDisabled.Render("    Signing out…"))
	} else {
		b.WriteString(a.row("o", "Sign out", true))
	}
	b.WriteString("\n")

	if a.announce != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Announcement.Render(Truncate(a.announce, width)))
		b.WriteString("\n")
	}

	b.WriteString(a.styles.Help.Render(Truncate("s: sync now • o: sign out • esc: back", width)))
	return b.String()
}

// Pause implements Screen.
func (a *AccountScreen) Pause() {
	a.scope.Stop()
}

// Resume implements Screen.
func (a *AccountScreen) Resume() tea.Cmd {
	a.scope.Start()
	a.gen++
	a.spinning = false
	a.ctrl.Refresh()
	return tea.Batch(a.scheduleRefresh(), a.followUp())
}

// Close implements Screen.
func (a *AccountScreen) Close() {
	if a.ctrl != nil {
		a.ctrl.Deactivate()
	}
	if a.scope != nil {
		a.scope.Destroy()
	}
}

// Render implements screen.Renderer.
func (a *AccountScreen) Render(state status.DisplayState) {
	a.state = state
	a.renders++
}

// Announce implements screen.Renderer.
func (a *AccountScreen) Announce(text string) {
	a.announce = text
	a.announcedAt = a.cfg.Clock.Now()
	a.announceDue = true
}

// State returns the last rendered state.
func (a *AccountScreen) State() status.DisplayState {
	return a.state
}

// Renders counts Render calls.
func (a *AccountScreen) Renders() int {
	return a.renders
}

// Announcement returns the announcement currently shown.
func (a *AccountScreen) Announcement() string {
	return a.announce
}

// Controller returns the screen's controller, nil before Open.
func (a *AccountScreen) Controller() *screen.AccountController {
	return a.ctrl
}

func (a *AccountScreen) row(key, label string, enabled bool) string {
	text := "[" + key + "] " + label
	if !enabled {
		return a.styles.RowDisabled.Render(text)
	}
	return a.styles.Row.Render(text)
}

func (a *AccountScreen) scheduleRefresh() tea.Cmd {
	gen := a.gen
	return tea.Tick(a.cfg.RefreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{gen: gen}
	})
}

// followUp starts the spinner when a sync began and schedules the
// announcement to expire.
func (a *AccountScreen) followUp() tea.Cmd {
	var cmds []tea.Cmd
	if a.state.SyncLabel == status.Syncing && !a.spinning {
		a.spinning = true
		cmds = append(cmds, a.spinner.Tick)
	}
	if a.announceDue {
		a.announceDue = false
		shownAt := a.announcedAt
		cmds = append(cmds, tea.Tick(announceTTL, func(time.Time) tea.Msg {
			return announceExpiredMsg{shownAt: shownAt}
		}))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

var (
	_ Screen          = (*AccountScreen)(nil)
	_ screen.Renderer = (*AccountScreen)(nil)
)
