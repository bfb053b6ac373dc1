package tui

import (
	"context"
	stderrors "errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrz1836/syncstatus/internal/domain"
	"github.com/mrz1836/syncstatus/internal/errors"
	"github.com/mrz1836/syncstatus/internal/screen"
	"github.com/mrz1836/syncstatus/internal/status"
)

// OverviewScreenTitle is the header of the root screen.
const OverviewScreenTitle = "syncstatus"

// AccountReader returns the signed-in account, or errors.ErrNotSignedIn.
type AccountReader interface {
	Account(ctx context.Context) (domain.Account, error)
}

// accountMsg carries the result of loading the account.
type accountMsg struct {
	account domain.Account
	err     error
}

// pushMsg asks the shell to open a screen.
type pushMsg struct {
	screen Screen
}

// PushCmd returns a command that opens sc on top of the current screen.
func PushCmd(sc Screen) tea.Cmd {
	return func() tea.Msg { return pushMsg{screen: sc} }
}

// OverviewScreen is the root screen: who is signed in and when the last
// sync happened. Enter opens the account settings.
type OverviewScreen struct {
	//nolint:containedctx // Required for Bubble Tea async commands
	ctx        context.Context
	accounts   AccountReader
	store      screen.LastSyncStore
	summarizer status.Summarizer
	settings   func() Screen
	styles     *ScreenStyles

	nav      screen.Navigator
	account  domain.Account
	signedIn bool
	loadErr  error
	loaded   bool
}

// NewOverviewScreen creates the root screen. settings builds a fresh
// account settings screen each time it is opened.
func NewOverviewScreen(ctx context.Context, accounts AccountReader, store screen.LastSyncStore, summarizer status.Summarizer, settings func() Screen) *OverviewScreen {
	return &OverviewScreen{
		ctx:        ctx,
		accounts:   accounts,
		store:      store,
		summarizer: summarizer,
		settings:   settings,
		styles:     NewScreenStyles(),
	}
}

// Title implements Screen.
func (o *OverviewScreen) Title() string {
	return OverviewScreenTitle
}

// Open implements Screen.
func (o *OverviewScreen) Open(nav screen.Navigator) tea.Cmd {
	o.nav = nav
	return o.load()
}

// Update implements Screen.
func (o *OverviewScreen) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case accountMsg:
		o.loaded = true
		o.account = msg.account
		o.signedIn = msg.err == nil
		o.loadErr = nil
		if msg.err != nil && !stderrors.Is(msg.err, errors.ErrNotSignedIn) {
			o.loadErr = msg.err
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if o.settings != nil {
				return PushCmd(o.settings())
			}
		case "r":
			return o.load()
		case "q", "esc":
			o.nav.NavigateBack()
		}
	}
	return nil
}

// View implements Screen.
func (o *OverviewScreen) View(width int) string {
	var b strings.Builder

	switch {
	case !o.loaded:
		b.WriteString(o.styles.RowDisabled.Render("Loading account…"))
	case o.loadErr != nil:
		b.WriteString(NewOutputStyles().Error.Render(Truncate(errors.UserMessage(o.loadErr), width)))
	case o.signedIn:
		line := "Signed in as " + o.account.Label()
		if o.account.Profile.DisplayName != "" {
			line += " <" + o.account.Email + ">"
		}
		b.WriteString(o.styles.Row.Render(Truncate(line, width)))
	default:
		b.WriteString(o.styles.RowDisabled.Render("Not signed in"))
	}
	b.WriteString("\n")

	if o.store != nil && o.summarizer != nil {
		b.WriteString(o.styles.Summary.Render(Truncate(o.summarizer.Summary(o.store.Read()), width-2)))
		b.WriteString("\n")
	}

	b.WriteString(o.styles.Help.Render(Truncate("enter: account settings • r: reload • q: quit", width)))
	return b.String()
}

// Pause implements Screen.
func (o *OverviewScreen) Pause() {}

// Resume implements Screen.
func (o *OverviewScreen) Resume() tea.Cmd {
	return o.load()
}

// Close implements Screen.
func (o *OverviewScreen) Close() {}

// SignedIn reports whether the last load found an account.
func (o *OverviewScreen) SignedIn() bool {
	return o.signedIn
}

func (o *OverviewScreen) load() tea.Cmd {
	if o.accounts == nil {
		return nil
	}
	ctx, accounts := o.ctx, o.accounts
	return func() tea.Msg {
		account, err := accounts.Account(ctx)
		return accountMsg{account: account, err: err}
	}
}

var _ Screen = (*OverviewScreen)(nil)
