package tui

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/mrz1836/syncstatus/internal/screen"
)

// defaultWidth is used until the terminal reports its size.
const defaultWidth = 80

// Screen is one entry of the shell's stack. All methods run on the UI
// goroutine.
type Screen interface {
	// Title is shown in the header while the screen is on top.
	Title() string

	// Open is called once when the screen is pushed.
	Open(nav screen.Navigator) tea.Cmd

	// Update handles a message while the screen is on top.
	Update(msg tea.Msg) tea.Cmd

	// View renders the screen body for the given width.
	View(width int) string

	// Pause and Resume bracket the time another screen covers this one.
	Pause()
	Resume() tea.Cmd

	// Close is called once when the screen leaves the stack.
	Close()
}

// postMsg carries work posted from another goroutine.
type postMsg struct {
	fn func()
}

// Shell is the root Bubble Tea model. It owns the screen stack and is the
// screen.Poster of every controller it hosts.
type Shell struct {
	logger   zerolog.Logger
	locale   language.Tag
	maxWidth int

	stack    []Screen
	width    int
	pending  []tea.Cmd
	quitting bool

	forward *screen.Looper
	ready   chan struct{}
	stop    chan struct{}
	once    sync.Once
	mu      sync.Mutex
	send    func(tea.Msg)
}

// ShellOption configures a Shell.
type ShellOption func(*Shell)

// WithLocale sets the header casing locale.
func WithLocale(tag language.Tag) ShellOption {
	return func(s *Shell) { s.locale = tag }
}

// WithMaxWidth caps the rendering width. Zero means the terminal width.
func WithMaxWidth(width int) ShellOption {
	return func(s *Shell) { s.maxWidth = width }
}

// NewShell creates a shell with root at the bottom of the stack.
// Call Bind before running the program and Close after it exits.
func NewShell(root Screen, logger zerolog.Logger, opts ...ShellOption) *Shell {
	s := &Shell{
		logger:  logger.With().Str("component", "tui").Logger(),
		locale:  language.English,
		width:   defaultWidth,
		forward: screen.NewLooper(),
		ready:   make(chan struct{}),
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.stack = []Screen{root}
	return s
}

// Bind connects the shell to the program that runs it.
func (s *Shell) Bind(p *tea.Program) {
	s.BindSender(p.Send)
}

// BindSender connects the shell to a message sink. Posts made before the
// sink is bound are held and delivered in order once it is.
func (s *Shell) BindSender(send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.send != nil {
		return
	}
	s.send = send
	close(s.ready)
}

// Post implements screen.Poster. fn runs inside Update. Posts are dropped
// after Close.
func (s *Shell) Post(fn func()) {
	s.forward.Post(func() {
		select {
		case <-s.ready:
		case <-s.stop:
			return
		}
		s.mu.Lock()
		send := s.send
		s.mu.Unlock()
		send(postMsg{fn: fn})
	})
}

// Close tears down every screen still on the stack and stops forwarding
// posts. Safe to call more than once.
func (s *Shell) Close() {
	s.once.Do(func() {
		close(s.stop)
		s.forward.Close()
		for i := len(s.stack) - 1; i >= 0; i-- {
			s.stack[i].Close()
		}
		s.stack = nil
	})
}

// Push opens next on top of the current screen.
func (s *Shell) Push(next Screen) tea.Cmd {
	if top := s.top(); top != nil {
		top.Pause()
	}
	s.stack = append(s.stack, next)
	s.logger.Debug().Str("screen", next.Title()).Int("depth", len(s.stack)).Msg("screen pushed")
	return next.Open(s.navigatorFor(next))
}

// Depth returns the number of screens on the stack.
func (s *Shell) Depth() int {
	return len(s.stack)
}

// Top returns the screen on top of the stack, or nil.
func (s *Shell) Top() Screen {
	return s.top()
}

// Init implements tea.Model.
func (s *Shell) Init() tea.Cmd {
	root := s.top()
	if root == nil {
		return tea.Quit
	}
	return root.Open(s.navigatorFor(root))
}

// Update implements tea.Model.
func (s *Shell) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case postMsg:
		msg.fn()
	case pushMsg:
		s.pending = append(s.pending, s.Push(msg.screen))
		return s, s.flush()
	case tea.WindowSizeMsg:
		s.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			s.quit()
			return s, s.flush()
		}
	}

	if top := s.top(); top != nil {
		s.pending = append(s.pending, top.Update(msg))
	}
	return s, s.flush()
}

// View implements tea.Model.
func (s *Shell) View() string {
	top := s.top()
	if top == nil {
		return ""
	}
	width := s.renderWidth()

	var b strings.Builder
	b.WriteString(NewHeader(top.Title(), width, s.locale).Render())
	b.WriteString("\n\n")
	b.WriteString(top.View(width))
	b.WriteString("\n")
	return b.String()
}

func (s *Shell) renderWidth() int {
	if s.maxWidth > 0 && s.maxWidth < s.width {
		return s.maxWidth
	}
	return s.width
}

func (s *Shell) top() Screen {
	if len(s.stack) == 0 {
		return nil
	}
	return s.stack[len(s.stack)-1]
}

// pop removes sc if it is on top. Popping the root quits.
func (s *Shell) pop(sc Screen) {
	if s.top() != sc {
		s.logger.Debug().Str("screen", sc.Title()).Msg("navigate back from a covered screen ignored")
		return
	}
	if len(s.stack) == 1 {
		s.quit()
		return
	}

	s.stack = s.stack[:len(s.stack)-1]
	sc.Close()
	s.logger.Debug().Str("screen", sc.Title()).Int("depth", len(s.stack)).Msg("screen popped")
	s.pending = append(s.pending, s.top().Resume())
}

func (s *Shell) quit() {
	s.quitting = true
	s.pending = append(s.pending, tea.Quit)
}

// Quitting reports whether the shell asked the program to exit.
func (s *Shell) Quitting() bool {
	return s.quitting
}

func (s *Shell) flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

func (s *Shell) navigatorFor(sc Screen) screen.Navigator {
	return navigator{shell: s, screen: sc}
}

// navigator pops one specific screen.
type navigator struct {
	shell  *Shell
	screen Screen
}

func (n navigator) NavigateBack() {
	n.shell.pop(n.screen)
}

var (
	_ tea.Model     = (*Shell)(nil)
	_ screen.Poster = (*Shell)(nil)
)
