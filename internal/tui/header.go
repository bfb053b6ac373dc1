package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// narrowThreshold is the width below which the header drops its rule.
	narrowThreshold = 40

	ellipsis = "…"
)

// Header renders the shell's title bar.
type Header struct {
	title  string
	width  int
	locale language.Tag
}

// NewHeader creates a header for title at the given terminal width.
// Width of 0 or less renders the bare title.
func NewHeader(title string, width int, locale language.Tag) *Header {
	return &Header{title: title, width: width, locale: locale}
}

// Render returns the title in upper case followed by a rule that fills the width.
func (h *Header) Render() string {
	title := cases.Upper(h.locale).String(h.title)
	if h.width < narrowThreshold {
		return lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Render(Truncate(title, h.width))
	}

	label := "═══ " + title + " "
	rule := h.width - runewidth.StringWidth(label)
	if rule > 0 {
		label += strings.Repeat("═", rule)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary).Render(Truncate(label, h.width))
}

// Truncate shortens s to at most width terminal cells, ending in an
// ellipsis when cut. Width of 0 or less returns s unchanged.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// TerminalWidth returns the width of stdout, or 0 when it is not a terminal.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0
	}
	return width
}
