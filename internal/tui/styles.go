// Package tui provides the terminal user interface for syncstatus.
//
// The Shell is a Bubble Tea model holding a stack of screens. It is the
// UI goroutine: work posted through Shell.Post runs inside Update, so
// screen controllers can touch their state without locks.
//
// # Semantic Colors
//
// Five semantic colors are exported for use across components:
//   - ColorPrimary (Blue): active rows, titles
//   - ColorSuccess (Green): completed actions
//   - ColorWarning (Yellow): syncing, attention required
//   - ColorError (Red): failures
//   - ColorMuted (Gray): disabled rows, help text
//
// # NO_COLOR Support
//
// Call CheckNoColor() at the start of commands that print styled text.
// Colors are also disabled when TERM=dumb.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

//nolint:gochecknoglobals // Intentional package-level constants for TUI styling API
var (
	// ColorPrimary is blue, used for active rows and titles.
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0087AF", Dark: "#00D7FF"}

	// ColorSuccess is green, used for completed actions.
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#008700", Dark: "#00FF87"}

	// ColorWarning is yellow, used while syncing and for attention states.
	ColorWarning = lipgloss.AdaptiveColor{Light: "#AF8700", Dark: "#FFD700"}

	// ColorError is red, used for failures.
	ColorError = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}

	// ColorMuted is gray, used for disabled rows and secondary text.
	ColorMuted = lipgloss.AdaptiveColor{Light: "#585858", Dark: "#6C6C6C"}

	// StyleBold applies bold formatting to text.
	StyleBold = lipgloss.NewStyle().Bold(true)

	// StyleDim applies dim/faint formatting to text.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// OutputStyles holds common output styles.
type OutputStyles struct {
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style
	Dim     lipgloss.Style
}

// NewOutputStyles creates common output styles using AdaptiveColor for light/dark terminal support.
func NewOutputStyles() *OutputStyles {
	return &OutputStyles{
		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),
		Error: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),
		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary),
		Dim: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}

// ScreenStyles holds the styles of the interactive screens.
type ScreenStyles struct {
	Title        lipgloss.Style
	Row          lipgloss.Style
	RowDisabled  lipgloss.Style
	Summary      lipgloss.Style
	Syncing      lipgloss.Style
	Announcement lipgloss.Style
	Help         lipgloss.Style
}

// NewScreenStyles creates the styles used by Shell screens.
func NewScreenStyles() *ScreenStyles {
	return &ScreenStyles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1),
		Row: lipgloss.NewStyle().
			Bold(true),
		RowDisabled: lipgloss.NewStyle().
			Foreground(ColorMuted),
		Summary: lipgloss.NewStyle().
			Foreground(ColorMuted).
			PaddingLeft(2),
		Syncing: lipgloss.NewStyle().
			Foreground(ColorWarning),
		Announcement: lipgloss.NewStyle().
			Foreground(ColorWarning).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(ColorMuted).
			MarginTop(1),
	}
}

// CheckNoColor respects the NO_COLOR environment variable.
// Call this at the start of commands that output styled text.
func CheckNoColor() {
	if !HasColorSupport() {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// HasColorSupport returns true if the terminal supports colors.
// Returns false if NO_COLOR is set (any value including empty string) or TERM=dumb.
// This follows the NO_COLOR standard: https://no-color.org/
func HasColorSupport() bool {
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}
