// Package style defines lipgloss styles for the TUI.
package style

import "github.com/charmbracelet/lipgloss"

// UI styles using lipgloss.
// These are package-level for convenience; lipgloss styles are value types
// and safe for concurrent use.
//
// Variable names intentionally omit "Style" suffix since they're accessed
// via the style package (e.g., style.Title reads better than style.TitleStyle).
var (
	// Title is used for the app header and the playing state.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	// Subtitle is used for secondary text.
	Subtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	// Success is used for the finished state.
	Success = lipgloss.NewStyle().
		Foreground(lipgloss.Color("42"))

	// Error is used for error messages.
	Error = lipgloss.NewStyle().
		Foreground(lipgloss.Color("196"))

	// Warning is used for the paused state.
	Warning = lipgloss.NewStyle().
		Foreground(lipgloss.Color("214"))

	// Display is the border around the encoded Morse line.
	Display = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1)

	// Glyph is used for Morse tokens waiting to be played.
	Glyph = lipgloss.NewStyle().
		Foreground(lipgloss.Color("255"))

	// Active highlights the letter under the playhead.
	Active = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	// Played dims letters the playhead has passed.
	Played = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	// Help is used for keyboard shortcut hints.
	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	// Key is used for highlighting keyboard keys.
	Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	// Progress is used for progress and waveform indicators.
	Progress = lipgloss.NewStyle().
			Foreground(lipgloss.Color("63"))

	// Muted is used for de-emphasized text (e.g., the loop marker).
	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))
)
