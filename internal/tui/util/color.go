package util

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
	if explicit {
		return true
	}
	return os.Getenv("NO_COLOR") != ""
}

// Palette defines a small set of colors used across widgets.
type Palette struct {
	Primary   lipgloss.Color
	Success   lipgloss.Color
	Danger    lipgloss.Color
	Warning   lipgloss.Color
	Muted     lipgloss.Color
	MutedDark lipgloss.Color
	Surface   lipgloss.Color
}

// DefaultPalette returns the default (slate/blue, dark editor) palette.
func DefaultPalette() Palette {
	return Palette{
		Primary:   lipgloss.Color("#3B82F6"),
		Success:   lipgloss.Color("#4ADE80"),
		Danger:    lipgloss.Color("#F87171"),
		Warning:   lipgloss.Color("#F0AD4E"),
		Muted:     lipgloss.Color("#334155"),
		MutedDark: lipgloss.Color("#1E293B"),
		Surface:   lipgloss.Color("#0F172A"),
	}
}
