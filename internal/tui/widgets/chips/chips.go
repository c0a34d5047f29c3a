package chips

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"codefmt/internal/tui/state"
	"codefmt/internal/tui/util"
)

// View renders status chips in the given order using colored chips when
// possible and ASCII fallbacks when color is disabled or not desired.
func View(chips []state.Chip, noColor bool) string {
	if len(chips) == 0 {
		return ""
	}
	// Honor NO_COLOR env var in addition to explicit param
	if !noColor && os.Getenv("NO_COLOR") != "" {
		noColor = true
	}

	parts := make([]string, 0, len(chips))
	for _, c := range chips {
		parts = append(parts, renderChip(c, noColor))
	}
	return strings.Join(parts, " ")
}

func renderChip(c state.Chip, noColor bool) string {
	label := Label(c)
	if noColor {
		return fmt.Sprintf("[%s]", label)
	}
	return chipStyle(c).Render(label)
}

// Label is the chip's text without decoration.
func Label(c state.Chip) string {
	switch c.Kind {
	case state.LANGUAGE:
		return c.Text
	case state.PARSER:
		return "parser: " + c.Text
	case state.FORMATTING:
		return "Formatting…"
	case state.COPIED:
		return "✓ Copied!"
	case state.MODIFIED:
		return "Modified"
	case state.LINES:
		if c.Value == 1 {
			return "1 line"
		}
		return fmt.Sprintf("%d lines", c.Value)
	default:
		return "?"
	}
}

func chipStyle(c state.Chip) lipgloss.Style {
	p := util.DefaultPalette()
	base := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	switch c.Kind {
	case state.LANGUAGE:
		return base.Background(p.Primary).Foreground(lipgloss.Color("#FFFFFF"))
	case state.PARSER:
		return base.Background(p.Muted).Foreground(lipgloss.Color("#FFFFFF")).Bold(false)
	case state.FORMATTING:
		return base.Background(p.Warning).Foreground(lipgloss.Color("#111111"))
	case state.COPIED:
		return base.Background(p.MutedDark).Foreground(p.Success)
	case state.MODIFIED:
		return base.Background(p.MutedDark).Foreground(lipgloss.Color("#FFFFFF"))
	case state.LINES:
		return base.Foreground(p.Muted).Bold(false)
	default:
		return base
	}
}
