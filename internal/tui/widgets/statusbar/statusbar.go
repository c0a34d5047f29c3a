package statusbar

import (
	"fmt"
	"strings"

	"codefmt/internal/tui/state"
)

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes a concise status line reflecting key UI state.
func (StatusBar) View(s state.UIState) string {
	pane := "Editor"
	switch s.Pane {
	case state.PreviewPane:
		pane = "Preview"
	case state.DiffPane:
		pane = "Diff"
	}
	pos := fmt.Sprintf("Ln %d, Col %d", s.Line, s.Col)
	engine := "engine: " + s.Engine
	if s.Engine == "" {
		engine = "engine: none"
	}

	parts := []string{pane, pos, engine}
	if s.Notice != "" {
		parts = append(parts, s.Notice)
	}
	return strings.Join(parts, "  ")
}
