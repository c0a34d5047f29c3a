package helpoverlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"codefmt/internal/tui/state"
)

// Section is a titled group of bindings.
type Section struct {
	Title string
	Keys  []key.Binding
}

type HelpOverlay struct{}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{} }

// View returns grouped keys help with the current pane indicated.
// Disabled bindings are skipped.
func (HelpOverlay) View(s state.UIState, sections []Section) string {
	pane := "Editor"
	switch s.Pane {
	case state.PreviewPane:
		pane = "Preview"
	case state.DiffPane:
		pane = "Diff"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Help (Pane: %s)\n", pane)
	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n", sec.Title)
		for _, k := range sec.Keys {
			if !k.Enabled() {
				continue
			}
			h := k.Help()
			fmt.Fprintf(&b, "  %-10s %s\n", h.Key, h.Desc)
		}
	}
	return b.String()
}
