package helpoverlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"

	"codefmt/internal/tui/state"
)

func TestViewGroupsAndSkipsDisabled(t *testing.T) {
	format := key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "format"))
	hidden := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "secret"), key.WithDisabled())
	out := NewHelpOverlay().View(state.UIState{Pane: state.PreviewPane}, []Section{
		{Title: "Actions", Keys: []key.Binding{format, hidden}},
	})
	if !strings.Contains(out, "Help (Pane: Preview)") || !strings.Contains(out, "Actions:") {
		t.Fatalf("missing headers: %s", out)
	}
	if !strings.Contains(out, "ctrl+f") || !strings.Contains(out, "format") {
		t.Fatalf("missing binding: %s", out)
	}
	if strings.Contains(out, "secret") {
		t.Fatalf("disabled binding shown: %s", out)
	}
}
