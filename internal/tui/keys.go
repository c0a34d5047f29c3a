package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"codefmt/internal/tui/widgets/helpoverlay"
)

// keyMap holds the controller's bindings. Ctrl chords are checked before the
// editor sees a key, so they shadow the textarea's own emacs-style bindings.
type keyMap struct {
	Format       key.Binding
	Copy         key.Binding
	Language     key.Binding
	NextLanguage key.Binding
	Preview      key.Binding
	Diff         key.Binding
	Open         key.Binding
	Help         key.Binding
	Back         key.Binding
	Quit         key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Format:       key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "format")),
		Copy:         key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Language:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "language")),
		NextLanguage: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next language")),
		Preview:      key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "highlighted preview")),
		Diff:         key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "diff of last format")),
		Open:         key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open file")),
		Help:         key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "help")),
		Back:         key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to editor")),
		Quit:         key.NewBinding(key.WithKeys("ctrl+c", "ctrl+q"), key.WithHelp("ctrl+q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Format, k.Copy, k.Language, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Format, k.Copy, k.Open},
		{k.Language, k.NextLanguage},
		{k.Preview, k.Diff, k.Back},
		{k.Help, k.Quit},
	}
}

// sections groups FullHelp for the help overlay.
func (k keyMap) sections() []helpoverlay.Section {
	titles := []string{"Actions", "Language", "View", "General"}
	groups := k.FullHelp()
	out := make([]helpoverlay.Section, 0, len(groups))
	for i, g := range groups {
		out = append(out, helpoverlay.Section{Title: titles[i], Keys: g})
	}
	return out
}
