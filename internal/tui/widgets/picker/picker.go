// Package picker is the language selector: a closed list, so choosing can
// never produce an unsupported language.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"codefmt/internal/lang"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	selStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "205", Dark: "213"}).Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

type Picker struct {
	items  []lang.Language
	cursor int
}

// New positions the cursor on current.
func New(current lang.Language) Picker {
	p := Picker{items: lang.Languages()}
	for i, l := range p.items {
		if l == current {
			p.cursor = i
		}
	}
	return p
}

// Result of a key press: Chosen is set on enter, Done on enter or cancel.
type Result struct {
	Chosen *lang.Language
	Done   bool
}

func (p Picker) Update(msg tea.KeyMsg) (Picker, Result) {
	switch strings.ToLower(msg.String()) {
	case "up", "k", "shift+tab":
		if p.cursor > 0 {
			p.cursor--
		} else {
			p.cursor = len(p.items) - 1
		}
	case "down", "j", "tab":
		p.cursor = (p.cursor + 1) % len(p.items)
	case "enter":
		l := p.items[p.cursor]
		return p, Result{Chosen: &l, Done: true}
	case "esc", "q":
		return p, Result{Done: true}
	default:
		// digits jump straight to an entry
		if r := msg.Runes; len(r) == 1 && r[0] >= '1' && int(r[0]-'1') < len(p.items) {
			l := p.items[r[0]-'1']
			return p, Result{Chosen: &l, Done: true}
		}
	}
	return p, Result{}
}

func (p Picker) View(current lang.Language) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Language") + "\n")
	for i, l := range p.items {
		mark := " "
		if l == current {
			mark = "•"
		}
		line := fmt.Sprintf("  %d %s %-10s %s", i+1, mark, l.Label(), faintStyle.Render(string(l.Parser())))
		if i == p.cursor {
			line = selStyle.Render(fmt.Sprintf("> %d %s %-10s %s", i+1, mark, l.Label(), l.Parser()))
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n↑/↓: move   enter: select   1-6: jump   esc: cancel\n")
	return b.String()
}
