package editor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var modeStyle = lipgloss.NewStyle().Faint(true)

// Editor wraps a bubbles textarea. It owns only its widget state; the text
// it reports is copied into the session by the caller.
type Editor struct {
	ta       textarea.Model
	mode     string
	readOnly bool
}

func NewEditor() Editor {
	ta := textarea.New()
	ta.ShowLineNumbers = true
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	ta.Placeholder = "Paste or type code…"
	ta.Focus()
	return Editor{ta: ta, mode: "javascript"}
}

// SetSize sets the outer size, including the one-line mode header.
func (e Editor) SetSize(width, height int) Editor {
	if height > 1 {
		height--
	}
	e.ta.SetWidth(width)
	e.ta.SetHeight(height)
	return e
}

// SetValue loads text, replacing what the widget shows.
func (e Editor) SetValue(s string) Editor {
	e.ta.SetValue(s)
	return e
}

func (e Editor) Value() string { return e.ta.Value() }

// SetMode sets the syntax mode shown in the header.
func (e Editor) SetMode(mode string) Editor {
	e.mode = mode
	return e
}

func (e Editor) Mode() string { return e.mode }

// SetReadOnly drops key input while set.
func (e Editor) SetReadOnly(ro bool) Editor {
	e.readOnly = ro
	return e
}

// Cursor returns the 1-based line and column.
func (e Editor) Cursor() (line, col int) {
	li := e.ta.LineInfo()
	return e.ta.Line() + 1, li.StartColumn + li.ColumnOffset + 1
}

// Update forwards msg to the textarea. The returned text is non-nil when the
// edit changed the value.
func (e Editor) Update(msg tea.Msg) (Editor, tea.Cmd, *string) {
	if _, isKey := msg.(tea.KeyMsg); isKey && e.readOnly {
		return e, nil, nil
	}
	before := e.ta.Value()
	var cmd tea.Cmd
	e.ta, cmd = e.ta.Update(msg)
	after := e.ta.Value()
	if after == before {
		return e, cmd, nil
	}
	return e, cmd, &after
}

// View renders the mode header above the textarea.
func (e Editor) View() string {
	header := fmt.Sprintf("● %s", e.mode)
	if e.readOnly {
		header += "  (read-only)"
	}
	var b strings.Builder
	b.WriteString(modeStyle.Render(header))
	b.WriteString("\n")
	b.WriteString(e.ta.View())
	return b.String()
}
