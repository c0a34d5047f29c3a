package diff

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

var (
	diffDelLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
	diffAddLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
	diffDelChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Underline(true)
	diffAddChar = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"}).Underline(true)
	faint       = lipgloss.NewStyle().Faint(true)
	header      = lipgloss.NewStyle().Bold(true)
)

type DiffView struct {
	NoColor bool
}

func NewDiffView(noColor bool) DiffView { return DiffView{NoColor: noColor} }

// Stats counts changed lines.
type Stats struct {
	Added   int
	Removed int
}

// View renders a unified diff of before → after. Lines are diffed first;
// a removed run followed by an added run of equal length gets char-level
// highlights on each pair.
func (v DiffView) View(before, after string) string {
	if before == after {
		return "No changes\n"
	}
	hunks := lineDiff(before, after)
	var sb strings.Builder
	st := count(hunks)
	sb.WriteString(v.style(header, fmt.Sprintf("BEFORE → AFTER  (+%d −%d)", st.Added, st.Removed)) + "\n")
	for i := 0; i < len(hunks); i++ {
		h := hunks[i]
		switch h.Type {
		case dmp.DiffEqual:
			for _, l := range h.lines {
				sb.WriteString("  " + v.style(faint, l) + "\n")
			}
		case dmp.DiffDelete:
			if i+1 < len(hunks) && hunks[i+1].Type == dmp.DiffInsert && len(hunks[i+1].lines) == len(h.lines) {
				v.writePairs(&sb, h.lines, hunks[i+1].lines)
				i++
				continue
			}
			for _, l := range h.lines {
				sb.WriteString(v.style(diffDelLine, "- "+l) + "\n")
			}
		case dmp.DiffInsert:
			for _, l := range h.lines {
				sb.WriteString(v.style(diffAddLine, "+ "+l) + "\n")
			}
		}
	}
	return sb.String()
}

// Count returns added/removed line totals without rendering.
func Count(before, after string) Stats {
	return count(lineDiff(before, after))
}

type hunk struct {
	Type  dmp.Operation
	lines []string
}

func lineDiff(before, after string) []hunk {
	d := dmp.New()
	a, b, lines := d.DiffLinesToChars(before, after)
	diffs := d.DiffCharsToLines(d.DiffMain(a, b, false), lines)
	out := make([]hunk, 0, len(diffs))
	for _, df := range diffs {
		text := strings.TrimSuffix(df.Text, "\n")
		out = append(out, hunk{Type: df.Type, lines: strings.Split(text, "\n")})
	}
	return out
}

func count(hunks []hunk) Stats {
	var st Stats
	for _, h := range hunks {
		switch h.Type {
		case dmp.DiffInsert:
			st.Added += len(h.lines)
		case dmp.DiffDelete:
			st.Removed += len(h.lines)
		}
	}
	return st
}

// writePairs renders changed line pairs with char-level spans.
func (v DiffView) writePairs(sb *strings.Builder, del, ins []string) {
	d := dmp.New()
	for i := range del {
		diffs := d.DiffMain(del[i], ins[i], false)
		diffs = d.DiffCleanupSemantic(diffs)
		sb.WriteString(v.style(diffDelLine, "- "))
		for _, df := range diffs {
			switch df.Type {
			case dmp.DiffDelete:
				sb.WriteString(v.style(diffDelChar, df.Text))
			case dmp.DiffEqual:
				sb.WriteString(v.style(diffDelLine, df.Text))
			}
		}
		sb.WriteString("\n")
		sb.WriteString(v.style(diffAddLine, "+ "))
		for _, df := range diffs {
			switch df.Type {
			case dmp.DiffInsert:
				sb.WriteString(v.style(diffAddChar, df.Text))
			case dmp.DiffEqual:
				sb.WriteString(v.style(diffAddLine, df.Text))
			}
		}
		sb.WriteString("\n")
	}
}

func (v DiffView) style(s lipgloss.Style, text string) string {
	if v.NoColor {
		return text
	}
	return s.Render(text)
}
