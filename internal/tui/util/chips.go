package util

import (
	"strings"

	"codefmt/internal/tui/state"
)

// ComputeChips derives the header chips from the session in a stable order:
//   Language, Parser, Formatting, Copied, Modified, Lines
//
// Formatting and Copied appear only while their flags are set. Modified
// appears when the buffer differs from the last formatter output.
func ComputeChips(s state.Session) []state.Chip {
	chips := make([]state.Chip, 0, 6)
	chips = append(chips, state.Chip{Kind: state.LANGUAGE, Text: s.Language.Label()})
	chips = append(chips, state.Chip{Kind: state.PARSER, Text: string(s.Language.Parser())})
	if s.Formatting {
		chips = append(chips, state.Chip{Kind: state.FORMATTING})
	}
	if s.Copied {
		chips = append(chips, state.Chip{Kind: state.COPIED})
	}
	if s.LastFormat != nil && s.LastFormat.After != s.Buffer {
		chips = append(chips, state.Chip{Kind: state.MODIFIED})
	}
	chips = append(chips, state.Chip{Kind: state.LINES, Value: lineCount(s.Buffer)})
	return chips
}

func lineCount(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(s, "\n"), "\n") + 1
}
