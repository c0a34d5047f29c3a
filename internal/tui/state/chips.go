package state

// ChipKind enumerates the status chips shown in the header.
type ChipKind int

const (
	// Stable ordering for display: Language, Parser, Formatting, Copied, Modified, Lines
	LANGUAGE ChipKind = iota
	PARSER
	FORMATTING
	COPIED
	MODIFIED
	LINES
)

// Chip is a single status chip. Text carries labels (language, parser);
// Value carries counters. Unused fields are zero.
type Chip struct {
	Kind  ChipKind
	Text  string
	Value int
}
