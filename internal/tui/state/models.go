package state

import "codefmt/internal/lang"

// InitialBuffer is what the editor shows on a fresh start.
const InitialBuffer = "// Enter your code here"

// FormatRecord is the before/after text of the last successful format.
type FormatRecord struct {
	Before string
	After  string
	Parser lang.Parser
}

// Session holds the controller's state. The editor widget gets a copy of
// Buffer; only the reducers below change it.
type Session struct {
	Buffer   string
	Language lang.Language

	// Transient flags
	Copied  bool
	CopySeq int    // id of the newest copy-reset timer
	Err     string // last format failure; empty when none

	Formatting bool
	LastFormat *FormatRecord
}

// NewSession starts with buf in language l.
func NewSession(buf string, l lang.Language) Session {
	if !l.Valid() {
		l = lang.JavaScript
	}
	return Session{Buffer: buf, Language: l}
}
