package state

import "codefmt/internal/lang"

// SelectLanguage replaces the current selection.
func SelectLanguage(s Session, l lang.Language) Session {
	if l.Valid() {
		s.Language = l
	}
	return s
}

// EditBuffer applies an editor change event. A nil value (the widget had
// nothing to report) becomes the empty buffer.
func EditBuffer(s Session, text *string) Session {
	if text == nil {
		s.Buffer = ""
		return s
	}
	s.Buffer = *text
	return s
}

// BeginFormat clears the previous error and marks a format in flight.
func BeginFormat(s Session) Session {
	s.Err = ""
	s.Formatting = true
	return s
}

// FormatSucceeded replaces the buffer with the formatted text.
func FormatSucceeded(s Session, p lang.Parser, out string) Session {
	s.LastFormat = &FormatRecord{Before: s.Buffer, After: out, Parser: p}
	s.Buffer = out
	s.Err = ""
	s.Formatting = false
	return s
}

// FormatFailed records msg and leaves the buffer untouched.
func FormatFailed(s Session, msg string) Session {
	if msg == "" {
		msg = "An error occurred"
	}
	s.Err = msg
	s.Formatting = false
	return s
}

// MarkCopied sets the copied flag and returns the id the reset timer must carry.
func MarkCopied(s Session) (Session, int) {
	s.Copied = true
	s.CopySeq++
	return s, s.CopySeq
}

// ResetCopied clears the flag only for the newest timer; older timers are stale.
func ResetCopied(s Session, seq int) Session {
	if seq == s.CopySeq {
		s.Copied = false
	}
	return s
}
