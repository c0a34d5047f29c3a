package util

import (
	"strings"
	"testing"
)

func TestHighlightNoColorIsIdentity(t *testing.T) {
	src := "const x = 1;\n"
	if got := Highlight(src, "javascript", "monokai", true); got != src {
		t.Fatalf("expected unchanged text, got %q", got)
	}
}

func TestHighlightEmitsANSI(t *testing.T) {
	got := Highlight("const x = 1;\n", "javascript", "monokai", false)
	if !strings.Contains(got, "\x1b[") || !strings.Contains(got, "const") {
		t.Fatalf("expected colored output, got %q", got)
	}
}

func TestHighlightUnknownLexerAndTheme(t *testing.T) {
	got := Highlight("plain", "no-such-lexer", "no-such-theme", false)
	if !strings.Contains(got, "plain") {
		t.Fatalf("fallback lost text: %q", got)
	}
}
