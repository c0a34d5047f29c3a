package util

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultTheme is the chroma style used when none is configured.
const DefaultTheme = "monokai"

// chromaStyle resolves a chroma theme name, falling back to the default.
func chromaStyle(name string) *chroma.Style {
	if name == "" {
		name = DefaultTheme
	}
	if s := styles.Get(name); s != nil {
		return s
	}
	return styles.Fallback
}

// Highlight renders src with ANSI colors for the given chroma lexer.
// With noColor, or when tokenising fails, src is returned unchanged.
func Highlight(src, lexer, theme string, noColor bool) string {
	if noColor || src == "" {
		return src
	}
	l := lexers.Get(lexer)
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)
	f := formatters.Get("terminal256")
	if f == nil {
		f = formatters.Fallback
	}
	it, err := l.Tokenise(nil, src)
	if err != nil {
		return src
	}
	var b strings.Builder
	if err := f.Format(&b, chromaStyle(theme), it); err != nil {
		return src
	}
	return b.String()
}

// Themes lists the available chroma style names.
func Themes() []string { return styles.Names() }
