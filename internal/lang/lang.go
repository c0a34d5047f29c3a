// Package lang holds the closed set of languages codefmt can format and the
// fixed mapping from each language to the formatter parser that handles it.
package lang

import (
	"errors"
	"fmt"
	"strings"
)

// Language is one of the supported source languages.
type Language string

const (
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	JSX        Language = "jsx"
	HTML       Language = "html"
	CSS        Language = "css"
	JSON       Language = "json"
)

// Parser names the grammar the formatting engine uses.
type Parser string

const (
	Babel   Parser = "babel"
	BabelTS Parser = "babel-ts"
	HTMLP   Parser = "html"
	CSSP    Parser = "css"
	JSONP   Parser = "json"
)

// ErrUnknownLanguage is returned by ParseLanguage for anything outside the set.
var ErrUnknownLanguage = errors.New("unknown language")

// Languages returns the supported languages in picker order.
func Languages() []Language {
	return []Language{JavaScript, TypeScript, JSX, HTML, CSS, JSON}
}

// Parsers returns every parser name a language can map to.
func Parsers() []Parser {
	return []Parser{Babel, BabelTS, HTMLP, CSSP, JSONP}
}

var aliases = map[string]Language{
	"js":              JavaScript,
	"ts":              TypeScript,
	"htm":             HTML,
	"javascriptreact": JSX,
}

// ParseLanguage converts user input (flags, config, picker) to a Language.
func ParseLanguage(s string) (Language, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	for _, l := range Languages() {
		if string(l) == k {
			return l, nil
		}
	}
	if l, ok := aliases[k]; ok {
		return l, nil
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownLanguage, s, joinLanguages())
}

// Valid reports whether l is a member of the closed set.
func (l Language) Valid() bool {
	switch l {
	case JavaScript, TypeScript, JSX, HTML, CSS, JSON:
		return true
	}
	return false
}

// Parser returns the formatter parser for l.
func (l Language) Parser() Parser {
	switch l {
	case JavaScript, JSX:
		return Babel
	case TypeScript:
		return BabelTS
	case HTML:
		return HTMLP
	case CSS:
		return CSSP
	case JSON:
		return JSONP
	}
	panic(fmt.Sprintf("lang: no parser for %q", string(l)))
}

// EditorMode is the syntax mode shown by the editor. JSX is highlighted as
// plain JavaScript.
func (l Language) EditorMode() string {
	if l == JSX {
		return string(JavaScript)
	}
	return string(l)
}

// Lexer returns the chroma lexer name used for highlighting.
func (l Language) Lexer() string {
	switch l {
	case JSX:
		return "react"
	default:
		return l.EditorMode()
	}
}

// Label is the human-readable name.
func (l Language) Label() string {
	switch l {
	case JavaScript:
		return "JavaScript"
	case TypeScript:
		return "TypeScript"
	case JSX:
		return "JSX"
	case HTML:
		return "HTML"
	case CSS:
		return "CSS"
	case JSON:
		return "JSON"
	}
	return string(l)
}

// Next returns the language after l in picker order, wrapping around.
func (l Language) Next() Language {
	all := Languages()
	for i, x := range all {
		if x == l {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

func (l Language) String() string { return string(l) }

func joinLanguages() string {
	names := make([]string, 0, len(Languages()))
	for _, l := range Languages() {
		names = append(names, string(l))
	}
	return strings.Join(names, ", ")
}
