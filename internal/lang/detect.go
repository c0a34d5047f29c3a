package lang

import (
	"encoding/json"
	"path/filepath"
	"strings"

	enry "github.com/go-enry/go-enry/v2"
)

var byExt = map[string]Language{
	".js":   JavaScript,
	".mjs":  JavaScript,
	".cjs":  JavaScript,
	".ts":   TypeScript,
	".mts":  TypeScript,
	".cts":  TypeScript,
	".jsx":  JSX,
	".html": HTML,
	".htm":  HTML,
	".css":  CSS,
	".json": JSON,
}

// enry (linguist) names for the supported set.
var fromEnry = map[string]Language{
	"JavaScript": JavaScript,
	"TypeScript": TypeScript,
	"JSX":        JSX,
	"HTML":       HTML,
	"CSS":        CSS,
	"JSON":       JSON,
}

var candidates = []string{"JavaScript", "TypeScript", "HTML", "CSS", "JSON"}

// Detect guesses the language of content, preferring the file extension.
// The boolean is false when nothing in the supported set matched.
func Detect(filename string, content []byte) (Language, bool) {
	if filename != "" {
		if l, ok := byExt[strings.ToLower(filepath.Ext(filename))]; ok {
			return l, true
		}
		if name, safe := enry.GetLanguageByExtension(filename); safe {
			if l, ok := fromEnry[name]; ok {
				return l, true
			}
		}
	}
	trimmed := strings.TrimSpace(string(content))
	if trimmed == "" {
		return "", false
	}
	if (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid([]byte(trimmed)) {
		return JSON, true
	}
	if trimmed[0] == '<' {
		return HTML, true
	}
	if name, _ := enry.GetLanguageByClassifier(content, candidates); name != "" {
		if l, ok := fromEnry[name]; ok {
			return l, true
		}
	}
	return "", false
}
