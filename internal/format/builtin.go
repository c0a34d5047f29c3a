package format

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/yosssi/gohtml"

	"codefmt/internal/lang"
)

// Builtin formats JSON and HTML without any external tool. Other parsers fail.
type Builtin struct {
	log *log.Logger
}

func NewBuiltin(logger *log.Logger) *Builtin {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Builtin{log: logger}
}

// Supports reports whether the builtin engine can handle p.
func (b *Builtin) Supports(p lang.Parser) bool {
	return p == lang.JSONP || p == lang.HTMLP
}

func (b *Builtin) Format(ctx context.Context, src string, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch opts.Parser {
	case lang.JSONP:
		return b.json(src)
	case lang.HTMLP:
		return ensureNewline(gohtml.Format(src)), nil
	}
	return "", Failed(opts.Parser, fmt.Sprintf("the builtin engine cannot format %s; install prettier", opts.Parser))
}

func (b *Builtin) json(src string) (string, error) {
	trimmed := bytes.TrimSpace([]byte(src))
	var out bytes.Buffer
	if err := json.Indent(&out, trimmed, "", "  "); err != nil {
		b.log.Info("format failed", "parser", lang.JSONP, "err", err)
		return "", Failed(lang.JSONP, jsonMessage(trimmed, err))
	}
	return ensureNewline(out.String()), nil
}

// checkJSON rejects anything encoding/json would not accept.
func checkJSON(src string) error {
	trimmed := bytes.TrimSpace([]byte(src))
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return Failed(lang.JSONP, jsonMessage(trimmed, err))
	}
	return nil
}

// jsonMessage adds a line:column position to syntax errors.
func jsonMessage(src []byte, err error) string {
	se, ok := err.(*json.SyntaxError)
	if !ok {
		return err.Error()
	}
	off := int(se.Offset)
	if off > len(src) {
		off = len(src)
	}
	line := 1 + bytes.Count(src[:off], []byte("\n"))
	col := off - bytes.LastIndexByte(src[:off], '\n') - 1
	if col < 1 {
		col = 1
	}
	return fmt.Sprintf("%s (%d:%d)", se.Error(), line, col)
}

func ensureNewline(s string) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	return s + "\n"
}
