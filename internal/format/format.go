// Package format is the formatting collaborator: a Formatter takes source
// text and options and returns the formatted text or an *Error.
package format

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"codefmt/internal/lang"
)

// Options is the style passed to the engine for one call.
type Options struct {
	Parser      lang.Parser
	Semi        bool
	SingleQuote bool
}

// DefaultOptions is the fixed option set: semicolons on, single quotes.
func DefaultOptions(p lang.Parser) Options {
	return Options{Parser: p, Semi: true, SingleQuote: true}
}

// Formatter formats src under opts. Implementations keep no state between calls.
type Formatter interface {
	Format(ctx context.Context, src string, opts Options) (string, error)
}

// FormatterFunc adapts a plain function to Formatter.
type FormatterFunc func(ctx context.Context, src string, opts Options) (string, error)

func (f FormatterFunc) Format(ctx context.Context, src string, opts Options) (string, error) {
	return f(ctx, src, opts)
}

// genericMessage is shown when an engine fails without saying why.
const genericMessage = "An error occurred"

// Error is the single failure kind: the input could not be formatted.
type Error struct {
	Parser lang.Parser
	Msg    string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Msg) == "" {
		return genericMessage
	}
	return e.Msg
}

// Failed builds an *Error, substituting the generic message for an empty one.
func Failed(p lang.Parser, msg string) *Error {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		msg = genericMessage
	}
	return &Error{Parser: p, Msg: msg}
}

// Message extracts the human-readable text for any error a Formatter returned.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Error()
	}
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return genericMessage
}

// Engine names a formatter backend.
type Engine string

const (
	EngineAuto     Engine = "auto"
	EnginePrettier Engine = "prettier"
	EngineBuiltin  Engine = "builtin"
)

// ParseEngine validates an engine name; empty means auto.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(strings.ToLower(strings.TrimSpace(s))); e {
	case "":
		return EngineAuto, nil
	case EngineAuto, EnginePrettier, EngineBuiltin:
		return e, nil
	}
	return "", fmt.Errorf("unknown engine %q (want auto, prettier or builtin)", s)
}

// Settings selects and configures the engine built by New.
type Settings struct {
	Engine       Engine
	PrettierPath string
	Timeout      time.Duration
	Logger       *log.Logger
}

// New returns the engine named by s. Auto picks prettier when it can be
// found and falls back to the builtin engine.
func New(s Settings) (Formatter, Engine, error) {
	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	switch s.Engine {
	case EnginePrettier:
		p, err := NewPrettier(s.PrettierPath, s.Timeout, logger)
		if err != nil {
			return nil, "", err
		}
		return p, EnginePrettier, nil
	case EngineBuiltin:
		return NewBuiltin(logger), EngineBuiltin, nil
	case EngineAuto, "":
		p, err := NewPrettier(s.PrettierPath, s.Timeout, logger)
		if err == nil {
			return p, EnginePrettier, nil
		}
		logger.Warn("prettier unavailable, using builtin engine", "err", err)
		return NewBuiltin(logger), EngineBuiltin, nil
	}
	return nil, "", fmt.Errorf("unknown engine %q", s.Engine)
}
