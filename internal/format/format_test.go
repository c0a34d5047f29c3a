package format

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codefmt/internal/lang"
)

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions(lang.Babel)
	if !o.Semi || !o.SingleQuote || o.Parser != lang.Babel {
		t.Fatalf("unexpected defaults: %+v", o)
	}
}

func TestErrorNeverEmpty(t *testing.T) {
	if got := Failed(lang.CSSP, "  ").Error(); got != genericMessage {
		t.Fatalf("expected generic message, got %q", got)
	}
	if got := (&Error{}).Error(); got != genericMessage {
		t.Fatalf("zero Error should still have a message, got %q", got)
	}
}

func TestMessage(t *testing.T) {
	if Message(nil) != "" {
		t.Fatalf("nil error should have no message")
	}
	wrapped := errors.Join(errors.New("ctx"), Failed(lang.JSONP, "bad json"))
	if got := Message(wrapped); got != "bad json" {
		t.Fatalf("expected formatter message, got %q", got)
	}
	if got := Message(errors.New("boom")); got != "boom" {
		t.Fatalf("expected plain message, got %q", got)
	}
}

func TestParseEngine(t *testing.T) {
	for in, want := range map[string]Engine{"": EngineAuto, "Prettier": EnginePrettier, "builtin": EngineBuiltin} {
		got, err := ParseEngine(in)
		if err != nil || got != want {
			t.Fatalf("ParseEngine(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseEngine("gofmt"); err == nil {
		t.Fatalf("expected error for unknown engine")
	}
}

func TestNewBuiltin(t *testing.T) {
	f, eng, err := New(Settings{Engine: EngineBuiltin})
	if err != nil || eng != EngineBuiltin {
		t.Fatalf("New builtin: %v %v", eng, err)
	}
	if _, ok := f.(*Builtin); !ok {
		t.Fatalf("expected *Builtin, got %T", f)
	}
}

func TestFormatterFunc(t *testing.T) {
	var got Options
	f := FormatterFunc(func(_ context.Context, src string, opts Options) (string, error) {
		got = opts
		return strings.ToUpper(src), nil
	})
	out, err := f.Format(context.Background(), "abc", DefaultOptions(lang.CSSP))
	if err != nil || out != "ABC" || got.Parser != lang.CSSP {
		t.Fatalf("unexpected: %q %v %+v", out, err, got)
	}
}
