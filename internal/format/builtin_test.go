package format

import (
	"context"
	"errors"
	"strings"
	"testing"

	"codefmt/internal/lang"
)

func TestBuiltinJSON(t *testing.T) {
	b := NewBuiltin(nil)
	out, err := b.Format(context.Background(), `{"a":1,"b":[true,null]}`, DefaultOptions(lang.JSONP))
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    true,\n    null\n  ]\n}\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestBuiltinJSONIdempotent(t *testing.T) {
	b := NewBuiltin(nil)
	opts := DefaultOptions(lang.JSONP)
	first, err := b.Format(context.Background(), ` { "k" : { "n": [1,2] } } `, opts)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := b.Format(context.Background(), first, opts)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first != second {
		t.Fatalf("not idempotent:\n%q\n%q", first, second)
	}
}

func TestBuiltinJSONTrailingComma(t *testing.T) {
	b := NewBuiltin(nil)
	_, err := b.Format(context.Background(), `{"a":1,}`, DefaultOptions(lang.JSONP))
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if fe.Parser != lang.JSONP || !strings.Contains(fe.Msg, "(1:8)") {
		t.Fatalf("unexpected error: %+v", fe)
	}
}

func TestBuiltinHTML(t *testing.T) {
	b := NewBuiltin(nil)
	out, err := b.Format(context.Background(), "<div><p>hi</p></div>", DefaultOptions(lang.HTMLP))
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if !strings.Contains(out, "<p>") || strings.Count(out, "\n") < 2 || !strings.HasSuffix(out, "\n") {
		t.Fatalf("expected multi-line html, got %q", out)
	}
}

func TestBuiltinRejectsUnsupported(t *testing.T) {
	b := NewBuiltin(nil)
	for _, p := range []lang.Parser{lang.Babel, lang.BabelTS, lang.CSSP} {
		if b.Supports(p) {
			t.Fatalf("builtin should not claim %s", p)
		}
		_, err := b.Format(context.Background(), "a{}", DefaultOptions(p))
		var fe *Error
		if !errors.As(err, &fe) || !strings.Contains(fe.Msg, "prettier") {
			t.Fatalf("%s: expected install hint, got %v", p, err)
		}
	}
}

func TestBuiltinHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewBuiltin(nil).Format(ctx, "{}", DefaultOptions(lang.JSONP)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
