package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codefmt/internal/lang"
)

// isolate keeps user config and environment out of CLI tests.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"CODEFMT_ENGINE", "CODEFMT_PRETTIER", "CODEFMT_TIMEOUT", "CODEFMT_LANGUAGE", "CODEFMT_THEME", "CODEFMT_LOG_FILE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("NO_COLOR", "1")
}

func runFormat(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var out, errb bytes.Buffer
	code := cmdFormat(args, strings.NewReader(stdin), &out, &errb)
	return code, out.String(), errb.String()
}

func TestFormatStdinJSON(t *testing.T) {
	isolate(t)
	code, out, stderr := runFormat(t, `{"a":1,"b":[1,2]}`, "--engine", "builtin", "--lang", "json")
	if code != exitOK {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    1,\n    2\n  ]\n}\n"
	if out != want {
		t.Fatalf("got %q want %q", out, want)
	}
}

func TestFormatDetectsLanguageFromContent(t *testing.T) {
	isolate(t)
	code, out, stderr := runFormat(t, `{"a":1}`, "--engine", "builtin")
	if code != exitOK || out != "{\n  \"a\": 1\n}\n" {
		t.Fatalf("exit %d out %q err %s", code, out, stderr)
	}
}

func TestFormatFailureExitsTwo(t *testing.T) {
	isolate(t)
	code, out, stderr := runFormat(t, `{"a":1,}`, "--engine", "builtin", "--lang", "json")
	if code != exitFailed {
		t.Fatalf("expected exit %d, got %d", exitFailed, code)
	}
	if out != "" || strings.TrimSpace(stderr) == "" {
		t.Fatalf("expected message on stderr only, out=%q err=%q", out, stderr)
	}
}

func TestFormatCheckAndWrite(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"a":1}`), 0600); err != nil {
		t.Fatal(err)
	}
	if code, _, _ := runFormat(t, "", path, "--engine", "builtin", "--check"); code != exitChanged {
		t.Fatalf("check on unformatted file: exit %d", code)
	}
	if code, _, stderr := runFormat(t, "", path, "--engine", "builtin", "--write"); code != exitOK {
		t.Fatalf("write: exit %d: %s", code, stderr)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "{\n  \"a\": 1\n}\n" {
		t.Fatalf("file not rewritten: %q", data)
	}
	if fi, _ := os.Stat(path); fi.Mode().Perm() != 0600 {
		t.Fatalf("mode not preserved: %v", fi.Mode())
	}
	if code, _, _ := runFormat(t, "", path, "--engine", "builtin", "--check"); code != exitOK {
		t.Fatalf("check on formatted file: exit %d", code)
	}
}

func TestFormatDiff(t *testing.T) {
	isolate(t)
	code, out, _ := runFormat(t, `{"a":1}`, "--engine", "builtin", "--lang", "json", "--diff")
	if code != exitOK || !strings.Contains(out, "BEFORE → AFTER") || !strings.Contains(out, `+   "a": 1`) {
		t.Fatalf("unexpected diff (exit %d):\n%s", code, out)
	}
}

func TestFormatRejectsBadFlags(t *testing.T) {
	isolate(t)
	if code, _, _ := runFormat(t, "", "--write"); code != exitFailed {
		t.Fatalf("--write without file: exit %d", code)
	}
	if code, _, stderr := runFormat(t, "x", "--lang", "cobol"); code != exitChanged || !strings.Contains(stderr, "cobol") {
		t.Fatalf("unknown language: exit %d: %s", code, stderr)
	}
}

func TestBuiltinRejectsJavaScript(t *testing.T) {
	isolate(t)
	code, _, stderr := runFormat(t, "const x=1", "--engine", "builtin", "--lang", "js")
	if code != exitFailed || !strings.Contains(stderr, "prettier") {
		t.Fatalf("exit %d: %s", code, stderr)
	}
}

func TestParseArgsInterspersed(t *testing.T) {
	fs := flag.NewFlagSet("x", flag.ContinueOnError)
	w := fs.Bool("write", false, "")
	l := fs.String("lang", "", "")
	pos, err := parseArgs(fs, []string{"a.ts", "--write", "--lang", "ts"})
	if err != nil || len(pos) != 1 || pos[0] != "a.ts" || !*w || *l != "ts" {
		t.Fatalf("pos=%v err=%v write=%v lang=%q", pos, err, *w, *l)
	}
}

func TestLanguagesTable(t *testing.T) {
	var b bytes.Buffer
	cmdLanguages(&b)
	for _, l := range lang.Languages() {
		if !strings.Contains(b.String(), string(l.Parser())) || !strings.Contains(b.String(), l.Label()) {
			t.Fatalf("missing %s in:\n%s", l, b.String())
		}
	}
}

func TestInitWritesOnce(t *testing.T) {
	isolate(t)
	wd, _ := os.Getwd()
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	var b bytes.Buffer
	if code := cmdInit(nil, &b); code != exitOK || !strings.Contains(b.String(), "Wrote .codefmt.json") {
		t.Fatalf("init: %d %s", code, b.String())
	}
	b.Reset()
	if code := cmdInit([]string{"--yaml"}, &b); code != exitOK || !strings.Contains(b.String(), "already exists") {
		t.Fatalf("second init: %d %s", code, b.String())
	}
	if _, err := os.Stat(filepath.Join(dir, ".codefmt.yaml")); err == nil {
		t.Fatalf("second init should not write")
	}
}

func TestHelpTopics(t *testing.T) {
	var b bytes.Buffer
	helpTopic(&b, "format")
	if !strings.Contains(b.String(), "--check") {
		t.Fatalf("format help missing --check:\n%s", b.String())
	}
	b.Reset()
	helpTopic(&b, "nope")
	if !strings.Contains(b.String(), "COMMANDS") {
		t.Fatalf("unknown topic should fall back to usage")
	}
}
