package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codefmt/internal/format"
	"codefmt/internal/lang"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CODEFMT_ENGINE", "CODEFMT_PRETTIER", "CODEFMT_TIMEOUT", "CODEFMT_LANGUAGE", "CODEFMT_THEME", "CODEFMT_LOG_FILE", "NO_COLOR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	c, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Engine != "auto" || time.Duration(c.Timeout) != format.DefaultTimeout || c.DefaultLanguage() != lang.JavaScript {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoadJSON(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".codefmt.json")
	data := `{"engine":"builtin","timeout":"5s","language":"ts","theme":"dracula"}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Engine != "builtin" || time.Duration(c.Timeout) != 5*time.Second || c.DefaultLanguage() != lang.TypeScript || c.Theme != "dracula" {
		t.Fatalf("unexpected config: %+v", c)
	}
	s := c.FormatSettings()
	if s.Engine != format.EngineBuiltin || s.Timeout != 5*time.Second {
		t.Fatalf("unexpected settings: %+v", s)
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".codefmt.yaml")
	data := "engine: prettier\nprettier_path: npx --yes prettier\ntimeout: 1m\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Engine != "prettier" || c.PrettierPath != "npx --yes prettier" || time.Duration(c.Timeout) != time.Minute {
		t.Fatalf("unexpected config: %+v", c)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".codefmt.json")
	if err := os.WriteFile(path, []byte(`{"engine":"prettier","language":"css"}`), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CODEFMT_ENGINE", "builtin")
	t.Setenv("CODEFMT_TIMEOUT", "2s")
	t.Setenv("NO_COLOR", "1")
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Engine != "builtin" || time.Duration(c.Timeout) != 2*time.Second || !c.NoColor || c.Language != "css" {
		t.Fatalf("env did not override: %+v", c)
	}
}

func TestValidateRejectsUnknownValues(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".codefmt.json")
	if err := os.WriteFile(path, []byte(`{"engine":"gofmt","language":"cobol"}`), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "gofmt") || !strings.Contains(err.Error(), "cobol") {
		t.Fatalf("expected both problems reported, got %v", err)
	}
}

func TestSaveThenFind(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	if Find(dir) != "" {
		t.Fatalf("expected no config in empty dir")
	}
	path := filepath.Join(dir, ".codefmt.yaml")
	c := Default()
	c.Theme = "github"
	if err := Save(path, c); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got := Find(dir); got != path {
		t.Fatalf("Find = %q, want %q", got, path)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "timeout: 30s") {
		t.Fatalf("duration not written as text: %s", data)
	}
	back, err := Load(path)
	if err != nil || back.Theme != "github" {
		t.Fatalf("reload: %+v %v", back, err)
	}
}
