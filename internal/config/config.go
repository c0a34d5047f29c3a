package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"codefmt/internal/format"
	"codefmt/internal/lang"
)

// File names searched by Find, in order.
var FileNames = []string{".codefmt.json", ".codefmt.yaml", ".codefmt.yml"}

// Config is the on-disk configuration. Environment variables override file
// values; command-line flags override both.
type Config struct {
	Engine       string   `json:"engine,omitempty" yaml:"engine,omitempty" env:"CODEFMT_ENGINE"`               // auto | prettier | builtin
	PrettierPath string   `json:"prettier_path,omitempty" yaml:"prettier_path,omitempty" env:"CODEFMT_PRETTIER"` // may include args, e.g. "npx --yes prettier"
	Timeout      Duration `json:"timeout,omitempty" yaml:"timeout,omitempty" env:"CODEFMT_TIMEOUT"`
	Language     string   `json:"language,omitempty" yaml:"language,omitempty" env:"CODEFMT_LANGUAGE"`
	Theme        string   `json:"theme,omitempty" yaml:"theme,omitempty" env:"CODEFMT_THEME"` // chroma style
	LogFile      string   `json:"log_file,omitempty" yaml:"log_file,omitempty" env:"CODEFMT_LOG_FILE"`
	NoColor      bool     `json:"no_color,omitempty" yaml:"no_color,omitempty"`
}

// Duration is a time.Duration spelled "30s" in files and env.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	*d = Duration(v)
	return nil
}

func Default() *Config {
	return &Config{
		Engine:   string(format.EngineAuto),
		Timeout:  Duration(format.DefaultTimeout),
		Language: string(lang.JavaScript),
		Theme:    "monokai",
	}
}

// Find returns the first config file in dirs, or "" if none exists.
func Find(dirs ...string) string {
	for _, d := range dirs {
		for _, n := range FileNames {
			p := filepath.Join(d, n)
			if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
				return p
			}
		}
	}
	return ""
}

// SearchDirs is the working directory followed by the user config dir.
func SearchDirs() []string {
	dirs := []string{"."}
	if d, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(d, "codefmt"))
	}
	return dirs
}

// Load reads path over the defaults and applies environment overrides.
// An empty path means defaults plus environment.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if isYAML(path) {
			if err := yaml.Unmarshal(data, c); err != nil {
				return nil, fmt.Errorf("parse config YAML: %w", err)
			}
		} else if err := json.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse config JSON: %w", err)
		}
	}
	if err := env.Parse(c); err != nil {
		return nil, fmt.Errorf("config env: %w", err)
	}
	if os.Getenv("NO_COLOR") != "" {
		c.NoColor = true
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	var errs []error
	if _, err := format.ParseEngine(c.Engine); err != nil {
		errs = append(errs, err)
	}
	if c.Language != "" {
		if _, err := lang.ParseLanguage(c.Language); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// DefaultLanguage returns the configured language, falling back to javascript.
func (c *Config) DefaultLanguage() lang.Language {
	if l, err := lang.ParseLanguage(c.Language); err == nil {
		return l
	}
	return lang.JavaScript
}

// FormatSettings translates the config into engine settings.
func (c *Config) FormatSettings() format.Settings {
	e, _ := format.ParseEngine(c.Engine)
	return format.Settings{
		Engine:       e,
		PrettierPath: c.PrettierPath,
		Timeout:      time.Duration(c.Timeout),
	}
}

// Save writes c as JSON or YAML depending on the extension.
func Save(path string, c *Config) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
