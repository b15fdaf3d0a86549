// Package config loads msk settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no path is given.
const EnvVar = "MSK_CONFIG"

// Config holds every setting. The zero value is not usable; start from
// Default.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Parser ParserConfig `yaml:"parser"`
	REPL   REPLConfig   `yaml:"repl"`

	// Path of the file the settings were read from; empty for defaults.
	Path string `yaml:"-"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // text or json
}

// ParserConfig controls syntax error recovery.
type ParserConfig struct {
	Synchronize bool `yaml:"synchronize"`
	MaxErrors   int  `yaml:"max_errors"`
}

// REPLConfig controls the interactive prompt.
type REPLConfig struct {
	Prompt       string `yaml:"prompt"`
	Continuation string `yaml:"continuation"`
	History      string `yaml:"history"` // relative paths resolve against $HOME
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		REPL: REPLConfig{
			Prompt:       "> ",
			Continuation: ". ",
			History:      ".msk_history",
		},
	}
}

// ValidationError aggregates configuration problems.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads the settings file at path. An empty path falls back to
// $MSK_CONFIG, and if that is unset too the defaults are returned.
// Keys missing from the file keep their default values; unknown keys are
// an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvVar))
	}
	if path == "" {
		return Default(), nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", absPath, err)
	}
	cfg.Path = absPath
	return cfg, nil
}

// Decode reads settings from r on top of the defaults and validates them.
// An empty document yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs ValidationError
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs.Issues = append(errs.Issues, "log.level: "+err.Error())
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("log.format: unsupported format %q (want text or json)", c.Log.Format))
	}
	if c.Parser.MaxErrors < 0 {
		errs.Issues = append(errs.Issues, fmt.Sprintf("parser.max_errors: must not be negative, got %d", c.Parser.MaxErrors))
	}
	if c.REPL.Prompt == "" {
		errs.Issues = append(errs.Issues, "repl.prompt: must not be empty")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown level %q", s)
}

// HistoryPath returns the absolute path of the REPL history file, or ""
// when history is disabled or the home directory is unknown.
func (c *Config) HistoryPath() string {
	h := c.REPL.History
	if h == "" || filepath.IsAbs(h) {
		return h
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, h)
}
