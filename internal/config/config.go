// Package config loads kplc project settings from kplc.yml or kplc.toml.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable that points at a config file.
const EnvVar = "KPLC_CONFIG"

// FileNames are searched in order when no config path is given.
var FileNames = []string{"kplc.yml", "kplc.yaml", "kplc.toml"}

// Config holds the complete project configuration
type Config struct {
	Check   CheckConfig  `yaml:"check" toml:"check"`
	Output  OutputConfig `yaml:"output" toml:"output"`
	Log     LogConfig    `yaml:"log" toml:"log"`
	Sources []string     `yaml:"sources" toml:"sources"`
}

// CheckConfig controls how a compilation pass reacts to diagnostics
type CheckConfig struct {
	FailFast  bool `yaml:"fail_fast" toml:"fail_fast"`
	MaxErrors int  `yaml:"max_errors" toml:"max_errors"`
}

// OutputConfig controls diagnostic rendering
type OutputConfig struct {
	// Color is one of auto, always, never.
	Color string `yaml:"color" toml:"color"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML or TOML file, chosen by extension.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// Find returns the config file to use for dir: KPLC_CONFIG if set, else the
// first of FileNames present in dir. It returns "" when there is none.
func Find(dir string) string {
	if path := os.Getenv(EnvVar); path != "" {
		return path
	}
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// LoadFrom loads path, or the file Find picks for dir when path is empty.
// Without any config file the defaults are returned.
func LoadFrom(path, dir string) (*Config, string, error) {
	if path == "" {
		path = Find(dir)
	}
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate rejects values the CLI cannot act on.
func (c *Config) Validate() error {
	var errs []error
	if c.Check.MaxErrors < 0 {
		errs = append(errs, fmt.Errorf("check.max_errors must not be negative, got %d", c.Check.MaxErrors))
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("output.color must be auto, always or never, got %q", c.Output.Color))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", name)
}

// Logger builds the structured logger described by c. verbose forces the
// debug level.
func (c *Config) Logger(w io.Writer, verbose bool) *slog.Logger {
	level, err := ParseLevel(c.Log.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// UseColor resolves the color setting against whether the output is a
// terminal.
func (c *Config) UseColor(terminal bool) bool {
	switch c.Output.Color {
	case "always":
		return true
	case "never":
		return false
	}
	return terminal
}

// WriteYAML encodes c the way Load reads it back.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}
