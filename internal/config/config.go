// Package config loads the CLI defaults: built-in values, then an optional
// YAML file, then GORCD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/alexiusacademia/gorcd/internal/code"
)

// DefaultFile is read from the working directory when no file is named.
const DefaultFile = "gorcd.yaml"

// Formats lists the output formats.
var Formats = []string{"text", "json"}

// Config holds the settings shared by every command.
type Config struct {
	Code        string `yaml:"code" env:"GORCD_CODE"`
	Format      string `yaml:"format" env:"GORCD_FORMAT"`
	LogLevel    string `yaml:"logLevel" env:"GORCD_LOG_LEVEL"`
	HistoryPath string `yaml:"historyPath" env:"GORCD_HISTORY_PATH"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Code:        string(code.ACI),
		Format:      "text",
		LogLevel:    "info",
		HistoryPath: defaultHistoryPath(),
	}
}

func defaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "gorcd-history.db"
	}
	return filepath.Join(dir, "gorcd", "history.db")
}

// Load reads the configuration and validates it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads path over the defaults and applies the environment without
// validating, so callers can apply overrides first. An empty path reads
// DefaultFile if it exists; a named file must exist.
func Read(path string) (*Config, error) {
	cfg := Default()

	name := path
	if name == "" {
		name = DefaultFile
	}
	data, err := os.ReadFile(name)
	switch {
	case errors.Is(err, os.ErrNotExist) && path == "":
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", name, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config environment: %w", err)
	}
	return cfg, nil
}

// Validate normalizes the code identifier and checks every setting.
func (c *Config) Validate() error {
	id, err := code.Parse(c.Code)
	if err != nil {
		return err
	}
	c.Code = string(id)

	c.Format = strings.ToLower(c.Format)
	if !slices.Contains(Formats, c.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", c.Format, Formats)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	if c.HistoryPath == "" {
		return errors.New("historyPath must not be empty")
	}
	return nil
}

// CodeID returns the configured building code.
func (c *Config) CodeID() code.ID {
	return code.ID(c.Code)
}

// Level returns the configured log level; info when unparsable.
func (c *Config) Level() slog.Level {
	l, err := c.level()
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func (c *Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid logLevel %q: %w", c.LogLevel, err)
	}
	return l, nil
}
