// Package config handles YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds all contact book configuration.
type Config struct {
	Server Server `yaml:"server"`
	Page   Page   `yaml:"page"`
	Theme  Theme  `yaml:"theme"`
}

// Server holds HTTP listener settings.
type Server struct {
	Addr          string        `yaml:"addr"           env:"CONTACTBOOK_ADDR"`
	ShutdownGrace time.Duration `yaml:"shutdown_grace" env:"CONTACTBOOK_SHUTDOWN_GRACE"`
}

// Page holds page presentation settings.
type Page struct {
	Title string `yaml:"title" env:"CONTACTBOOK_TITLE"`
	// TemplatesDir overrides embedded templates with files on disk.
	TemplatesDir string `yaml:"templates_dir" env:"CONTACTBOOK_TEMPLATES_DIR"`
}

// Theme selects the theme and variant.
type Theme struct {
	Name    string `yaml:"name"    env:"CONTACTBOOK_THEME"`
	Variant string `yaml:"variant" env:"CONTACTBOOK_THEME_VARIANT"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Server: Server{
			Addr:          ":8080",
			ShutdownGrace: 5 * time.Second,
		},
		Page: Page{
			Title: "Contact Book",
		},
		Theme: Theme{
			Name:    "contactbook",
			Variant: "dark",
		},
	}
}

// Load reads a YAML config file at path over the defaults. An empty path or
// a missing file returns defaults without error. Unknown fields are rejected.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadWithEnv loads path and then applies environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv applies CONTACTBOOK_* environment variable overrides. Unset
// variables leave the current values in place.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return errors.New("config: server.addr cannot be empty")
	}
	if c.Server.ShutdownGrace < 0 {
		return fmt.Errorf("config: server.shutdown_grace must be non-negative, got %v", c.Server.ShutdownGrace)
	}
	if strings.TrimSpace(c.Page.Title) == "" {
		return errors.New("config: page.title cannot be empty")
	}
	if dir := c.Page.TemplatesDir; dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("config: page.templates_dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("config: page.templates_dir %q is not a directory", dir)
		}
	}
	return nil
}
