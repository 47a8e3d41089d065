// Package config loads the server configuration.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults used when the configuration file omits a value.
const (
	DefaultListen = ":8080"
	DefaultTitle  = "AUR"
)

// ErrNoSeedFile is returned when the configuration names no seed data file.
var ErrNoSeedFile = errors.New("seed_file is required")

// Config is the top-level configuration for aur2.
type Config struct {
	// Listen is the address the HTTP server binds to.
	Listen string `yaml:"listen"`

	// Title is the site title shown in the layout.
	Title string `yaml:"title"`

	// SeedFile is the YAML file of users and packages loaded into the
	// in-memory store at startup.
	SeedFile string `yaml:"seed_file"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose"`
}

// Load reads and parses a configuration file, applying defaults and
// validating the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var cfg Config
	if unmarshalErr := yaml.Unmarshal(data, &cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}
	cfg.applyDefaults()
	if validateErr := cfg.validate(); validateErr != nil {
		return nil, validateErr
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.Title == "" {
		c.Title = DefaultTitle
	}
}

func (c *Config) validate() error {
	if c.SeedFile == "" {
		return ErrNoSeedFile
	}
	return nil
}
