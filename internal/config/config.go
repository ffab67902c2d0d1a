// Package config loads SketchBoard settings from YAML.
//
// Config file locations (priority order):
//  1. $SKETCHBOARD_CONFIG
//  2. ./sketchboard.yaml
//  3. $XDG_CONFIG_HOME/sketchboard/config.yaml
//  4. ~/.config/sketchboard/config.yaml
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"SketchBoard/internal/element"
	"SketchBoard/internal/logging"
)

// DefaultPort is the hub's port when the config does not set one.
const DefaultPort = 8888

// Config is the whole configuration file.
type Config struct {
	Style    element.Style  `yaml:"style"`
	Network  NetworkConfig  `yaml:"network"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// NetworkConfig controls hosting and discovery.
type NetworkConfig struct {
	Port int `yaml:"port"`
	// MDNS advertises the host on the LAN. Nil means enabled.
	MDNS *bool `yaml:"mdns,omitempty"`
	// Name is advertised alongside the host.
	Name string `yaml:"name,omitempty"`
}

// MDNSEnabled reports whether the host should advertise itself.
func (n NetworkConfig) MDNSEnabled() bool {
	return n.MDNS == nil || *n.MDNS
}

// DatabaseConfig locates the scene store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig mirrors logging.Config in file form.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Dir        string `yaml:"dir,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb,omitempty"`
	MaxBackups int    `yaml:"max_backups,omitempty"`
	MaxAgeDays int    `yaml:"max_age_days,omitempty"`
	Compress   *bool  `yaml:"compress,omitempty"`
	AddSource  bool   `yaml:"add_source,omitempty"`
}

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	cfg := Config{Style: element.DefaultStyle()}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}
	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns the settings of a fresh installation
func DefaultConfig() *Config {
	cfg := &Config{Style: element.DefaultStyle()}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults. Style defaults are
// set before decoding, so only settings without a usable zero are here.
func (c *Config) applyDefaults() {
	if c.Network.Port == 0 {
		c.Network.Port = DefaultPort
	}
	if c.Database.Path == "" {
		c.Database.Path = "./sketchboard.db"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// LoggingConfig converts the logging section into a logging.Config.
func (c *Config) LoggingConfig() (*logging.Config, error) {
	out := logging.DefaultConfig()
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	out.Level = level
	out.Dir = c.Logging.Dir
	out.AddSource = c.Logging.AddSource
	if c.Logging.MaxSizeMB > 0 {
		out.MaxSizeMB = c.Logging.MaxSizeMB
	}
	if c.Logging.MaxBackups > 0 {
		out.MaxBackups = c.Logging.MaxBackups
	}
	if c.Logging.MaxAgeDays > 0 {
		out.MaxAgeDays = c.Logging.MaxAgeDays
	}
	if c.Logging.Compress != nil {
		out.Compress = *c.Logging.Compress
	}
	return out, nil
}
