package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the static application configuration loaded from config.yaml.
// Runtime-mutable state (demo mode default, provider credentials) lives in
// the settings document instead.
type Config struct {
	Port    int    `yaml:"port"`
	DataDir string `yaml:"data_dir"`
	WebDir  string `yaml:"web_dir"`
	News    struct {
		Enabled        bool `yaml:"enabled"`
		MaxHeadlines   int  `yaml:"max_headlines"`
		TimeoutSeconds int  `yaml:"timeout_seconds"`
	} `yaml:"news"`
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1-65535", c.Port)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	return nil
}

// LoadConfig reads config.yaml; a missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	var c Config
	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	if c.Port == 0 {
		c.Port = 5001
	}
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.WebDir == "" {
		c.WebDir = "web"
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 15
	}
	if c.News.TimeoutSeconds == 0 {
		c.News.TimeoutSeconds = 30
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &c, nil
}
