// Package config loads the optional studycoach YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration. Every field has a working
// default; the file and all of its keys are optional. Environment
// variables (STUDYCOACH_*) override file values at the point of use.
type Config struct {
	// DBPath overrides the default SQLite database location.
	DBPath string `yaml:"db_path"`

	Server ServerConfig `yaml:"server"`
	LLM    LLMConfig    `yaml:"llm"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`

	// SessionSecret signs the user-identity cookie. Generated randomly
	// at startup when empty, which invalidates identities on restart.
	SessionSecret string `yaml:"session_secret"`
}

// LLMConfig selects the generation backend.
type LLMConfig struct {
	Provider string `yaml:"provider"` // openai, anthropic, gemini, mock
	Model    string `yaml:"model"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8180"},
	}
}

// Load reads and parses a config file, merging it over the defaults.
// A missing file at the default location is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.LLM.Provider {
	case "", "openai", "anthropic", "gemini", "mock":
	default:
		return fmt.Errorf("unknown llm.provider: %q", c.LLM.Provider)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}

// DefaultPath returns the conventional config file location:
// $XDG_CONFIG_HOME/studycoach/config.yaml (or ~/.config/...).
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml"
		}
		configHome = home + "/.config"
	}
	return configHome + "/studycoach/config.yaml"
}
