// Package config provides configuration management for pathcomplete.
// It loads ~/.pathcomplete.yaml and fills in defaults for anything the file
// leaves out.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/atinylittleshell/pathcomplete/internal/core"
	"github.com/atinylittleshell/pathcomplete/internal/filepaths"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable settings.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"logLevel"`

	// LogFile is where logs are written. "~" and environment variables are
	// expanded.
	LogFile string `yaml:"logFile"`

	// Prompt is shown in front of the interactive input line
	Prompt string `yaml:"prompt"`

	// MaxSuggestions caps the number of completion candidates (0 = no cap)
	MaxSuggestions int `yaml:"maxSuggestions"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		LogFile:        core.LogFile(),
		Prompt:         "path> ",
		MaxSuggestions: 0,
	}
}

// LoadFromFile loads configuration from a YAML file. A missing file yields
// the defaults with no error.
func LoadFromFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromBytes(content)
}

// LoadFromBytes parses YAML configuration on top of the defaults.
func LoadFromBytes(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.MaxSuggestions < 0 {
		return nil, fmt.Errorf("maxSuggestions must not be negative, got %d", cfg.MaxSuggestions)
	}
	if cfg.LogFile == "" {
		cfg.LogFile = core.LogFile()
	}
	cfg.LogFile = filepaths.NewExpander(nil).Expand(cfg.LogFile)

	return cfg, nil
}

// LoadDefaultConfigPath loads configuration from ~/.pathcomplete.yaml.
func LoadDefaultConfigPath() (*Config, error) {
	return LoadFromFile(core.ConfigFile())
}

// ZapLevel returns LogLevel as a zap level, falling back to info when the
// value is not a level zap knows.
func (c *Config) ZapLevel() zap.AtomicLevel {
	level, err := zap.ParseAtomicLevel(c.LogLevel)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return level
}
