// Package config loads blackbox configuration from a YAML file or from the
// JSON options blob a host agent passes through.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all blackbox configuration.
type Config struct {
	// Enabled gates the whole engine; when false every call passes text
	// through unchanged.
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Allow lists doublestar globs for paths that are never redacted.
	Allow []string `yaml:"allow" json:"allow"`

	// Tags bound the file excerpt inside wrapped tool output.
	Tags TagsConfig `yaml:"tags" json:"tags"`

	// Logging controls log verbosity.
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// TagsConfig names the start and end tags of the bounded excerpt section.
type TagsConfig struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// Default returns the configuration used when no file or options are given.
func Default() *Config {
	return &Config{
		Enabled: true,
		Tags:    TagsConfig{Start: "<file>", End: "</file>"},
	}
}

// Load reads a YAML config file, overlaying the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseAgentOptions parses the same configuration shape from a host agent's
// JSON options blob, overlaying the defaults. Unknown fields are ignored.
func ParseAgentOptions(raw []byte) (*Config, error) {
	cfg := Default()
	if len(raw) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parsing agent options: %w", err)
	}
	return cfg, nil
}
