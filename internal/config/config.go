// Package config provides configuration management for catalogen.
// It supports a YAML configuration file, environment variables, and
// sensible defaults.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete catalogen configuration.
type Config struct {
	// Root is the repository root containing the documentation trees.
	// Empty means auto-detect from the working directory.
	Root string `yaml:"root,omitempty"`

	// Output is the target document path. Relative paths resolve
	// against Root. Empty means docs/CATALOG.md.
	Output string `yaml:"output,omitempty"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`
}

// LogConfig holds diagnostic output settings.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `yaml:"level"`
	// JSON enables JSON log output.
	JSON bool `yaml:"json"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "warn",
			JSON:  false,
		},
	}
}

// configFileName is the name of the config file, looked up in the
// working directory.
const configFileName = ".catalogen.yaml"

// Load loads the configuration from dir/.catalogen.yaml, merging with
// defaults. A missing config file is not an error.
func Load(dir string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(dir, configFileName)
	// #nosec G304 - path is constructed from the working directory
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvironment()
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	// #nosec G304 - path is provided by caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// applyEnvironment applies environment variable overrides. Variables
// follow the pattern CATALOGEN_<KEY>.
func (c *Config) applyEnvironment() {
	if v := os.Getenv("CATALOGEN_ROOT"); v != "" {
		c.Root = v
	}
	if v := os.Getenv("CATALOGEN_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("CATALOGEN_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("CATALOGEN_LOG_JSON"); v != "" {
		c.Log.JSON = parseBool(v)
	}
}

// parseBool parses a boolean from common string representations.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
