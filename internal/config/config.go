package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fenilsonani/dupsweep/pkg/utils"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment variables that override the config file
const EnvPrefix = "dupsweep"

// Keep rules decide which member of a duplicate group survives
const (
	KeepAsk          = "ask"
	KeepFirst        = "first"
	KeepNewest       = "newest"
	KeepOldest       = "oldest"
	KeepShortestName = "shortest-name"
)

// KeepRules lists every accepted keep rule
var KeepRules = []string{KeepAsk, KeepFirst, KeepNewest, KeepOldest, KeepShortestName}

// OutputFormats lists every accepted report format
var OutputFormats = []string{"summary", "table", "json", "yaml"}

// Config represents the application configuration
type Config struct {
	Source         string   `yaml:"source" envconfig:"source"`
	Recursive      bool     `yaml:"recursive" envconfig:"recursive"`
	DryRun         bool     `yaml:"dry_run" envconfig:"dry_run"`
	Algorithm      string   `yaml:"algorithm" envconfig:"algorithm"`             // md5, sha256, blake2b
	KeepRule       string   `yaml:"keep_rule" envconfig:"keep_rule"`             // ask, first, newest, oldest, shortest-name
	SkipUnreadable bool     `yaml:"skip_unreadable" envconfig:"skip_unreadable"` // warn and continue instead of aborting the scan
	Output         string   `yaml:"output" envconfig:"output"`
	ProtectedPaths []string `yaml:"protected_paths" envconfig:"protected_paths"`
	Verbose        bool     `yaml:"verbose" envconfig:"verbose"`
	TUI            bool     `yaml:"tui" envconfig:"tui"`
}

// Load loads configuration from a file
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start from defaults so a partial file only overrides what it names
	config := GetDefault()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// ApplyEnv overrides fields from DUPSWEEP_* environment variables.
// Variables that are not set leave the current value untouched.
func (c *Config) ApplyEnv() error {
	if err := envconfig.Process(EnvPrefix, c); err != nil {
		return fmt.Errorf("failed to read environment overrides: %w", err)
	}
	return c.Validate()
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := utils.ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}

	if !contains(KeepRules, c.KeepRule) {
		return fmt.Errorf("unknown keep rule %q (must be one of %s)", c.KeepRule, strings.Join(KeepRules, ", "))
	}

	if !contains(OutputFormats, c.Output) {
		return fmt.Errorf("unknown output format %q (must be one of %s)", c.Output, strings.Join(OutputFormats, ", "))
	}

	// Validate protected paths are absolute
	for _, path := range c.ProtectedPaths {
		if !filepath.IsAbs(path) {
			return fmt.Errorf("protected path must be absolute: %s", path)
		}
	}

	return nil
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", "dupsweep")
	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists creates a default config file if it doesn't exist
func EnsureConfigExists() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(GetDefault(), configPath); err != nil {
			return "", err
		}
	}

	return configPath, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
