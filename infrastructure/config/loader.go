package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is used when --config is not given
const DefaultPath = "config/config.yaml"

// Config represents the complete application configuration
type Config struct {
	Google    GoogleConfig    `yaml:"google"`
	Preflight PreflightConfig `yaml:"preflight"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// GoogleConfig contains Google API settings
type GoogleConfig struct {
	Project            string `yaml:"project"`
	ServiceAccountFile string `yaml:"service_account_file"`
	CredentialsFile    string `yaml:"credentials_file"`
	TokenFile          string `yaml:"token_file"`
}

// PreflightConfig controls destination checks run before submitting
type PreflightConfig struct {
	Buckets      bool `yaml:"buckets"`
	DriveFolders bool `yaml:"drive_folders"`
}

// LoggingConfig contains logger settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads and parses the configuration from the specified YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
