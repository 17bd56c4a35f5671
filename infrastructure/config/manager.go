package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Errors for config management
var (
	ErrUnknownKey   = errors.New("unknown config key")
	ErrInvalidValue = errors.New("invalid config value")
)

// Entry is a single dotted config key with its current value
type Entry struct {
	Key   string
	Value string
}

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

func stringField(ptr func(*Config) *string) field {
	return field{
		get: func(c *Config) string { return *ptr(c) },
		set: func(c *Config, v string) error {
			*ptr(c) = v
			return nil
		},
	}
}

func boolField(ptr func(*Config) *bool) field {
	return field{
		get: func(c *Config) string { return strconv.FormatBool(*ptr(c)) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
			}
			*ptr(c) = b
			return nil
		},
	}
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

var fields = map[string]field{
	"google.project":              stringField(func(c *Config) *string { return &c.Google.Project }),
	"google.service_account_file": stringField(func(c *Config) *string { return &c.Google.ServiceAccountFile }),
	"google.credentials_file":     stringField(func(c *Config) *string { return &c.Google.CredentialsFile }),
	"google.token_file":           stringField(func(c *Config) *string { return &c.Google.TokenFile }),
	"preflight.buckets":           boolField(func(c *Config) *bool { return &c.Preflight.Buckets }),
	"preflight.drive_folders":     boolField(func(c *Config) *bool { return &c.Preflight.DriveFolders }),
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error {
			v = strings.ToLower(v)
			if !logLevels[v] {
				return fmt.Errorf("%w: log level %q", ErrInvalidValue, v)
			}
			c.Logging.Level = v
			return nil
		},
	},
}

// ConfigManager reads and updates config entries by dotted key
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new config manager
func NewConfigManager(cfg *Config, configPath string) *ConfigManager {
	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
	}
}

// Get returns the value of a key
func (m *ConfigManager) Get(key string) (string, error) {
	f, ok := fields[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.get(m.config), nil
}

// Set updates a key and saves the config file
func (m *ConfigManager) Set(key, value string) error {
	f, ok := fields[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err := f.set(m.config, strings.TrimSpace(value)); err != nil {
		return err
	}
	return Save(m.config, m.configPath)
}

// List returns all entries sorted by key
func (m *ConfigManager) List() []Entry {
	result := make([]Entry, 0, len(fields))
	for key, f := range fields {
		result = append(result, Entry{Key: key, Value: f.get(m.config)})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})
	return result
}
