package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yourusername/swaysplit/internal/ipc"
)

const (
	DefaultConfigDir  = ".config/swaysplit"
	DefaultConfigFile = "config.yaml"
)

// LoadConfig loads configuration from the specified path or default location
// If path is empty, uses ~/.config/swaysplit/config.yaml (or config.json) and
// falls back to an empty config when neither exists.
// Supports both .yaml and .json extensions
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		// Try YAML first, then JSON
		yamlPath := filepath.Join(home, DefaultConfigDir, "config.yaml")
		jsonPath := filepath.Join(home, DefaultConfigDir, "config.json")

		if _, err := os.Stat(yamlPath); err == nil {
			path = yamlPath
		} else if _, err := os.Stat(jsonPath); err == nil {
			path = jsonPath
		} else {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return LoadConfigFromBytes(data, ext)
}

// LoadConfigFromBytes loads configuration from raw bytes
// format should be "yaml" or "json"
func LoadConfigFromBytes(data []byte, format string) (*Config, error) {
	var cfg Config

	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", format)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, DefaultConfigDir, DefaultConfigFile)
}

// GetTimeout returns the exchange timeout, ipc.DefaultTimeout when unset
func (c *Config) GetTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return ipc.DefaultTimeout, nil
	}
	return ParseTimeout(c.Timeout)
}

// GetMaxPayload returns the reply size limit, ipc.DefaultMaxPayload when unset
func (c *Config) GetMaxPayload() (uint32, error) {
	if c.MaxPayload == "" {
		return ipc.DefaultMaxPayload, nil
	}
	size, err := ParseSize(c.MaxPayload)
	if err != nil {
		return 0, err
	}
	if size == 0 {
		return 0, errors.New("maxPayload must be greater than zero")
	}
	return size, nil
}

// ShouldValidateMagic reports whether reply headers are checked for the magic
func (c *Config) ShouldValidateMagic() bool {
	return c.ValidateMagic == nil || *c.ValidateMagic
}

// IPCOptions converts the config into client options
func (c *Config) IPCOptions() (ipc.Options, error) {
	timeout, err := c.GetTimeout()
	if err != nil {
		return ipc.Options{}, err
	}
	maxPayload, err := c.GetMaxPayload()
	if err != nil {
		return ipc.Options{}, err
	}

	return ipc.Options{
		Timeout:       timeout,
		MaxPayload:    maxPayload,
		ValidateMagic: c.ShouldValidateMagic(),
	}, nil
}
