package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the root configuration structure.
type Config struct {
	Discovery DiscoveryConfig `json:"discovery"`
	Tags      TagsConfig      `json:"tags"`
	Output    OutputConfig    `json:"output"`
}

// DiscoveryConfig holds workspace discovery options.
type DiscoveryConfig struct {
	Exclude []string `json:"exclude"` // Doublestar patterns for module directories to skip
}

// TagsConfig holds release-tag naming options.
type TagsConfig struct {
	// Prefixes overrides the tag prefix per module, keyed by module path
	// or base name. An explicit empty value selects the global
	// version-tag convention.
	Prefixes map[string]string `json:"prefixes"`
}

// OutputConfig holds report output options.
type OutputConfig struct {
	Format string `json:"format"` // Default: "console"
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Discovery: DiscoveryConfig{
			Exclude: []string{},
		},
		Tags: TagsConfig{
			Prefixes: map[string]string{},
		},
		Output: OutputConfig{
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from a file, merging with defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		// Try default locations
		candidates := []string{".relscope.json"}
		if home, err := os.UserHomeDir(); err == nil && home != "" {
			candidates = append(candidates, filepath.Join(home, ".relscope.json"))
		}
		for _, p := range candidates {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves configuration to a file.
func SaveConfig(cfg *Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
