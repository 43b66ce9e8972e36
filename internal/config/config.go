package config

import (
	"fmt"
	"os"
	"slices"

	"github.com/specialistvlad/topicmapgo/internal/construct"
	"github.com/specialistvlad/topicmapgo/internal/topicmap"
	"gopkg.in/yaml.v3"
)

// Config is the complete engine configuration.
type Config struct {
	Log     LogConfig     `yaml:"log"`
	Map     MapConfig     `yaml:"map"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// MapConfig configures topic map behaviour.
type MapConfig struct {
	// BaseLocator resolves bare fixture labels to item identifiers.
	BaseLocator string `yaml:"base_locator"`
	// AutoItemIdentifiers gives topics created without any identifier a
	// generated item identifier.
	AutoItemIdentifiers bool `yaml:"auto_item_identifiers"`
	// ItemIdentifierPrefix prefixes generated item identifiers.
	ItemIdentifierPrefix string `yaml:"item_identifier_prefix"`
}

// MetricsConfig configures the Prometheus collector.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Default returns a Config with the defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Map: MapConfig{
			BaseLocator:          "urn:x-topicmapgo:map",
			ItemIdentifierPrefix: "urn:uuid:",
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %v, got %q", logLevels, c.Log.Level)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v, got %q", logFormats, c.Log.Format)
	}
	if _, err := construct.ParseLocator(c.Map.BaseLocator); err != nil {
		return fmt.Errorf("map.base_locator: %w", err)
	}
	if c.Map.AutoItemIdentifiers && c.Map.ItemIdentifierPrefix == "" {
		return fmt.Errorf("map.item_identifier_prefix is required when map.auto_item_identifiers is set")
	}
	if c.Map.ItemIdentifierPrefix != "" {
		if err := topicmap.ValidateItemIdentifierPrefix(c.Map.ItemIdentifierPrefix); err != nil {
			return fmt.Errorf("map.item_identifier_prefix: %w", err)
		}
	}
	return nil
}

// LoadFromFile reads a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Merge copies the non-zero values of other over c. Booleans can only be
// switched on.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
	if other.Log.Format != "" {
		c.Log.Format = other.Log.Format
	}
	if other.Map.BaseLocator != "" {
		c.Map.BaseLocator = other.Map.BaseLocator
	}
	if other.Map.AutoItemIdentifiers {
		c.Map.AutoItemIdentifiers = true
	}
	if other.Map.ItemIdentifierPrefix != "" {
		c.Map.ItemIdentifierPrefix = other.Map.ItemIdentifierPrefix
	}
	if other.Metrics.Enabled {
		c.Metrics.Enabled = true
	}
}
