// Package config loads the devstandards server configuration and builds the
// plugin registry from it.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/felixgeelhaar/devstandards/pkg/domain/catalog"
	"github.com/felixgeelhaar/devstandards/pkg/domain/standards"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name looked up in the working directory.
const DefaultConfigFile = "devstandards.yaml"

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "DEVSTANDARDS_CONFIG"

// Config is the devstandards.yaml document.
type Config struct {
	Limits          standards.LimitBounds `yaml:"limits"`
	DuplicatePolicy string                `yaml:"duplicate_policy"`
	LogLevel        string                `yaml:"log_level"`
	Plugins         []catalog.Plugin      `yaml:"plugins"`

	// baseDir anchors relative plugin data dirs (the config file's directory).
	baseDir string
}

const configSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "limits": {
      "type": "object",
      "properties": {
        "default": { "type": "integer", "minimum": 1 },
        "min": { "type": "integer", "minimum": 1 },
        "max": { "type": "integer", "minimum": 1 }
      }
    },
    "duplicate_policy": { "enum": ["replace", "reject"] },
    "log_level": { "type": "string" },
    "plugins": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "data_dir"],
        "properties": {
          "name": { "type": "string", "minLength": 1 },
          "version": { "type": "string" },
          "description": { "type": "string" },
          "data_dir": { "type": "string", "minLength": 1 },
          "categories": {
            "type": "object",
            "additionalProperties": { "type": "string" }
          }
        }
      }
    }
  }
}`

var configSchemaLoader = gojsonschema.NewStringLoader(configSchemaJSON)

// Default returns the built-in configuration pointing at the bundled data
// packs. It is used when no config file exists.
func Default() *Config {
	return &Config{
		Limits:          standards.DefaultLimitBounds(),
		DuplicatePolicy: string(standards.DuplicateReplace),
		Plugins: []catalog.Plugin{
			{
				Name:        "drupal",
				Version:     "1.0.0",
				Description: "Drupal security, coding standards, and best practices",
				DataDir:     filepath.Join("data", "drupal"),
				Categories: map[string]string{
					"drupal_security":         "Security best practices for Drupal",
					"drupal_coding_standards": "Drupal coding conventions and formatting",
					"drupal_best_practices":   "Drupal development best practices",
					"drupal_performance":      "Performance optimization guidelines",
				},
			},
		},
	}
}

// ResolvePath decides which config file to use: explicit path, then the
// environment override, then the default file name.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		return env
	}
	return DefaultConfigFile
}

// Load reads and validates the config file. A missing file yields the
// built-in defaults rather than an error.
func Load(path string) (*Config, error) {
	path = ResolvePath(path)

	data, err := os.ReadFile(path) // #nosec G304 -- operator-supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.applyDefaults()
	cfg.baseDir = filepath.Dir(path)
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	bounds := standards.DefaultLimitBounds()
	if c.Limits.Default == 0 {
		c.Limits.Default = bounds.Default
	}
	if c.Limits.Min == 0 {
		c.Limits.Min = bounds.Min
	}
	if c.Limits.Max == 0 {
		c.Limits.Max = bounds.Max
	}
	if c.DuplicatePolicy == "" {
		c.DuplicatePolicy = string(standards.DuplicateReplace)
	}
}

func validateSchema(doc any) error {
	// Round-trip through JSON so yaml types become schema-checkable.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode config for validation: %w", err)
	}

	result, err := gojsonschema.Validate(configSchemaLoader, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("failed to validate config: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		sort.Strings(msgs)
		return fmt.Errorf("invalid config: %v", msgs)
	}
	return nil
}

// BuildRegistry resolves every plugin's CSV sources and returns the catalog
// registry. Relative data dirs are anchored at the config file's directory.
func (c *Config) BuildRegistry() (*catalog.Registry, error) {
	plugins := make([]catalog.Plugin, 0, len(c.Plugins))
	for _, p := range c.Plugins {
		dir := p.DataDir
		if !filepath.IsAbs(dir) && c.baseDir != "" {
			dir = filepath.Join(c.baseDir, dir)
		}

		pattern := filepath.Join(dir, "**", "*.csv")
		paths, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve sources for plugin %q: %w", p.Name, err)
		}
		sort.Strings(paths)
		p.Sources = paths
		plugins = append(plugins, p)
	}
	return catalog.NewRegistry(plugins...), nil
}
