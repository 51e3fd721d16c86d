package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "embed"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema.json
var schemaJSON []byte

// Config holds all configuration options for scry.
type Config struct {
	// Checks settings
	Checks ChecksConfig `koanf:"checks" toml:"checks"`

	// File exclusion patterns
	Exclude ExcludeConfig `koanf:"exclude" toml:"exclude"`

	// Cache settings
	Cache CacheConfig `koanf:"cache" toml:"cache"`

	// Output settings
	Output OutputConfig `koanf:"output" toml:"output"`
}

// ChecksConfig controls which checks run and how.
type ChecksConfig struct {
	LoadEvent LoadEventConfig `koanf:"loadevent" toml:"loadevent"`
	Debug     DebugConfig     `koanf:"debug" toml:"debug"`
	Comments  CommentsConfig  `koanf:"comments" toml:"comments"`
}

// LoadEventConfig configures the page-ready registration check.
type LoadEventConfig struct {
	Enabled bool     `koanf:"enabled" toml:"enabled"`
	Events  []string `koanf:"events" toml:"events"`
}

// DebugConfig configures the debug-statement check.
type DebugConfig struct {
	Enabled bool     `koanf:"enabled" toml:"enabled"`
	Targets []string `koanf:"targets" toml:"targets"`
}

// CommentsConfig configures the commented-out-code check.
type CommentsConfig struct {
	Enabled     bool     `koanf:"enabled" toml:"enabled"`
	Annotations []string `koanf:"annotations" toml:"annotations"`
}

// ExcludeConfig defines file exclusion patterns.
type ExcludeConfig struct {
	Patterns   []string `koanf:"patterns" toml:"patterns"`
	Extensions []string `koanf:"extensions" toml:"extensions"`
	Dirs       []string `koanf:"dirs" toml:"dirs"`
	Gitignore  bool     `koanf:"gitignore" toml:"gitignore"`
}

// CacheConfig controls caching behavior.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	TTL     int    `koanf:"ttl" toml:"ttl"` // TTL in hours
}

// OutputConfig controls output formatting.
type OutputConfig struct {
	Format  string `koanf:"format" toml:"format"` // text, json, markdown, toon
	Color   bool   `koanf:"color" toml:"color"`
	Verbose bool   `koanf:"verbose" toml:"verbose"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Checks: ChecksConfig{
			LoadEvent: LoadEventConfig{
				Enabled: true,
				Events:  []string{"load", "DOMContentLoaded"},
			},
			Debug: DebugConfig{
				Enabled: true,
			},
			Comments: CommentsConfig{
				Enabled:     true,
				Annotations: []string{"TODO", "FIXME", "NOTE", "HACK"},
			},
		},
		Exclude: ExcludeConfig{
			Patterns: []string{
				"*.min.js",
				"*.bundle.js",
				"*.test.js",
				"*.spec.js",
			},
			Extensions: []string{
				".map",
				".d.ts",
			},
			Dirs: []string{
				"node_modules",
				".git",
				".scry",
				"dist",
				"build",
				"coverage",
				"vendor",
			},
			Gitignore: true,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     ".scry/cache",
			TTL:     24,
		},
		Output: OutputConfig{
			Format:  "text",
			Color:   true,
			Verbose: false,
		},
	}
}

// Load loads configuration from a file. JSON files are additionally
// validated against the embedded schema before unmarshaling.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	var parser koanf.Parser
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml":
		parser = toml.Parser()
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		parser = toml.Parser()
	}

	if ext == ".json" {
		if err := validateJSON(path); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", path, err)
		}
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateJSON checks a JSON config file against the embedded schema.
func validateJSON(path string) error {
	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("scry://config-schema.json", schemaDoc); err != nil {
		return err
	}
	schema, err := compiler.Compile("scry://config-schema.json")
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	inst, err := jsonschema.UnmarshalJSON(f)
	if err != nil {
		return err
	}
	return schema.Validate(inst)
}

// LoadOrDefault tries to load config from standard locations or returns defaults.
func LoadOrDefault() *Config {
	configNames := []string{
		"scry.toml",
		"scry.yaml",
		"scry.yml",
		"scry.json",
		".scry.toml",
		".scry.yaml",
		".scry.yml",
		".scry.json",
	}

	searchDirs := []string{".", ".scry"}

	for _, dir := range searchDirs {
		for _, name := range configNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				cfg, err := Load(path)
				if err == nil {
					return cfg
				}
			}
		}
	}

	return DefaultConfig()
}

// ShouldExclude checks if a path should be excluded from analysis.
func (c *Config) ShouldExclude(path string) bool {
	for _, dir := range c.Exclude.Dirs {
		if strings.Contains(path, string(filepath.Separator)+dir+string(filepath.Separator)) ||
			strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}

	for _, excludeExt := range c.Exclude.Extensions {
		if strings.HasSuffix(path, excludeExt) {
			return true
		}
	}

	base := filepath.Base(path)
	for _, pattern := range c.Exclude.Patterns {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}
