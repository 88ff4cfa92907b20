package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the complete configuration for metaval
type Config struct {
	Output   OutputConfig   `yaml:"output"`
	Naming   NamingConfig   `yaml:"naming"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Describe DescribeConfig `yaml:"describe"`
	Infer    InferConfig    `yaml:"infer"`
	Dev      DevConfig      `yaml:"dev"`
}

// OutputConfig controls how reports are rendered
type OutputConfig struct {
	Format string `yaml:"format"`
	Color  bool   `yaml:"color"`
}

// NamingConfig controls how class and property names are displayed
type NamingConfig struct {
	PascalCaseNames bool              `yaml:"pascal_case_names"`
	NameMappings    map[string]string `yaml:"name_mappings"`
}

// DefaultsConfig holds the defaults passed to value accessors
type DefaultsConfig struct {
	String  string  `yaml:"string"`
	Integer int64   `yaml:"integer"`
	Float   float64 `yaml:"float"`
}

// DescribeConfig filters the properties the describe command lists
type DescribeConfig struct {
	Properties []PropertyPattern `yaml:"properties"`
}

// PropertyPattern selects properties by name
type PropertyPattern struct {
	Pattern string `yaml:"pattern"`
	Exclude bool   `yaml:"exclude,omitempty"`

	// compiled regex (not serialized)
	regex *regexp.Regexp
}

// InferConfig controls which fixed-length types the infer command proposes
// for numeric arrays
type InferConfig struct {
	Vectors  bool `yaml:"vectors"`
	Matrices bool `yaml:"matrices"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: FormatText,
			Color:  true,
		},
		Naming: NamingConfig{
			PascalCaseNames: false,
			NameMappings:    make(map[string]string),
		},
		Defaults: DefaultsConfig{
			String:  "",
			Integer: 0,
			Float:   0,
		},
		Describe: DescribeConfig{
			Properties: []PropertyPattern{},
		},
		Infer: InferConfig{
			Vectors:  true,
			Matrices: true,
		},
		Dev: DevConfig{
			Debug:   false,
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.compilePatterns(); err != nil {
		return nil, fmt.Errorf("failed to compile patterns: %w", err)
	}

	return cfg, nil
}

// Validate checks values that YAML decoding cannot
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format '%s': must be one of text, json, yaml", c.Output.Format)
	}
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".metaval.yml", ".metaval.yaml", "metaval.yml", "metaval.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// compilePatterns compiles all regex patterns in the config
func (c *Config) compilePatterns() error {
	for i := range c.Describe.Properties {
		p := &c.Describe.Properties[i]
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			return fmt.Errorf("invalid property pattern '%s': %w", p.Pattern, err)
		}
		p.regex = regex
	}
	return nil
}

// Matches checks if this pattern matches the given property name
func (p *PropertyPattern) Matches(name string) bool {
	if p.regex == nil {
		// Try to compile if not already compiled (fallback)
		regex, err := regexp.Compile(p.Pattern)
		if err != nil {
			return false
		}
		p.regex = regex
	}
	return p.regex.MatchString(name)
}

// IncludeProperty reports whether describe should list a property. With no
// patterns every property is listed. Otherwise the first matching pattern
// decides, and a name no pattern matches is listed only when every pattern
// is an exclusion.
func (c *Config) IncludeProperty(name string) bool {
	onlyExclusions := true
	for i := range c.Describe.Properties {
		p := &c.Describe.Properties[i]
		if p.Matches(name) {
			return !p.Exclude
		}
		if !p.Exclude {
			onlyExclusions = false
		}
	}
	return onlyExclusions
}

// GetDisplayName returns the name a class or property is shown under,
// applying naming rules
func (c *Config) GetDisplayName(key string) string {
	// Check custom mappings first
	if mapped, exists := c.Naming.NameMappings[key]; exists {
		return mapped
	}

	if c.Naming.PascalCaseNames {
		return strcase.ToCamel(key)
	}

	return key
}

// LoadConfigWithCLI loads config with CLI argument precedence. Empty or
// false CLI values leave the file's settings alone.
func LoadConfigWithCLI(configPath, cliFormat string, cliNoColor, cliDebug bool) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliFormat != "" {
		cfg.Output.Format = cliFormat
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if cliNoColor {
		cfg.Output.Color = false
	}
	if cliDebug {
		cfg.Dev.Debug = true
	}

	return cfg, nil
}
