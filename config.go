package peggle

import (
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"regexp"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// DefaultConfigFile is the configuration file the CLI reads by default
const DefaultConfigFile = "peggle.yaml"

// Output formats for parsed records
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config represents the peggle project configuration
type Config struct {
	Grammars []string       `yaml:"grammars"`
	Cases    []string       `yaml:"cases"`
	MaxDepth int            `yaml:"max_depth"`
	Output   string         `yaml:"output"`
	Generate GenerateConfig `yaml:"generate"`
}

// GenerateConfig configures Go type generation
type GenerateConfig struct {
	Package string `yaml:"package"`
	Output  string `yaml:"output"`
}

var (
	bracedEnvVar = regexp.MustCompile(`\$\{([^}]+)\}`)
	bareEnvVar   = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
)

// LoadConfig loads configuration from the specified file. A missing file
// yields the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	// Load .env files first
	err := loadEnvFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err = os.Stat(configPath)
	if os.IsNotExist(err) {
		config := getDefaultConfig()
		expandConfigEnvVars(config)

		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Strict mode rejects unknown keys
	var config Config

	err = yaml.UnmarshalWithOptions(data, &config, yaml.Strict())
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	return &config, nil
}

func validateConfig(config *Config) error {
	if config.MaxDepth < 0 {
		return fmt.Errorf("%w: max_depth must not be negative, got %d", ErrConfigValidation, config.MaxDepth)
	}

	validOutputs := []string{"", OutputText, OutputJSON, OutputYAML}
	if !slices.Contains(validOutputs, config.Output) {
		return fmt.Errorf("%w: invalid output format '%s', must be one of: text, json, yaml", ErrConfigValidation, config.Output)
	}

	if pkg := config.Generate.Package; pkg != "" && !token.IsIdentifier(pkg) {
		return fmt.Errorf("%w: generate.package '%s' is not a valid Go package name", ErrConfigValidation, pkg)
	}

	for _, pattern := range slices.Concat(config.Grammars, config.Cases) {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("%w: invalid glob '%s': %w", ErrConfigValidation, pattern, err)
		}
	}

	return nil
}

func getDefaultConfig() *Config {
	return &Config{
		Grammars: []string{"*.peggle.yaml"},
		Cases:    []string{"*.cases.md"},
		MaxDepth: DefaultMaxDepth,
		Output:   OutputText,
		Generate: GenerateConfig{
			Package: "grammar",
		},
	}
}

func applyDefaults(config *Config) {
	defaults := getDefaultConfig()

	if len(config.Grammars) == 0 {
		config.Grammars = defaults.Grammars
	}

	if len(config.Cases) == 0 {
		config.Cases = defaults.Cases
	}

	if config.MaxDepth == 0 {
		config.MaxDepth = defaults.MaxDepth
	}

	if config.Output == "" {
		config.Output = defaults.Output
	}

	if config.Generate.Package == "" {
		config.Generate.Package = defaults.Generate.Package
	}
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		err := godotenv.Load(".env")
		if err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	s = bracedEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	return bareEnvVar.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})
}

func expandConfigEnvVars(config *Config) {
	for i, pattern := range config.Grammars {
		config.Grammars[i] = expandEnvVars(pattern)
	}

	for i, pattern := range config.Cases {
		config.Cases[i] = expandEnvVars(pattern)
	}

	config.Generate.Output = expandEnvVars(config.Generate.Output)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// Options returns the compile options the configuration implies
func (c *Config) Options() []Option {
	return []Option{WithMaxDepth(c.MaxDepth)}
}

// GrammarFiles expands the grammar globs relative to baseDir
func (c *Config) GrammarFiles(baseDir string) ([]string, error) {
	return expandGlobs(baseDir, c.Grammars)
}

// CaseFiles expands the casebook globs relative to baseDir
func (c *Config) CaseFiles(baseDir string) ([]string, error) {
	return expandGlobs(baseDir, c.Cases)
}

func expandGlobs(baseDir string, patterns []string) ([]string, error) {
	var files []string

	for _, pattern := range patterns {
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(baseDir, pattern)
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob '%s': %w", pattern, err)
		}

		for _, match := range matches {
			if !slices.Contains(files, match) {
				files = append(files, match)
			}
		}
	}

	return files, nil
}
