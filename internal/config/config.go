// Package config loads footprint configuration from ~/.footprint/config.yaml,
// an optional project overlay and FOOTPRINT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Output formats understood by the renderers.
const (
	FormatTable  = "table"
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
	FormatCSV    = "csv"
)

// Defaults.
const (
	DefaultOutputFormat = FormatTable
	DefaultPrecision    = 2
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"

	// MaxPrecision bounds the number of decimals in rendered tonnes.
	MaxPrecision = 9
)

// Configuration errors.
var (
	ErrInvalidOutputFormat = errors.New("output format must be one of table, json, ndjson, csv")
	ErrInvalidPrecision    = errors.New("output precision out of range")
	ErrInvalidLogLevel     = errors.New("invalid log level")
	ErrInvalidLogFormat    = errors.New("log format must be 'json' or 'console'")
	ErrUnknownKey          = errors.New("unknown configuration key")
)

// Config is the complete footprint configuration.
type Config struct {
	Output  OutputConfig  `yaml:"output"  json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Factors FactorsConfig `yaml:"factors" json:"factors"`

	configPath string
	loadErr    error
}

// OutputConfig controls rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Precision     int    `yaml:"precision"      json:"precision"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// FactorsConfig selects the emission factor set. An empty File means the
// built-in registry.
type FactorsConfig struct {
	File string `yaml:"file,omitempty" json:"file,omitempty"`
}

// Defaults returns a Config holding only built-in defaults.
func Defaults() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
			Precision:     DefaultPrecision,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// New returns the effective configuration: defaults, then the global config
// file (if present), then environment overrides. A config file that exists
// but cannot be read is recorded and reported by LoadError; defaults are kept.
func New() *Config {
	cfg := Defaults()

	dir, err := GetConfigDir()
	if err != nil {
		cfg.loadErr = err
		cfg.applyEnv()
		return cfg
	}
	cfg.configPath = filepath.Join(dir, "config.yaml")

	if loadErr := cfg.loadFile(cfg.configPath); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
		cfg.loadErr = loadErr
	}
	cfg.applyEnv()
	return cfg
}

// Load reads path on top of the defaults, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFile reads path on top of the defaults without environment overrides,
// for commands that edit and save the file.
func LoadFile(path string) (*Config, error) {
	cfg := Defaults()
	cfg.configPath = path
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// applyEnv applies FOOTPRINT_* overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("FOOTPRINT_OUTPUT_FORMAT"); v != "" {
		c.Output.DefaultFormat = v
	}
	if v := os.Getenv("FOOTPRINT_OUTPUT_PRECISION"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Output.Precision = p
		}
	}
	if v := os.Getenv("FOOTPRINT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FOOTPRINT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("FOOTPRINT_FACTORS_FILE"); v != "" {
		c.Factors.File = v
	}
}

// LoadError returns the error hit while reading the config file, if any.
func (c *Config) LoadError() error { return c.loadErr }

// ConfigPath returns the file this config is read from and saved to.
func (c *Config) ConfigPath() string { return c.configPath }

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) { c.configPath = path }

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("no configuration path set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Validate checks semantic correctness of every section.
func (c *Config) Validate() error {
	var errs []error

	if !IsValidOutputFormat(c.Output.DefaultFormat) {
		errs = append(errs, fmt.Errorf("%w: got %q", ErrInvalidOutputFormat, c.Output.DefaultFormat))
	}
	if c.Output.Precision < 0 || c.Output.Precision > MaxPrecision {
		errs = append(errs, fmt.Errorf("%w: %d (want 0-%d)", ErrInvalidPrecision, c.Output.Precision, MaxPrecision))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.Logging.Level)); err != nil || c.Logging.Level == "" {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level))
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		errs = append(errs, fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format))
	}

	return errors.Join(errs...)
}

// IsValidOutputFormat reports whether format is a known renderer.
func IsValidOutputFormat(format string) bool {
	switch format {
	case FormatTable, FormatJSON, FormatNDJSON, FormatCSV:
		return true
	default:
		return false
	}
}

// Get returns the value of a dotted configuration key, e.g. "output.precision".
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "output.precision":
		return strconv.Itoa(c.Output.Precision), nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	case "factors.file":
		return c.Factors.File, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set assigns a dotted configuration key. It does not validate or save.
func (c *Config) Set(key, value string) error {
	switch key {
	case "output.default_format":
		c.Output.DefaultFormat = value
	case "output.precision":
		p, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %q is not an integer", ErrInvalidPrecision, value)
		}
		c.Output.Precision = p
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	case "factors.file":
		c.Factors.File = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// Keys lists the keys accepted by Get and Set.
func Keys() []string {
	return []string{
		"output.default_format", "output.precision",
		"logging.level", "logging.format", "logging.file",
		"factors.file",
	}
}
