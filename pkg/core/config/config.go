// ============================================================================
// recordkit - declarative records for tabular data
// ============================================================================
//
// Package:     config
// Description: Application configuration loaded from TOML or YAML
// Author:      msto63
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/msto63/recordkit/foundation/core/decode"
	mdwerror "github.com/msto63/recordkit/foundation/core/error"
	mdwlog "github.com/msto63/recordkit/foundation/core/log"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig  `toml:"general" yaml:"general"`
	Decode  DecodeConfig   `toml:"decode" yaml:"decode"`
	Table   TableConfig    `toml:"table" yaml:"table"`
	Store   StoreConfig    `toml:"store" yaml:"store"`
	Follow  FollowConfig   `toml:"follow" yaml:"follow"`
	Schemas []SchemaConfig `toml:"schemas" yaml:"schemas"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name" yaml:"name"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
	LogFile   string `toml:"log_file" yaml:"log_file"`
}

// DecodeConfig holds row decoding settings
type DecodeConfig struct {
	Policy    string `toml:"policy" yaml:"policy"`
	HasHeader *bool  `toml:"has_header" yaml:"has_header"`
	Comma     string `toml:"comma" yaml:"comma"`
}

// TableConfig holds table output settings
type TableConfig struct {
	Format        string   `toml:"format" yaml:"format"`
	UpperHeaders  bool     `toml:"upper_headers" yaml:"upper_headers"`
	ColumnFormats []string `toml:"column_formats" yaml:"column_formats"`
}

// StoreConfig holds persistence settings
type StoreConfig struct {
	Path string `toml:"path" yaml:"path"`
}

// FollowConfig holds file follow settings
type FollowConfig struct {
	PollInterval Duration `toml:"poll_interval" yaml:"poll_interval"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Format is the configuration file format
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// DetectFormat determines the format from the file extension; anything
// that is not .yaml or .yml is read as TOML
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, mdwerror.New(fmt.Sprintf("config file not found: %s", path)).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("config.Load").
			WithDetail("filePath", path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read config file").
			WithCode(mdwerror.CodeConfigError).
			WithOperation("config.Load").
			WithDetail("filePath", path)
	}

	cfg, err := Parse(content, DetectFormat(path))
	if err != nil {
		return nil, mdwerror.Wrap(err, fmt.Sprintf("failed to parse %s", path)).
			WithDetail("filePath", path)
	}
	return cfg, nil
}

// Parse decodes configuration content and applies defaults
func Parse(content []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "YAML parse error").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.Parse")
		}
	default:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, mdwerror.Wrap(err, "TOML parse error").
				WithCode(mdwerror.CodeConfigError).
				WithOperation("config.Parse")
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	return &cfg, nil
}

// LoadFromEnv loads configuration from RECORDKIT_CONFIG or the first file
// found in the default locations. Without any file the defaults are used.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv("RECORDKIT_CONFIG"); path != "" {
		return Load(path)
	}

	home, _ := os.UserHomeDir()
	defaultPaths := []string{
		"./recordkit.toml",
		"./recordkit.yaml",
		"./configs/recordkit.toml",
		filepath.Join(home, ".config", "recordkit", "config.toml"),
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.Name == "" {
		c.General.Name = "recordkit"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "warn"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	if c.Decode.Policy == "" {
		c.Decode.Policy = "stop"
	}
	if c.Decode.HasHeader == nil {
		hasHeader := true
		c.Decode.HasHeader = &hasHeader
	}
	if c.Decode.Comma == "" {
		c.Decode.Comma = ","
	}

	if c.Table.Format == "" {
		c.Table.Format = "text"
	}

	if c.Store.Path == "" {
		c.Store.Path = "./data/records.db"
	}

	if c.Follow.PollInterval.Duration == 0 {
		c.Follow.PollInterval.Duration = 100 * time.Millisecond
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.Store.Path = os.ExpandEnv(c.Store.Path)
	c.General.LogFile = os.ExpandEnv(c.General.LogFile)
}

// HeaderRow reports whether CSV input starts with a header row
func (c *Config) HeaderRow() bool {
	return c.Decode.HasHeader == nil || *c.Decode.HasHeader
}

// CommaRune returns the CSV delimiter
func (c *Config) CommaRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Decode.Comma)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// DecodePolicy returns the configured decode policy
func (c *Config) DecodePolicy() (decode.Policy, error) {
	return decode.ParsePolicy(c.Decode.Policy)
}

// Validate checks values that cannot be checked by the decoder
func (c *Config) Validate() error {
	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", c.General.LogLevel, err)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", c.General.LogFormat, err)
	}
	if _, err := c.DecodePolicy(); err != nil {
		return invalid("decode.policy", c.Decode.Policy, err)
	}
	if utf8.RuneCountInString(c.Decode.Comma) != 1 {
		return invalid("decode.comma", c.Decode.Comma, fmt.Errorf("must be a single character"))
	}
	if c.Follow.PollInterval.Duration < 0 {
		return invalid("follow.poll_interval", c.Follow.PollInterval.String(), fmt.Errorf("must not be negative"))
	}
	if _, err := c.BuildSchemas(); err != nil {
		return err
	}
	return nil
}

func invalid(key, value string, cause error) error {
	return mdwerror.Wrap(cause, fmt.Sprintf("invalid %s %q", key, value)).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("key", key)
}
