// Package config reads the verse YAML configuration file and exposes it to
// the command line parser as a kong resolver.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/verse/core/errors"
)

// Config represents the settings a configuration file may provide.
type Config struct {
	// FilePath is the corpus document used when --file-path is not given.
	FilePath string `yaml:"file_path,omitempty"`

	// JSON selects structured output (default: false)
	JSON *bool `yaml:"json,omitempty"`

	// Subscript prefixes range verses with subscript numbers (default: false)
	Subscript *bool `yaml:"subscript,omitempty"`

	// LogLevel is one of debug, info, warn or error (default: warn)
	LogLevel string `yaml:"log_level,omitempty"`

	// LogFormat is text or json (default: text)
	LogFormat string `yaml:"log_format,omitempty"`
}

// DefaultPaths are the configuration files consulted when present, lowest
// precedence first.
var DefaultPaths = []string{
	"~/.config/verse/config.yaml",
	"./verse.yaml",
}

// DefaultConfig returns the configuration used when no file sets a value.
func DefaultConfig() *Config {
	f := false
	return &Config{
		JSON:      &f,
		Subscript: &f,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	cfg, err := Decode(bytes.NewReader(data))
	if err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Decode parses a configuration document. Keys the Config type does not
// define are rejected.
func Decode(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.NewParse("YAML", "", err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.NewValidation("log_level", fmt.Sprintf("%q must be debug, info, warn or error", c.LogLevel))
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return errors.NewValidation("log_format", fmt.Sprintf("%q must be text or json", c.LogFormat))
	}
	return nil
}

// Value returns the configured value for a flag name such as "file-path",
// and false when the file leaves it unset.
func (c *Config) Value(flag string) (string, bool) {
	switch strings.ReplaceAll(flag, "-", "_") {
	case "file_path":
		return c.FilePath, c.FilePath != ""
	case "json":
		return boolValue(c.JSON)
	case "subscript":
		return boolValue(c.Subscript)
	case "log_level":
		return c.LogLevel, c.LogLevel != ""
	case "log_format":
		return c.LogFormat, c.LogFormat != ""
	}
	return "", false
}

func boolValue(b *bool) (string, bool) {
	if b == nil {
		return "", false
	}
	return strconv.FormatBool(*b), true
}

// Loader is a kong.ConfigurationLoader for verse configuration files.
//
// A flag whose environment variable is set is left to kong, so the
// environment takes precedence over any file.
func Loader(r io.Reader) (kong.Resolver, error) {
	cfg, err := Decode(r)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		for _, env := range flag.Envs {
			if _, ok := os.LookupEnv(env); ok {
				return nil, nil
			}
		}
		if v, ok := cfg.Value(flag.Name); ok {
			return v, nil
		}
		return nil, nil
	}), nil
}
