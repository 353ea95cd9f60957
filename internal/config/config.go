// Package config resolves the run settings that sit outside the CLI
// contract: where the evidence log lives, how chatty the logs are, and
// which stdout format to use. Precedence is flags over environment over
// config file over built-in defaults; the flag layer handles environment
// variables, so this package only merges explicit overrides onto a base.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ResultsFileName is the evidence log created next to the binary by
// default.
const ResultsFileName = "SalesResults.txt"

// Output formats for the console report. The evidence log always receives
// text regardless of the console format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the on-disk configuration shape (YAML) and the resolved
// runtime settings.
type Config struct {
	ResultsFile string `yaml:"results_file"`
	LogLevel    string `yaml:"log_level"`
	Format      string `yaml:"format"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ResultsFile: DefaultResultsPath(),
		LogLevel:    "warn",
		Format:      FormatText,
	}
}

// DefaultResultsPath places the evidence log alongside the executable,
// falling back to the working directory when the executable path cannot
// be resolved.
func DefaultResultsPath() string {
	exe, err := os.Executable()
	if err != nil {
		return ResultsFileName
	}
	return filepath.Join(filepath.Dir(exe), ResultsFileName)
}

// Load reads a YAML config file over the defaults. An empty path yields
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.ResultsFile == "" {
		cfg.ResultsFile = DefaultResultsPath()
	}
	return cfg, nil
}

// Merge overlays the non-empty fields of override onto c.
func (c Config) Merge(override Config) Config {
	out := c
	if override.ResultsFile != "" {
		out.ResultsFile = override.ResultsFile
	}
	if override.LogLevel != "" {
		out.LogLevel = override.LogLevel
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	return out
}

// Validate checks the resolved settings before the run starts.
func (c Config) Validate() error {
	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("invalid format %q (want %s or %s)", c.Format, FormatText, FormatJSON)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return nil
}
