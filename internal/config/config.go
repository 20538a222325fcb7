package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/assetbuild/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "assetbuild.yaml"

// Config represents the application configuration. It is passed explicitly
// to the build; nothing reads it from package state.
type Config struct {
	SourceDir    string           `yaml:"source_dir"`
	OutputDir    string           `yaml:"output_dir"`
	StaticPrefix string           `yaml:"static_prefix"`
	Script       ScriptConfig     `yaml:"script"`
	Stylesheet   StylesheetConfig `yaml:"stylesheet"`
	Page         PageConfig       `yaml:"page"`
	Metrics      MetricsConfig    `yaml:"metrics,omitempty"`
	Report       ReportConfig     `yaml:"report,omitempty"`
}

// ScriptConfig names the script entry point and its compiled artifact.
type ScriptConfig struct {
	Entry  string `yaml:"entry"`
	Output string `yaml:"output"`
	Target string `yaml:"target"` // language level, e.g. es2018
}

// StylesheetConfig names the stylesheet source and its minified artifact.
type StylesheetConfig struct {
	Source string `yaml:"source"`
	Output string `yaml:"output"`
}

// PageConfig names the HTML page source and its rewritten artifact.
type PageConfig struct {
	Source string `yaml:"source"`
	Output string `yaml:"output"`
}

// MetricsConfig controls the optional Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `yaml:"textfile,omitempty"`
}

// ReportConfig controls the optional JSON build report.
type ReportConfig struct {
	File string `yaml:"file,omitempty"`
}

// ScriptEntryPath returns the script entry path under the source directory.
func (c *Config) ScriptEntryPath() string { return filepath.Join(c.SourceDir, c.Script.Entry) }

// StylesheetPath returns the stylesheet path under the source directory.
func (c *Config) StylesheetPath() string { return filepath.Join(c.SourceDir, c.Stylesheet.Source) }

// PagePath returns the HTML page path under the source directory.
func (c *Config) PagePath() string { return filepath.Join(c.SourceDir, c.Page.Source) }

// Default returns the built-in configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load loads configuration from the specified file. A missing file yields the
// defaults when allowMissing is set (the implicit default path); an explicitly
// requested file must exist.
func Load(configPath string, allowMissing bool) (*Config, error) {
	if path, err := loadEnvFile(); err == nil {
		slog.Debug("Loaded environment variables", "path", path)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) && allowMissing {
			slog.Debug("No configuration file, using defaults", "path", configPath)
			return Default(), nil
		}
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").WithContext("path", configPath).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").Fatal().
			WithContext("path", configPath).Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded configuration", "path", configPath)
	return cfg, nil
}

// Parse decodes YAML configuration, expanding environment variables first,
// then applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}

	applyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Init writes the default configuration to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath)).
			WithContext("path", configPath).Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal config").Fatal().Build()
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to write config file").Fatal().
			WithContext("path", configPath).Build()
	}
	return nil
}
