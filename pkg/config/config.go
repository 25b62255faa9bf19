package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Defaults applied when neither the config file nor the environment
// sets a value.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "logfmt"
)

// Environment variables that override config file values.
const (
	EnvLogLevel    = "KVS_LOG_LEVEL"
	EnvLogFormat   = "KVS_LOG_FORMAT"
	EnvMetricsFile = "KVS_METRICS_FILE"
)

var (
	validLevels  = []string{"debug", "info", "warn", "error", "none"}
	validFormats = []string{"logfmt", "json"}
)

type Config struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	MetricsFile string `yaml:"metrics_file"`
}

// LoadConfig loads configuration from a YAML file if path is provided,
// otherwise it starts from an empty config. Environment variables are
// applied on top in both cases, then defaults fill whatever is still unset.
//
// The result is not validated: callers apply their own overrides first
// and then call Validate.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	cfg.applyDefaults()

	return &cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs *multierror.Error

	if !oneOf(c.LogLevel, validLevels) {
		errs = multierror.Append(errs, fmt.Errorf("invalid log_level %q, must be one of %v", c.LogLevel, validLevels))
	}
	if !oneOf(c.LogFormat, validFormats) {
		errs = multierror.Append(errs, fmt.Errorf("invalid log_format %q, must be one of %v", c.LogFormat, validFormats))
	}

	return errs.ErrorOrNil()
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
}

// applyEnvOverrides allows environment variables to override YAML config values
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv(EnvMetricsFile); v != "" {
		cfg.MetricsFile = v
	}
}

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}
