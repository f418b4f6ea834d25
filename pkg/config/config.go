// Package config loads client configuration from a YAML file with
// environment variable overrides.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/algobulls/goalgotrading/pkg/logger"
)

// Config is the full configuration for the CLI and client.
type Config struct {
	// BaseURL overrides the production API origin. Empty selects the
	// default.
	BaseURL string `yaml:"base_url"`

	// AccessToken is obtained out of band from the platform's login flow.
	AccessToken string `yaml:"access_token"`

	Log LogConfig `yaml:"log"`
}

// LogConfig mirrors logger.Config in YAML form.
type LogConfig struct {
	Level      string `yaml:"level"`
	OutputFile string `yaml:"output_file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
	Compress   bool   `yaml:"compress"`
}

// LoggerConfig converts the YAML log section for logger.Init.
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Log.Level,
		OutputFile: c.Log.OutputFile,
		MaxSize:    c.Log.MaxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAge:     c.Log.MaxAge,
		Compress:   c.Log.Compress,
	}
}

// Load reads the YAML file at path and applies environment overrides.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.applyEnv()
	return cfg, nil
}

// LoadFromEnv builds a config purely from environment variables, for runs
// without a config file.
func LoadFromEnv() *Config {
	cfg := &Config{Log: LogConfig{Level: "info"}}
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ALGOBULLS_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("ALGOBULLS_ACCESS_TOKEN"); v != "" {
		c.AccessToken = v
	}
	if v := os.Getenv("ALGOBULLS_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
}
