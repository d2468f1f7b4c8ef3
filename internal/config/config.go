// Package config loads docdrift configuration: a viper-managed config
// file under .docdrift/ plus an optional project-level docdrift.toml for
// example-runner and allowlist settings.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// Config represents the complete docdrift configuration
type Config struct {
	Version      int    `json:"version" mapstructure:"version"`
	ManifestPath string `json:"manifestPath" mapstructure:"manifestPath"`

	Examples ExamplesConfig `json:"examples" mapstructure:"examples"`
	Cache    CacheConfig    `json:"cache" mapstructure:"cache"`
	Logging  LoggingConfig  `json:"logging" mapstructure:"logging"`
}

// ExamplesConfig controls example-code analysis and execution
type ExamplesConfig struct {
	Run           bool   `json:"run" mapstructure:"run"`
	Runner        string `json:"runner" mapstructure:"runner"`
	TimeoutMs     int    `json:"timeoutMs" mapstructure:"timeoutMs"`
	AllowlistPath string `json:"allowlistPath" mapstructure:"allowlistPath"`
}

// CacheConfig controls the report cache
type CacheConfig struct {
	Enabled    bool   `json:"enabled" mapstructure:"enabled"`
	Path       string `json:"path" mapstructure:"path"`
	TtlSeconds int    `json:"ttlSeconds" mapstructure:"ttlSeconds"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:      1,
		ManifestPath: "openpkg.json",
		Examples: ExamplesConfig{
			Run:       false,
			Runner:    "node",
			TimeoutMs: 5000,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Path:       ".docdrift/cache.db",
			TtlSeconds: 3600,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// ConfigDir returns the configuration directory under the repo root
func ConfigDir(repoRoot string) string {
	return filepath.Join(repoRoot, ".docdrift")
}

// Load reads configuration from .docdrift/config.json (or .yaml) under
// the repo root, applying defaults and DOCDRIFT_* environment overrides.
// A missing config file yields the defaults.
func Load(repoRoot string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(ConfigDir(repoRoot))
	v.SetEnvPrefix("DOCDRIFT")
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("manifestPath", defaults.ManifestPath)
	v.SetDefault("examples.run", defaults.Examples.Run)
	v.SetDefault("examples.runner", defaults.Examples.Runner)
	v.SetDefault("examples.timeoutMs", defaults.Examples.TimeoutMs)
	v.SetDefault("examples.allowlistPath", defaults.Examples.AllowlistPath)
	v.SetDefault("cache.enabled", defaults.Cache.Enabled)
	v.SetDefault("cache.path", defaults.Cache.Path)
	v.SetDefault("cache.ttlSeconds", defaults.Cache.TtlSeconds)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := applyProjectSettings(repoRoot, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// projectSettings is the shape of an optional docdrift.toml at the repo
// root, overriding example-runner behavior per project.
type projectSettings struct {
	Manifest string `toml:"manifest"`
	Examples struct {
		Run       *bool  `toml:"run"`
		Runner    string `toml:"runner"`
		TimeoutMs int    `toml:"timeout_ms"`
		Allowlist string `toml:"allowlist"`
	} `toml:"examples"`
}

func applyProjectSettings(repoRoot string, cfg *Config) error {
	path := filepath.Join(repoRoot, "docdrift.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var settings projectSettings
	if err := toml.Unmarshal(data, &settings); err != nil {
		return err
	}

	if settings.Manifest != "" {
		cfg.ManifestPath = settings.Manifest
	}
	if settings.Examples.Run != nil {
		cfg.Examples.Run = *settings.Examples.Run
	}
	if settings.Examples.Runner != "" {
		cfg.Examples.Runner = settings.Examples.Runner
	}
	if settings.Examples.TimeoutMs > 0 {
		cfg.Examples.TimeoutMs = settings.Examples.TimeoutMs
	}
	if settings.Examples.Allowlist != "" {
		cfg.Examples.AllowlistPath = settings.Examples.Allowlist
	}
	return nil
}

// Save writes the configuration as JSON to .docdrift/config.json
func Save(repoRoot string, cfg *Config) error {
	dir := ConfigDir(repoRoot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "config.json"), append(data, '\n'), 0o644)
}
