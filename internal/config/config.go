// Package config loads snapdiff configuration. Settings come from three
// layers, lowest precedence first: built-in defaults, a snapdiff.toml
// project defaults file in the working directory, and .snapdiff/config.json
// with SNAPDIFF_* environment overrides. CLI flags sit above all of them
// and are applied by the commands themselves.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// ConfigDir is the per-project snapdiff directory
const ConfigDir = ".snapdiff"

// ProjectDefaultsFile is the optional project defaults file
const ProjectDefaultsFile = "snapdiff.toml"

// Config represents the complete snapdiff configuration
type Config struct {
	Version int           `json:"version" mapstructure:"version"`
	Output  OutputConfig  `json:"output" mapstructure:"output"`
	History HistoryConfig `json:"history" mapstructure:"history"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// OutputConfig controls how reports are written
type OutputConfig struct {
	// Format is "json" or "human"
	Format string `json:"format" mapstructure:"format"`
	// Pretty enables indented JSON output
	Pretty bool `json:"pretty" mapstructure:"pretty"`
}

// HistoryConfig controls the report history store
type HistoryConfig struct {
	Enabled bool `json:"enabled" mapstructure:"enabled"`
	// Dir is where history.db lives; defaults to the config dir
	Dir string `json:"dir" mapstructure:"dir"`
	// MaxReports bounds retention; prune keeps the newest MaxReports rows
	MaxReports int `json:"maxReports" mapstructure:"maxReports"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// projectDefaults mirrors the subset of settings a snapdiff.toml file may
// declare.
type projectDefaults struct {
	Output  *tomlOutput  `toml:"output,omitempty"`
	History *tomlHistory `toml:"history,omitempty"`
	Logging *tomlLogging `toml:"logging,omitempty"`
}

type tomlOutput struct {
	Format string `toml:"format,omitempty"`
	Pretty *bool  `toml:"pretty,omitempty"`
}

type tomlHistory struct {
	Enabled    *bool  `toml:"enabled,omitempty"`
	Dir        string `toml:"dir,omitempty"`
	MaxReports int    `toml:"max_reports,omitempty"`
}

type tomlLogging struct {
	Format string `toml:"format,omitempty"`
	Level  string `toml:"level,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Output: OutputConfig{
			Format: "json",
			Pretty: false,
		},
		History: HistoryConfig{
			Enabled:    false,
			Dir:        ConfigDir,
			MaxReports: 100,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load reads configuration for the given working directory.
func Load(workDir string) (*Config, error) {
	cfg := DefaultConfig()

	if err := applyProjectDefaults(workDir, cfg); err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(workDir, ConfigDir))
	v.SetEnvPrefix("SNAPDIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// seed viper with the layered defaults so partial config files and
	// env overrides merge instead of replacing
	v.SetDefault("version", cfg.Version)
	v.SetDefault("output.format", cfg.Output.Format)
	v.SetDefault("output.pretty", cfg.Output.Pretty)
	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.dir", cfg.History.Dir)
	v.SetDefault("history.maxReports", cfg.History.MaxReports)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.level", cfg.Logging.Level)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var out Config
	if err := v.Unmarshal(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// applyProjectDefaults merges snapdiff.toml into cfg when the file exists.
func applyProjectDefaults(workDir string, cfg *Config) error {
	data, err := os.ReadFile(filepath.Join(workDir, ProjectDefaultsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var defaults projectDefaults
	if err := toml.Unmarshal(data, &defaults); err != nil {
		return err
	}

	if o := defaults.Output; o != nil {
		if o.Format != "" {
			cfg.Output.Format = o.Format
		}
		if o.Pretty != nil {
			cfg.Output.Pretty = *o.Pretty
		}
	}
	if h := defaults.History; h != nil {
		if h.Enabled != nil {
			cfg.History.Enabled = *h.Enabled
		}
		if h.Dir != "" {
			cfg.History.Dir = h.Dir
		}
		if h.MaxReports > 0 {
			cfg.History.MaxReports = h.MaxReports
		}
	}
	if l := defaults.Logging; l != nil {
		if l.Format != "" {
			cfg.Logging.Format = l.Format
		}
		if l.Level != "" {
			cfg.Logging.Level = l.Level
		}
	}
	return nil
}

// Save writes the configuration to .snapdiff/config.json
func (c *Config) Save(workDir string) error {
	dir := filepath.Join(workDir, ConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}
