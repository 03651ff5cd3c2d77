/*
Package config manages TOML and YAML config for wordcheck.

A file is decoded on top of DefaultConfig, so missing keys keep their
defaults. Files ending in .yaml or .yml are read as YAML, everything else as
TOML. Broken TOML falls back to a per-key partial parse.
*/
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordcheck/internal/utils"
)

// FileName is the default config file name inside the config dir.
const FileName = "config.toml"

// Config holds the entire config structure
type Config struct {
	Dispatch DispatchConfig `toml:"dispatch" yaml:"dispatch"`
	Index    IndexConfig    `toml:"index" yaml:"index"`
	Check    CheckConfig    `toml:"check" yaml:"check"`
	Report   ReportConfig   `toml:"report" yaml:"report"`
	Log      LogConfig      `toml:"log" yaml:"log"`
	Metrics  MetricsConfig  `toml:"metrics" yaml:"metrics"`
}

// DispatchConfig sizes the slot table.
type DispatchConfig struct {
	InitialSlots int `toml:"initial_slots" yaml:"initial_slots"`
	MaxSlots     int `toml:"max_slots" yaml:"max_slots"`
}

// IndexConfig holds reference list options.
type IndexConfig struct {
	StrictOrder bool `toml:"strict_order" yaml:"strict_order"`
}

// CheckConfig holds worker options.
type CheckConfig struct {
	Memoize bool `toml:"memoize" yaml:"memoize"`
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	Style string `toml:"style" yaml:"style"`
	Color bool   `toml:"color" yaml:"color"`
}

// LogConfig holds the log level name.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// MetricsConfig holds the scrape endpoint address. Empty disables it.
type MetricsConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Dispatch: DispatchConfig{
			InitialSlots: 16,
			MaxSlots:     0,
		},
		Index: IndexConfig{
			StrictOrder: false,
		},
		Check: CheckConfig{
			Memoize: true,
		},
		Report: ReportConfig{
			Style: "plain",
			Color: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Normalize replaces out of range values with usable ones.
func (c *Config) Normalize() {
	if c.Dispatch.InitialSlots < 1 {
		log.Warnf("dispatch.initial_slots=%d is invalid, using 16", c.Dispatch.InitialSlots)
		c.Dispatch.InitialSlots = 16
	}
	if c.Dispatch.MaxSlots < 0 {
		c.Dispatch.MaxSlots = 0
	}
	if c.Dispatch.MaxSlots > 0 && c.Dispatch.MaxSlots < c.Dispatch.InitialSlots {
		c.Dispatch.MaxSlots = c.Dispatch.InitialSlots
	}
	c.Report.Style = strings.ToLower(strings.TrimSpace(c.Report.Style))
	if c.Report.Style != "plain" && c.Report.Style != "table" {
		log.Warnf("report.style=%q is unknown, using plain", c.Report.Style)
		c.Report.Style = "plain"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warn"
	}
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() string {
	return utils.ConfigPath(FileName)
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/wordcheck/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", utils.GetAbsolutePath(customConfigPath))
				return config, customConfigPath
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath := GetDefaultConfigPath()
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		config = DefaultConfig()
		config.Normalize()
		return config, ""
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return nil, err
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			return nil, err
		}
		log.Debugf("Created default config file at: %s", configPath)
		config.Normalize()
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML or YAML file and normalizes the result.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if utils.IsYAML(configPath) {
		if err := utils.LoadYAMLFile(configPath, config); err != nil {
			return nil, err
		}
	} else if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config, err = tryPartialParse(configPath)
		if err != nil {
			return nil, err
		}
	}
	config.Normalize()
	return config, nil
}

// tryPartialParse keeps whatever keys of a broken TOML file still decode
// into a generic map.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "dispatch"); ok {
		if val, ok := utils.ExtractInt64(section, "initial_slots"); ok {
			config.Dispatch.InitialSlots = val
		}
		if val, ok := utils.ExtractInt64(section, "max_slots"); ok {
			config.Dispatch.MaxSlots = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "index"); ok {
		if val, ok := utils.ExtractBool(section, "strict_order"); ok {
			config.Index.StrictOrder = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "check"); ok {
		if val, ok := utils.ExtractBool(section, "memoize"); ok {
			config.Check.Memoize = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "report"); ok {
		if val, ok := utils.ExtractString(section, "style"); ok {
			config.Report.Style = val
		}
		if val, ok := utils.ExtractBool(section, "color"); ok {
			config.Report.Color = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "log"); ok {
		if val, ok := utils.ExtractString(section, "level"); ok {
			config.Log.Level = val
		}
	}
	if section, ok := utils.ExtractSection(tempConfig, "metrics"); ok {
		if val, ok := utils.ExtractString(section, "addr"); ok {
			config.Metrics.Addr = val
		}
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// ActivePath returns the absolute path of the loaded config file
func ActivePath(configPath string) string {
	if configPath == "" {
		return "builtin defaults"
	}
	return utils.GetAbsolutePath(configPath)
}
