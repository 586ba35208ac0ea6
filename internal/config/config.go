package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "vfsh"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "vfsh"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "yaml"
	// EnvPrefix prefixes environment overrides, e.g. VFSH_LOG_LEVEL.
	EnvPrefix = "VFSH"
)

// Interactive preferences.
const (
	InteractiveAuto   = "auto"
	InteractiveAlways = "always"
	InteractiveNever  = "never"
)

// Config holds all vfsh settings.
type Config struct {
	LogLevel        string `mapstructure:"log_level"`
	PromptSuffix    string `mapstructure:"prompt_suffix"`
	Color           bool   `mapstructure:"color"`
	Interactive     string `mapstructure:"interactive"`
	StrictPaths     bool   `mapstructure:"strict_paths"`
	NormalizeCursor bool   `mapstructure:"normalize_cursor"`
	EnvFile         string `mapstructure:"env_file"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:     "warn",
		PromptSuffix: "$ ",
		Color:        true,
		Interactive:  InteractiveAuto,
	}
}

// LoadOptions defines explicit configuration loading inputs.
type LoadOptions struct {
	// ConfigFilePath forces loading from a specific config file when set.
	ConfigFilePath string
	// ConfigDirPath overrides the config directory lookup when set.
	ConfigDirPath string
	// Flags, when set, override file and environment values for keys whose
	// flag names match (dashes become underscores) and were changed.
	Flags *pflag.FlagSet
}

// ConfigDir returns $XDG_CONFIG_HOME/vfsh, falling back to the OS user config dir.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, AppName), nil
}

// Load reads configuration per opts. A missing config file is not an error,
// except when ConfigFilePath names it explicitly.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("prompt_suffix", defaults.PromptSuffix)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("interactive", defaults.Interactive)
	v.SetDefault("strict_paths", defaults.StrictPaths)
	v.SetDefault("normalize_cursor", defaults.NormalizeCursor)
	v.SetDefault("env_file", defaults.EnvFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if opts.ConfigFilePath != "" {
		v.SetConfigFile(opts.ConfigFilePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", opts.ConfigFilePath, err)
		}
	} else {
		dir := opts.ConfigDirPath
		if dir == "" {
			var err error
			if dir, err = ConfigDir(); err != nil {
				return nil, err
			}
		}
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileExt)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if opts.Flags != nil {
		var bindErr error
		opts.Flags.VisitAll(func(f *pflag.Flag) {
			name := strings.ReplaceAll(f.Name, "-", "_")
			if !isKnownKey(name) {
				return
			}
			if err := v.BindPFlag(name, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", bindErr)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func isKnownKey(name string) bool {
	switch name {
	case "log_level", "prompt_suffix", "color", "interactive",
		"strict_paths", "normalize_cursor", "env_file":
		return true
	}
	return false
}

// Validate checks values that the loader cannot type-check.
func (c *Config) Validate() error {
	switch c.Interactive {
	case InteractiveAuto, InteractiveAlways, InteractiveNever:
	default:
		return fmt.Errorf("invalid interactive value %q (want auto, always, or never)", c.Interactive)
	}
	return nil
}
