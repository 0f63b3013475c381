// Package config loads settings for logging and for turning documents into
// collections. Values come from defaults, an optional YAML file and
// CONCATDEEP_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/sap-gg/concatdeep/internal/logging"
	"github.com/sap-gg/concatdeep/merge"
)

const (
	EnvPrefix = "CONCATDEEP"

	LogLevelKey        = "log.level"
	LogFormatKey       = "log.format"
	LogNoColorKey      = "log.no_color"
	KeepNumericKeysKey = "merge.keep_numeric_string_keys"
	MaxDepthKey        = "merge.max_depth"
)

type Config struct {
	Log   LogConfig   `mapstructure:"log"`
	Merge MergeConfig `mapstructure:"merge"`
}

type LogConfig struct {
	Level   string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format  string `mapstructure:"format" validate:"oneof=console json"`
	NoColor bool   `mapstructure:"no_color"`
}

type MergeConfig struct {
	KeepNumericStringKeys bool `mapstructure:"keep_numeric_string_keys"`
	MaxDepth              int  `mapstructure:"max_depth" validate:"gte=0"`
}

// Load reads the configuration. If path is empty, a .concatdeep.yaml in the
// working directory is used when present.
func Load(path string) (*Config, error) {
	v := viper.New()

	defaults := merge.DefaultOptions()
	v.SetDefault(LogLevelKey, "info")
	v.SetDefault(LogFormatKey, logging.FormatConsole)
	v.SetDefault(LogNoColorKey, false)
	v.SetDefault(KeepNumericKeysKey, defaults.KeepNumericStringKeys)
	v.SetDefault(MaxDepthKey, defaults.MaxDepth)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".concatdeep")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFoundError viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFoundError) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// MergeOptions returns the options used to turn documents into collections.
func (c *Config) MergeOptions() merge.Options {
	return merge.Options{
		KeepNumericStringKeys: c.Merge.KeepNumericStringKeys,
		MaxDepth:              c.Merge.MaxDepth,
	}
}

// LogSettings returns the logger settings; output goes to stderr.
func (c *Config) LogSettings() logging.Settings {
	return logging.Settings{
		Level:   c.Log.Level,
		Format:  c.Log.Format,
		NoColor: c.Log.NoColor,
	}
}

// InitLogging configures the global logger from c.
func (c *Config) InitLogging() {
	logging.Init(c.LogSettings())
}
