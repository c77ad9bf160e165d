// Package config loads the foundation's configuration from the environment
// and an optional YAML file, with environment variables taking precedence.
// Values are validated before use so a typo fails loudly at startup instead
// of silently degrading at the first log call.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config is the root of the foundation's configuration.
type Config struct {
	Log LogConfig `mapstructure:"log" validate:"required"`
}

// LogConfig carries every logger knob. String fields accept exactly what the
// logger's parsers accept; the oneof tags keep the two in agreement.
type LogConfig struct {
	Level       string     `mapstructure:"level"        validate:"omitempty,oneof=trace debug info warn warning error critical fatal off never none silent 0"`
	Format      string     `mapstructure:"format"       validate:"omitempty,oneof=kv json json_pretty json-pretty pretty-json"`
	Async       bool       `mapstructure:"async"`
	QueueSize   int        `mapstructure:"queue_size"   validate:"gte=0"`
	Overflow    string     `mapstructure:"overflow"     validate:"omitempty,oneof=block drop_oldest drop-oldest"`
	ConsoleSync bool       `mapstructure:"console_sync"`
	Color       string     `mapstructure:"color"        validate:"omitempty,oneof=auto always never"`
	File        FileConfig `mapstructure:"file"`
}

// FileConfig configures the optional rotating file sink. An empty path
// disables file logging.
type FileConfig struct {
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"  validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups"  validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// Load reads configuration from VIX_-prefixed environment variables and,
// when filePath is non-empty, from the named YAML file. Environment values
// override file values. The result is validated; an invalid configuration is
// an error, never a partially-applied one.
func Load(filePath string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VIX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "kv")
	v.SetDefault("log.async", false)
	v.SetDefault("log.queue_size", 0)
	v.SetDefault("log.overflow", "block")
	v.SetDefault("log.console_sync", false)
	v.SetDefault("log.color", "auto")
	v.SetDefault("log.file.path", "")
	v.SetDefault("log.file.max_size_mb", 10)
	v.SetDefault("log.file.max_backups", 5)
	v.SetDefault("log.file.max_age_days", 0)
	v.SetDefault("log.file.compress", true)

	if filePath != "" {
		v.SetConfigFile(filePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", filePath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}
	return &cfg, nil
}
