// Package config loads wherec CLI settings from an optional file and
// WHEREC_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/roach88/wherec/internal/querysql"
)

// EnvPrefix prefixes every environment override, e.g. WHEREC_DIALECT.
const EnvPrefix = "WHEREC"

// Config holds the defaults the CLI falls back to when a flag is not set.
type Config struct {
	Dialect  string `mapstructure:"dialect"`
	Format   string `mapstructure:"format"`
	LogLevel string `mapstructure:"log_level"`
	Entity   string `mapstructure:"entity"`
	Limit    int    `mapstructure:"limit"`
}

// Load reads path (if not empty) over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaultConfig(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("dialect", string(querysql.MySQL))
	v.SetDefault("format", "text")
	v.SetDefault("log_level", "info")
	v.SetDefault("entity", "")
	v.SetDefault("limit", 0)
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if _, err := querysql.ParseDialect(c.Dialect); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid config: format must be text or json, got %q", c.Format)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Limit < 0 {
		return fmt.Errorf("invalid config: limit must not be negative")
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
