package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the config reads,
// e.g. PROCRASTILIST_DATABASE_URL for database.url.
const EnvPrefix = "PROCRASTILIST"

// defaults lists every known key. Keys without a sensible default map to
// nil so they are still bound to their environment variable.
var defaults = map[string]any{
	"server.port":                     8080,
	"server.log_level":                "info",
	"server.shutdown_timeout_seconds": 10,
	"database.url":                    nil,
	"database.max_open_conns":         10,
	"auth.jwt_secret":                 nil,
	"auth.token_lifetime_minutes":     1440,
	"auth.bcrypt_cost":                10,
	"llm.enabled":                     true,
	"llm.gemini_api_key":              nil,
	"llm.model_name":                  "gemini-2.5-flash",
	"llm.prompt_template_path":        "",
	"llm.requested_distractions":      2,
	"llm.max_distractions":            10,
	"llm.timeout_seconds":             5,
	"llm.max_retries":                 2,
	"llm.retry_delay_seconds":         1,
}

// Load configuration from environment variables and optionally a config
// file named config.{yaml,toml,json} in the working directory.
// Environment variables take precedence over values from config files.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return decode(v)
}

// LoadFromFile loads configuration from the given file, with environment
// variables still taking precedence.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		if value != nil {
			v.SetDefault(key, value)
		}
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key)
	}

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
