package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0"`
	BcryptCost           int    `mapstructure:"bcrypt_cost"            validate:"gte=4,lte=31"`
}

// LLMConfig contains the settings of the distraction generator.
type LLMConfig struct {
	// Enabled switches between the Gemini generator and a generator that
	// never produces distractions.
	Enabled            bool   `mapstructure:"enabled"`
	GeminiAPIKey       string `mapstructure:"gemini_api_key"       validate:"required_if=Enabled true"`
	ModelName          string `mapstructure:"model_name"           validate:"required"`
	PromptTemplatePath string `mapstructure:"prompt_template_path" validate:"omitempty,file"`

	// RequestedDistractions is how many distractions the prompt asks for.
	RequestedDistractions int `mapstructure:"requested_distractions" validate:"gte=1,lte=10"`

	// MaxDistractions caps how many returned distractions are stored per task.
	MaxDistractions int `mapstructure:"max_distractions" validate:"gte=1,lte=50"`

	TimeoutSeconds    int `mapstructure:"timeout_seconds"     validate:"gte=1,lte=60"`
	MaxRetries        int `mapstructure:"max_retries"         validate:"gte=0,lte=5"`
	RetryDelaySeconds int `mapstructure:"retry_delay_seconds" validate:"gte=0,lte=30"`
}

// Timeout returns the generator call timeout as a duration.
func (c LLMConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TokenLifetime returns the access token lifetime as a duration.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// ShutdownTimeout returns the graceful shutdown timeout as a duration.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
