package main

import (
	"fmt"
	"log/slog"

	"github.com/procrastilist/procrastilist/internal/config"
	"github.com/procrastilist/procrastilist/internal/platform/logger"
)

// loadAppConfig loads configuration from --config when given, otherwise from
// the working directory and environment.
func loadAppConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// setupAppLogger installs the configured logger as the slog default and
// logs a summary of the loaded configuration without secrets.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	l.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"llm_enabled", cfg.LLM.Enabled,
		"llm_model", cfg.LLM.ModelName)
	l.Debug("database configuration", "url", maskDatabaseURL(cfg.Database.URL))

	return l, nil
}
