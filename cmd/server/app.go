package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/procrastilist/procrastilist/internal/config"
	"github.com/procrastilist/procrastilist/internal/generation"
	"github.com/procrastilist/procrastilist/internal/platform/gemini"
	"github.com/procrastilist/procrastilist/internal/platform/postgres"
	"github.com/procrastilist/procrastilist/internal/service"
	"github.com/procrastilist/procrastilist/internal/service/auth"
)

// application holds the shared dependencies of the running server and
// releases them on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	jwtService  auth.JWTService
	userService service.UserService
	taskService service.TaskService
}

// newApplication wires stores, the distraction generator and services on top
// of an established database connection.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	userStore := postgres.NewPostgresUserStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	app.userService = service.NewUserService(userStore, auth.NewBcryptHasher(cfg.Auth.BcryptCost), db, logger)

	generator, err := newGenerator(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}

	app.taskService, err = service.NewTaskService(
		service.NewTaskRepositoryAdapter(taskStore, db),
		generator,
		service.TaskServiceConfig{
			GeneratorTimeout: cfg.LLM.Timeout(),
			MaxDistractions:  cfg.LLM.MaxDistractions,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// newGenerator returns the Gemini generator, or a generator that never
// produces distractions when the LLM integration is disabled.
func newGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Generator, error) {
	if !cfg.Enabled {
		logger.Warn("LLM integration disabled, tasks will be created without distractions")
		return generation.NoopGenerator{}, nil
	}

	g, err := gemini.NewGenerator(ctx, logger.With("component", "llm_generator"), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	logger.Info("LLM generator initialized",
		"model", cfg.ModelName,
		"requested_distractions", cfg.RequestedDistractions)
	return g, nil
}

// Run serves HTTP until ctx is cancelled or a shutdown signal arrives.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}
}
