package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/procrastilist/procrastilist/internal/config"
	"github.com/procrastilist/procrastilist/internal/platform/postgres"
	"github.com/spf13/cobra"
)

// migrateDatabaseURL overrides database.url so migrations can run without
// the rest of the server configuration.
var migrateDatabaseURL string

// supportedMigrateCommands are the goose commands that work against the
// embedded migrations. "create" needs a writable directory and is left to
// the goose CLI.
var supportedMigrateCommands = []string{"up", "up-by-one", "down", "redo", "reset", "status", "version"}

var migrateCmd = &cobra.Command{
	Use:       "migrate <up|up-by-one|down|redo|reset|status|version>",
	Short:     "Run database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: supportedMigrateCommands,
	RunE:      runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVar(&migrateDatabaseURL, "database-url", "",
		"Database URL (default: database.url from configuration)")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	dbCfg, logger, err := migrateDatabaseConfig()
	if err != nil {
		return err
	}

	db, err := setupAppDatabase(ctx, dbCfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database connection", "error", err)
		}
	}()

	return runMigrations(ctx, db, logger, args[0])
}

// migrateDatabaseConfig resolves the database settings for the migrate
// command. With --database-url the full server configuration is not needed.
func migrateDatabaseConfig() (config.DatabaseConfig, *slog.Logger, error) {
	if migrateDatabaseURL != "" {
		return config.DatabaseConfig{URL: migrateDatabaseURL, MaxOpenConns: 2}, slog.Default(), nil
	}

	cfg, err := loadAppConfig()
	if err != nil {
		return config.DatabaseConfig{}, nil, err
	}
	logger, err := setupAppLogger(cfg)
	if err != nil {
		return config.DatabaseConfig{}, nil, err
	}
	return cfg.Database, logger, nil
}

// runMigrations executes a goose command against the embedded migrations,
// routing goose output through slog.
func runMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger, command string) error {
	migrationLogger := logger.With(
		"correlation_id", uuid.NewString(),
		"component", "migrations",
		"command", command,
	)
	goose.SetLogger(&slogGooseLogger{logger: migrationLogger})

	start := time.Now()
	migrationLogger.Info("starting migration operation", "operation", "goose "+command)

	err := postgres.RunMigrations(ctx, db, command)

	migrationLogger.Info("migration operation completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"success", err == nil)
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}

// slogGooseLogger adapts the goose logger interface to slog.
type slogGooseLogger struct {
	logger *slog.Logger
}

// Printf implements goose.Logger.
func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, v...))
}

// Fatalf implements goose.Logger. It logs at ERROR and does not exit; the
// error reaches the caller through goose's return value.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
