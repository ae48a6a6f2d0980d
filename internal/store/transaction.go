package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/procrastilist/procrastilist/internal/platform/logger"
)

// TxFn is a unit of work executed inside a database transaction.
// Returning nil commits; returning an error rolls back.
type TxFn func(ctx context.Context, tx *sql.Tx) error

// TxRunner runs a TxFn inside a transaction. RunInTransaction is the
// production implementation; services accept a TxRunner so unit tests can
// execute the function without a database.
type TxRunner func(ctx context.Context, db *sql.DB, fn TxFn) error

// RunInTransaction executes fn within a database transaction.
// If fn returns an error or panics, the transaction is rolled back and the
// error (or panic) is propagated. Otherwise the transaction is committed.
func RunInTransaction(ctx context.Context, db *sql.DB, fn TxFn) error {
	log := logger.FromContext(ctx)

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to roll back transaction after panic",
					slog.String("error", rbErr.Error()),
					slog.Any("panic", p))
			} else {
				log.Error("rolled back transaction after panic",
					slog.Any("panic", p))
			}
			panic(p)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error("failed to roll back transaction",
				slog.String("rollback_error", rbErr.Error()),
				slog.String("original_error", err.Error()))
			return fmt.Errorf(
				"error rolling back transaction: %v (original error: %w)",
				rbErr,
				err,
			)
		}
		log.Debug("rolled back transaction due to error",
			slog.String("error", err.Error()))
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error("failed to commit transaction",
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Debug("transaction committed")
	return nil
}
