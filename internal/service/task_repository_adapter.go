package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/procrastilist/procrastilist/internal/domain"
	"github.com/procrastilist/procrastilist/internal/store"
)

// TaskRepository is the persistence view the task service needs: the
// store.TaskStore operations plus access to the database handle for
// starting transactions.
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	CreateMultiple(ctx context.Context, tasks []*domain.Task) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)
	GetByIDAndOwnerForUpdate(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)
	Save(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// WithTx returns a repository bound to tx.
	WithTx(tx *sql.Tx) TaskRepository

	// DB returns the underlying database connection.
	DB() *sql.DB
}

// NewTaskRepositoryAdapter creates a new adapter that allows a store.TaskStore
// to be used where a TaskRepository is expected.
func NewTaskRepositoryAdapter(taskStore store.TaskStore, db *sql.DB) TaskRepository {
	return &taskRepositoryAdapter{
		TaskStore: taskStore,
		db:        db,
	}
}

type taskRepositoryAdapter struct {
	store.TaskStore
	db *sql.DB
}

// WithTx implements TaskRepository.WithTx
func (a *taskRepositoryAdapter) WithTx(tx *sql.Tx) TaskRepository {
	return &taskRepositoryAdapter{
		TaskStore: a.TaskStore.WithTx(tx),
		db:        a.db,
	}
}

// DB implements TaskRepository.DB
func (a *taskRepositoryAdapter) DB() *sql.DB {
	return a.db
}
