package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/procrastilist/procrastilist/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every read and write is scoped by owner: a task belonging to another user
// is indistinguishable from a task that does not exist.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// CreateMultiple saves several tasks in order. It does not open its own
	// transaction; callers wanting all-or-nothing semantics use WithTx.
	CreateMultiple(ctx context.Context, tasks []*domain.Task) error

	// ListByOwner returns all tasks of the owner in insertion order.
	// An owner without tasks yields an empty slice, not an error.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// GetByIDAndOwner retrieves a single task.
	// Returns ErrTaskNotFound if it does not exist or belongs to someone else.
	GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// GetByIDAndOwnerForUpdate is GetByIDAndOwner with a row lock held until
	// the surrounding transaction ends. Only meaningful on a store from WithTx.
	GetByIDAndOwnerForUpdate(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error)

	// Save persists the mutable fields (completed, priority, deadline,
	// description) of an existing task.
	// Returns ErrTaskNotFound if no row matched id and owner.
	Save(ctx context.Context, task *domain.Task) error

	// Delete removes the task.
	// Returns ErrTaskNotFound if no row matched id and owner.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
