package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/procrastilist/procrastilist/internal/domain"
	"github.com/procrastilist/procrastilist/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskColumnNames = []string{
	"id", "user_id", "description", "completed", "priority",
	"deadline", "is_distraction", "created_at", "updated_at",
}

func newMockTaskStore(t *testing.T) (*PostgresTaskStore, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresTaskStore(db, slog.New(slog.NewTextHandler(io.Discard, nil))), db, mock
}

func taskRow(rows *sqlmock.Rows, task *domain.Task) *sqlmock.Rows {
	var deadline driver.Value
	if task.Deadline != nil {
		deadline = *task.Deadline
	}
	return rows.AddRow(
		task.ID.String(),
		task.UserID.String(),
		task.Description,
		task.Completed,
		string(task.Priority),
		deadline,
		task.IsDistraction,
		task.CreatedAt,
		task.UpdatedAt,
	)
}

func mustTask(t *testing.T, owner uuid.UUID, description string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(owner, description, domain.PriorityLow, nil)
	require.NoError(t, err)
	return task
}

func TestPostgresTaskStore_Create(t *testing.T) {
	t.Parallel()

	s, _, mock := newMockTaskStore(t)
	owner := uuid.New()
	task := mustTask(t, owner, "Write report")

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs(
			task.ID.String(), owner.String(), "Write report", false, "LOW",
			nil, false, sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Create(context.Background(), task))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_CreateRejectsInvalidTask(t *testing.T) {
	t.Parallel()

	s, _, mock := newMockTaskStore(t)
	task := mustTask(t, uuid.New(), "Write report")
	task.Description = "  "

	err := s.Create(context.Background(), task)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet(), "no statement should be issued")
}

func TestPostgresTaskStore_CreateUnknownOwner(t *testing.T) {
	t.Parallel()

	s, _, mock := newMockTaskStore(t)
	task := mustTask(t, uuid.New(), "Write report")

	mock.ExpectExec("INSERT INTO tasks").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "tasks_user_id_fkey"})

	err := s.Create(context.Background(), task)

	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_CreateMultipleInOrder(t *testing.T) {
	t.Parallel()

	s, _, mock := newMockTaskStore(t)
	owner := uuid.New()
	first, err := domain.NewDistractionTask(owner, "Watch cat videos")
	require.NoError(t, err)
	second, err := domain.NewDistractionTask(owner, "Scroll Instagram")
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO tasks").
		WithArgs(first.ID.String(), owner.String(), "Watch cat videos", false, "HIGH",
			nil, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO tasks").
		WithArgs(second.ID.String(), owner.String(), "Scroll Instagram", false, "HIGH",
			nil, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(sql.ErrConnDone)

	err = s.CreateMultiple(context.Background(), []*domain.Task{first, second})

	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_ListByOwner(t *testing.T) {
	t.Parallel()

	s, _, mock := newMockTaskStore(t)
	owner := uuid.New()
	deadline := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	first, err := domain.NewTask(owner, "Write report", domain.PriorityMedium, &deadline)
	require.NoError(t, err)
	second, err := domain.NewDistractionTask(owner, "Watch cat videos")
	require.NoError(t, err)

	rows := sqlmock.NewRows(taskColumnNames)
	taskRow(rows, first)
	taskRow(rows, second)
	mock.ExpectQuery(`FROM tasks WHERE user_id = \$1 ORDER BY position ASC`).
		WithArgs(owner.String()).
		WillReturnRows(rows)

	tasks, err := s.ListByOwner(context.Background(), owner)

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, first.ID, tasks[0].ID)
	assert.Equal(t, domain.PriorityMedium, tasks[0].Priority)
	require.NotNil(t, tasks[0].Deadline)
	assert.True(t, deadline.Equal(*tasks[0].Deadline))
	assert.Equal(t, second.ID, tasks[1].ID)
	assert.True(t, tasks[1].IsDistraction)
	assert.Nil(t, tasks[1].Deadline)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_ListByOwnerEmpty(t *testing.T) {
	t.Parallel()

	s, _, mock := newMockTaskStore(t)
	mock.ExpectQuery("FROM tasks").WillReturnRows(sqlmock.NewRows(taskColumnNames))

	tasks, err := s.ListByOwner(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestPostgresTaskStore_GetByIDAndOwner(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		s, _, mock := newMockTaskStore(t)
		task := mustTask(t, uuid.New(), "Write report")
		mock.ExpectQuery(`FROM tasks WHERE id = \$1 AND user_id = \$2$`).
			WithArgs(task.ID.String(), task.UserID.String()).
			WillReturnRows(taskRow(sqlmock.NewRows(taskColumnNames), task))

		got, err := s.GetByIDAndOwner(context.Background(), task.ID, task.UserID)

		require.NoError(t, err)
		assert.Equal(t, task.Description, got.Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing or foreign", func(t *testing.T) {
		t.Parallel()

		s, _, mock := newMockTaskStore(t)
		mock.ExpectQuery("FROM tasks").WillReturnError(sql.ErrNoRows)

		got, err := s.GetByIDAndOwner(context.Background(), uuid.New(), uuid.New())

		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestPostgresTaskStore_ToggleInsideTransaction(t *testing.T) {
	t.Parallel()

	s, db, mock := newMockTaskStore(t)
	task := mustTask(t, uuid.New(), "Write report")

	mock.ExpectBegin()
	mock.ExpectQuery(`FROM tasks WHERE id = \$1 AND user_id = \$2 FOR UPDATE`).
		WithArgs(task.ID.String(), task.UserID.String()).
		WillReturnRows(taskRow(sqlmock.NewRows(taskColumnNames), task))
	mock.ExpectExec("UPDATE tasks SET").
		WithArgs("Write report", true, "LOW", nil, sqlmock.AnyArg(), task.ID.String(), task.UserID.String()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	var completed bool
	err := store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.WithTx(tx)
		locked, err := txStore.GetByIDAndOwnerForUpdate(ctx, task.ID, task.UserID)
		if err != nil {
			return err
		}
		completed = locked.ToggleCompleted()
		return txStore.Save(ctx, locked)
	})

	require.NoError(t, err)
	assert.True(t, completed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_SaveNotFound(t *testing.T) {
	t.Parallel()

	s, _, mock := newMockTaskStore(t)
	task := mustTask(t, uuid.New(), "Write report")
	mock.ExpectExec("UPDATE tasks").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, s.Save(context.Background(), task), store.ErrTaskNotFound)
}

func TestPostgresTaskStore_Delete(t *testing.T) {
	t.Parallel()

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		s, _, mock := newMockTaskStore(t)
		id, owner := uuid.New(), uuid.New()
		mock.ExpectExec(`DELETE FROM tasks WHERE id = \$1 AND user_id = \$2`).
			WithArgs(id.String(), owner.String()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, s.Delete(context.Background(), id, owner))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		s, _, mock := newMockTaskStore(t)
		mock.ExpectExec("DELETE FROM tasks").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(context.Background(), uuid.New(), uuid.New()), store.ErrTaskNotFound)
	})
}
