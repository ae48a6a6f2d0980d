package service

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/procrastilist/procrastilist/internal/domain"
	"github.com/procrastilist/procrastilist/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockTaskRepository is a testify mock of TaskRepository. WithTx returns the
// mock itself so expectations cover transactional calls too.
type MockTaskRepository struct {
	mock.Mock
}

var _ TaskRepository = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) CreateMultiple(ctx context.Context, tasks []*domain.Task) error {
	return m.Called(ctx, tasks).Error(0)
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	args := m.Called(ctx, ownerID)
	tasks, _ := args.Get(0).([]*domain.Task)
	return tasks, args.Error(1)
}

func (m *MockTaskRepository) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*domain.Task, error) {
	args := m.Called(ctx, id, ownerID)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *MockTaskRepository) GetByIDAndOwnerForUpdate(
	ctx context.Context,
	id, ownerID uuid.UUID,
) (*domain.Task, error) {
	args := m.Called(ctx, id, ownerID)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *domain.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return m.Called(ctx, id, ownerID).Error(0)
}

func (m *MockTaskRepository) WithTx(*sql.Tx) TaskRepository { return m }

func (m *MockTaskRepository) DB() *sql.DB { return nil }

// MockGenerator is a testify mock of generation.Generator.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateDistractions(ctx context.Context, taskDescription string) ([]string, error) {
	args := m.Called(ctx, taskDescription)
	texts, _ := args.Get(0).([]string)
	return texts, args.Error(1)
}

// MockUserStore is a testify mock of store.UserStore.
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*domain.User)
	return user, args.Error(1)
}

func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore { return m }

// inlineTx runs fn without a database, standing in for store.RunInTransaction.
func inlineTx(ctx context.Context, _ *sql.DB, fn store.TxFn) error {
	return fn(ctx, nil)
}
