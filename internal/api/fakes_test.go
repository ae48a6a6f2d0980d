package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/procrastilist/procrastilist/internal/domain"
	"github.com/procrastilist/procrastilist/internal/service"
	"github.com/procrastilist/procrastilist/internal/service/auth"
)

// fakeTaskService implements service.TaskService with overridable funcs.
type fakeTaskService struct {
	CreateTaskFn       func(ctx context.Context, ownerID uuid.UUID, input service.CreateTaskInput) (*service.CreateTaskResult, error)
	ListTasksFn        func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)
	GetTaskFn          func(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)
	ToggleCompletionFn func(ctx context.Context, ownerID, taskID uuid.UUID) (bool, error)
	DeleteTaskFn       func(ctx context.Context, ownerID, taskID uuid.UUID) error
}

var _ service.TaskService = (*fakeTaskService)(nil)

func (f *fakeTaskService) CreateTask(
	ctx context.Context,
	ownerID uuid.UUID,
	input service.CreateTaskInput,
) (*service.CreateTaskResult, error) {
	return f.CreateTaskFn(ctx, ownerID, input)
}

func (f *fakeTaskService) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	return f.ListTasksFn(ctx, ownerID)
}

func (f *fakeTaskService) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	return f.GetTaskFn(ctx, ownerID, taskID)
}

func (f *fakeTaskService) ToggleCompletion(ctx context.Context, ownerID, taskID uuid.UUID) (bool, error) {
	return f.ToggleCompletionFn(ctx, ownerID, taskID)
}

func (f *fakeTaskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	return f.DeleteTaskFn(ctx, ownerID, taskID)
}

// fakeUserService implements service.UserService.
type fakeUserService struct {
	CreateUserFn   func(ctx context.Context, email, name, password string) (*domain.User, error)
	AuthenticateFn func(ctx context.Context, email, password string) (*domain.User, error)
}

var _ service.UserService = (*fakeUserService)(nil)

func (f *fakeUserService) GetUser(context.Context, uuid.UUID) (*domain.User, error) {
	return nil, nil
}

func (f *fakeUserService) CreateUser(ctx context.Context, email, name, password string) (*domain.User, error) {
	return f.CreateUserFn(ctx, email, name, password)
}

func (f *fakeUserService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	return f.AuthenticateFn(ctx, email, password)
}

// fakeJWTService issues a fixed token.
type fakeJWTService struct {
	Token     string
	ExpiresAt time.Time
	Err       error
}

var _ auth.JWTService = (*fakeJWTService)(nil)

func (f *fakeJWTService) GenerateToken(context.Context, uuid.UUID) (string, time.Time, error) {
	return f.Token, f.ExpiresAt, f.Err
}

func (f *fakeJWTService) ValidateToken(context.Context, string) (*auth.Claims, error) {
	return nil, auth.ErrInvalidToken
}
