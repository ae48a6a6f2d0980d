package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/procrastilist/procrastilist/internal/domain"
	"github.com/procrastilist/procrastilist/internal/generation"
	"github.com/procrastilist/procrastilist/internal/platform/logger"
	"github.com/procrastilist/procrastilist/internal/store"
)

// Defaults applied when TaskServiceConfig leaves a field at zero.
const (
	DefaultGeneratorTimeout = 5 * time.Second
	DefaultMaxDistractions  = 10
)

// TaskService manages a user's task list and the distractions injected into it.
type TaskService interface {
	// CreateTask validates and stores a task, then asks the generator for
	// distractions and stores those too. Generator failures never fail the
	// call; they only mean the result carries no distractions. When the
	// distractions cannot be stored the error is returned together with a
	// result holding the committed primary task.
	CreateTask(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*CreateTaskResult, error)

	// ListTasks returns every task of the owner in insertion order.
	ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error)

	// GetTask returns a single task of the owner.
	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// ToggleCompletion flips the completed flag atomically and returns the new value.
	ToggleCompletion(ctx context.Context, ownerID, taskID uuid.UUID) (bool, error)

	// DeleteTask removes a task of the owner.
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
}

// CreateTaskInput carries the raw user input for a new task.
// Priority and Deadline are lenient: unknown values fall back to LOW and no
// deadline respectively.
type CreateTaskInput struct {
	Description string
	Priority    string
	Deadline    string
}

// CreateTaskResult is the stored primary task plus any stored distractions.
type CreateTaskResult struct {
	Task         *domain.Task
	Distractions []*domain.Task
}

// TaskServiceConfig tunes the distraction workflow.
type TaskServiceConfig struct {
	// GeneratorTimeout bounds each generator call.
	GeneratorTimeout time.Duration

	// MaxDistractions caps how many distractions are stored per task.
	MaxDistractions int
}

type taskServiceImpl struct {
	taskRepo  TaskRepository
	generator generation.Generator
	config    TaskServiceConfig
	runInTx   store.TxRunner
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if any of the required dependencies are nil.
func NewTaskService(
	taskRepo TaskRepository,
	generator generation.Generator,
	cfg TaskServiceConfig,
	logger *slog.Logger,
) (TaskService, error) {
	if taskRepo == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "taskRepo cannot be nil"}
	}
	if generator == nil {
		return nil, &TaskServiceError{Operation: "create_service", Message: "generator cannot be nil"}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.GeneratorTimeout <= 0 {
		cfg.GeneratorTimeout = DefaultGeneratorTimeout
	}
	if cfg.MaxDistractions <= 0 {
		cfg.MaxDistractions = DefaultMaxDistractions
	}

	return &taskServiceImpl{
		taskRepo:  taskRepo,
		generator: generator,
		config:    cfg,
		runInTx:   store.RunInTransaction,
		logger:    logger.With("component", "task_service"),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	ownerID uuid.UUID,
	input CreateTaskInput,
) (*CreateTaskResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(
		ownerID,
		input.Description,
		domain.ParsePriority(input.Priority),
		domain.ParseDeadline(input.Deadline),
	)
	if err != nil {
		log.Debug("rejected task input",
			"error", err,
			"user_id", ownerID)
		return nil, err
	}

	err = s.runInTx(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.taskRepo.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		log.Error("failed to save task",
			"error", err,
			"user_id", ownerID,
			"task_id", task.ID)
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	result := &CreateTaskResult{Task: task, Distractions: []*domain.Task{}}

	texts := s.generateDistractions(ctx, log, task)
	if len(texts) == 0 {
		return result, nil
	}

	distractions := make([]*domain.Task, 0, len(texts))
	for _, text := range texts {
		d, err := domain.NewDistractionTask(ownerID, text)
		if err != nil {
			log.Warn("skipping invalid distraction",
				"error", err,
				"task_id", task.ID)
			continue
		}
		distractions = append(distractions, d)
	}
	if len(distractions) == 0 {
		return result, nil
	}

	err = s.runInTx(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		return s.taskRepo.WithTx(tx).CreateMultiple(ctx, distractions)
	})
	if err != nil {
		// The primary task stays committed.
		log.Error("failed to save distractions",
			"error", err,
			"user_id", ownerID,
			"task_id", task.ID,
			"distraction_count", len(distractions))
		return result, &TaskServiceError{
			Operation: "create_task",
			Message:   fmt.Sprintf("task %s saved but its distractions were not", task.ID),
			Err:       err,
		}
	}

	log.Info("task created with distractions",
		"user_id", ownerID,
		"task_id", task.ID,
		"distraction_count", len(distractions))

	result.Distractions = distractions
	return result, nil
}

// generateDistractions calls the generator under a timeout. Every failure is
// logged and reported as no distractions.
func (s *taskServiceImpl) generateDistractions(
	ctx context.Context,
	log *slog.Logger,
	task *domain.Task,
) []string {
	genCtx, cancel := context.WithTimeout(ctx, s.config.GeneratorTimeout)
	defer cancel()

	texts, err := s.generator.GenerateDistractions(genCtx, task.Description)
	if err != nil {
		log.Warn("distraction generation failed, keeping task only",
			"error", err,
			"task_id", task.ID,
			"timed_out", errors.Is(genCtx.Err(), context.DeadlineExceeded))
		return nil
	}

	if len(texts) > s.config.MaxDistractions {
		log.Debug("capping distractions",
			"returned", len(texts),
			"max", s.config.MaxDistractions)
		texts = texts[:s.config.MaxDistractions]
	}
	return texts
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context, ownerID uuid.UUID) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to list tasks",
			"error", err,
			"user_id", ownerID)
		return nil, NewTaskServiceError("list_tasks", "failed to list tasks", err)
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return tasks, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskRepo.GetByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to get task",
				"error", err,
				"user_id", ownerID,
				"task_id", taskID)
		}
		return nil, NewTaskServiceError("get_task", "failed to get task", err)
	}
	return task, nil
}

// ToggleCompletion implements TaskService.ToggleCompletion
// The row is locked for the duration of the transaction so concurrent
// toggles serialize.
func (s *taskServiceImpl) ToggleCompletion(ctx context.Context, ownerID, taskID uuid.UUID) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var completed bool
	err := s.runInTx(ctx, s.taskRepo.DB(), func(ctx context.Context, tx *sql.Tx) error {
		txRepo := s.taskRepo.WithTx(tx)

		task, err := txRepo.GetByIDAndOwnerForUpdate(ctx, taskID, ownerID)
		if err != nil {
			return err
		}

		completed = task.ToggleCompleted()
		return txRepo.Save(ctx, task)
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("toggle on unknown task",
				"user_id", ownerID,
				"task_id", taskID)
		} else {
			log.Error("failed to toggle task",
				"error", err,
				"user_id", ownerID,
				"task_id", taskID)
		}
		return false, NewTaskServiceError("toggle_completion", "failed to toggle task", err)
	}

	log.Debug("task toggled",
		"user_id", ownerID,
		"task_id", taskID,
		"completed", completed)
	return completed, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskRepo.Delete(ctx, taskID, ownerID); err != nil {
		if !errors.Is(err, store.ErrTaskNotFound) {
			log.Error("failed to delete task",
				"error", err,
				"user_id", ownerID,
				"task_id", taskID)
		}
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	log.Info("task deleted",
		"user_id", ownerID,
		"task_id", taskID)
	return nil
}
