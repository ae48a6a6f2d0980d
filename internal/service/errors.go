package service

import (
	"errors"
	"fmt"

	"github.com/procrastilist/procrastilist/internal/domain"
	"github.com/procrastilist/procrastilist/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrTaskNotFound indicates that the task does not exist or belongs to
	// another user. The two cases are deliberately indistinguishable.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrStorage marks persistence failures that are not the caller's fault.
	// API layer should map this to HTTP 500 Internal Server Error.
	ErrStorage = errors.New("storage failure")
)

// TaskServiceError wraps errors from the task service with context.
// It matches ErrStorage under errors.Is.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "toggle_completion")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// Is reports ErrStorage as a match.
func (e *TaskServiceError) Is(target error) bool {
	return target == ErrStorage
}

// NewTaskServiceError classifies err for callers of the task service.
// Not-found errors collapse to ErrTaskNotFound and validation errors are
// returned unchanged; everything else becomes a *TaskServiceError.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) || errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	if errors.Is(err, domain.ErrValidation) {
		return err
	}

	var serviceErr *TaskServiceError
	if errors.As(err, &serviceErr) {
		return err
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
