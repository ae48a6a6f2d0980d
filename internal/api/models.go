package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/procrastilist/procrastilist/internal/domain"
)

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name"     validate:"max=100"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT sent back as a bearer token.
	AccessToken string `json:"token"`

	// ExpiresAt is the RFC 3339 timestamp when the access token expires
	ExpiresAt string `json:"expires_at"`
}

// CreateTaskRequest defines the payload for creating a task. Priority and
// deadline are optional and lenient: unknown priorities become LOW and
// unparsable deadlines are dropped.
type CreateTaskRequest struct {
	Description string `json:"description" validate:"required"`
	Priority    string `json:"priority,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

// TaskResponse is the JSON view of a task.
type TaskResponse struct {
	ID            string     `json:"id"`
	Description   string     `json:"description"`
	Completed     bool       `json:"completed"`
	Priority      string     `json:"priority"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	IsDistraction bool       `json:"is_distraction"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateTaskResponse carries the new task and the distractions stored with it.
type CreateTaskResponse struct {
	Task         TaskResponse   `json:"task"`
	Distractions []TaskResponse `json:"distractions"`
}

// CreateTaskErrorResponse reports a create whose primary task was committed
// but whose distractions could not be stored, so clients do not resubmit.
type CreateTaskErrorResponse struct {
	Error   string       `json:"error"`
	TraceID string       `json:"trace_id,omitempty"`
	Task    TaskResponse `json:"task"`
}

// ListTasksResponse carries a user's tasks in insertion order.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
}

// ToggleResponse reports the outcome of a completion toggle.
type ToggleResponse struct {
	Success   bool   `json:"success"`
	Completed bool   `json:"completed"`
	Message   string `json:"message"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:            task.ID.String(),
		Description:   task.Description,
		Completed:     task.Completed,
		Priority:      string(task.Priority),
		Deadline:      task.Deadline,
		IsDistraction: task.IsDistraction,
		CreatedAt:     task.CreatedAt,
		UpdatedAt:     task.UpdatedAt,
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}
