package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/procrastilist/procrastilist/internal/api/shared"
	"github.com/procrastilist/procrastilist/internal/platform/logger"
	"github.com/procrastilist/procrastilist/internal/redact"
	"github.com/procrastilist/procrastilist/internal/service"
)

// Toggle outcome messages shown by clients.
const (
	msgTaskCompleted   = "Task completed successfully!"
	msgTaskUncompleted = "Task uncompleted successfully!"
	msgTaskNotFound    = "Task not found"

	msgDistractionsNotSaved = "Task saved but its distractions could not be stored"
)

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /api/tasks.
// A generator failure still yields 201 with an empty distraction list. A
// failure storing distractions yields 500 with the committed task in the body.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.taskService.CreateTask(r.Context(), userID, service.CreateTaskInput{
		Description: req.Description,
		Priority:    req.Priority,
		Deadline:    req.Deadline,
	})
	if err != nil && result != nil && result.Task != nil {
		log.Error("task saved without its distractions",
			slog.String("task_id", result.Task.ID.String()),
			slog.String("error", redact.Error(err)))
		shared.RespondWithJSON(w, r, http.StatusInternalServerError, CreateTaskErrorResponse{
			Error:   msgDistractionsNotSaved,
			TraceID: shared.GetTraceID(r.Context()),
			Task:    taskToResponse(result.Task),
		})
		return
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create task")
		return
	}

	log.Debug("task created",
		slog.String("task_id", result.Task.ID.String()),
		slog.Int("distraction_count", len(result.Distractions)))

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateTaskResponse{
		Task:         taskToResponse(result.Task),
		Distractions: tasksToResponse(result.Distractions),
	})
}

// ListTasks handles GET /api/tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := handleUserID(w, r, log)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ListTasksResponse{Tasks: tasksToResponse(tasks)})
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// ToggleTask handles POST /api/tasks/{id}/toggle. Both outcomes use the
// ToggleResponse shape so clients can read success and message uniformly.
func (h *TaskHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	completed, err := h.taskService.ToggleCompletion(r.Context(), userID, taskID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			shared.RespondWithJSON(w, r, http.StatusNotFound, ToggleResponse{
				Success: false,
				Message: msgTaskNotFound,
			})
			return
		}
		HandleAPIError(w, r, err, "Failed to update task")
		return
	}

	message := msgTaskUncompleted
	if completed {
		message = msgTaskCompleted
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ToggleResponse{
		Success:   true,
		Completed: completed,
		Message:   message,
	})
}

// DeleteTask handles DELETE /api/tasks/{id} and its POST alias.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, taskID, ok := handleUserIDAndPathUUID(w, r, "id", log)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete task")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
