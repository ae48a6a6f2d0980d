package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/procrastilist/procrastilist/internal/api/shared"
	"github.com/procrastilist/procrastilist/internal/domain"
	"github.com/procrastilist/procrastilist/internal/service"
	"github.com/procrastilist/procrastilist/internal/service/auth"
	"github.com/procrastilist/procrastilist/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"task not found", service.ErrTaskNotFound, http.StatusNotFound},
		{"wrapped store not found", fmt.Errorf("get: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"domain validation", domain.ErrTaskDescriptionLong, http.StatusBadRequest},
		{"invalid characters", domain.ErrTaskDescriptionFormat, http.StatusBadRequest},
		{"bare invalid format", domain.ErrInvalidFormat, http.StatusBadRequest},
		{"invalid id", domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), http.StatusBadRequest},
		{"empty body", shared.ErrEmptyBody, http.StatusBadRequest},
		{"storage", &service.TaskServiceError{Operation: "list_tasks", Err: errors.New("boom")}, http.StatusInternalServerError},
		{"unknown", errors.New("mystery"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{"expired", auth.ErrExpiredToken, "Token expired"},
		{"wrong type", auth.ErrWrongTokenType, "Invalid token"},
		{"credentials", auth.ErrInvalidCredentials, "Invalid credentials"},
		{"task not found", service.ErrTaskNotFound, "Task not found"},
		{"email exists", store.ErrEmailExists, "Email already exists"},
		{"domain validation", domain.ErrEmptyTaskDescription, "Invalid input: task description cannot be empty"},
		{
			"invalid characters",
			domain.ErrTaskDescriptionFormat,
			"Invalid input: task description contains invalid characters (invalid format)",
		},
		{"bare invalid format", domain.ErrInvalidFormat, "Invalid format"},
		{"field validation", domain.NewValidationError("id", "has invalid format", domain.ErrInvalidID), "Invalid id: has invalid format"},
		{"internal detail hidden", errors.New("pq: relation tasks does not exist"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	v := validator.New()

	err := v.Struct(RegisterRequest{Password: "password1234"})
	require.Error(t, err)
	assert.Equal(t, "Invalid Email: required field", SanitizeValidationError(err))

	err = v.Struct(RegisterRequest{Email: "not-an-email", Password: "password1234"})
	require.Error(t, err)
	assert.Equal(t, "Invalid Email: invalid email format", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}

func TestHandleAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		defaultMsg string
		wantStatus int
		wantMsg    string
	}{
		{"not found keeps safe message", service.ErrTaskNotFound, "Failed", http.StatusNotFound, "Task not found"},
		{"server error uses default", errors.New("dial tcp 10.0.0.1:5432"), "Failed to list tasks", http.StatusInternalServerError, "Failed to list tasks"},
		{"server error without default", errors.New("boom"), "", http.StatusInternalServerError, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			req = req.WithContext(shared.SetTraceID(req.Context()))
			rec := httptest.NewRecorder()

			HandleAPIError(rec, req, tt.err, tt.defaultMsg)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp shared.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.wantMsg, resp.Error)
			assert.Equal(t, shared.GetTraceID(req.Context()), resp.TraceID)
		})
	}
}
