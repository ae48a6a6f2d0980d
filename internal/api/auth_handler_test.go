package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/procrastilist/procrastilist/internal/domain"
	"github.com/procrastilist/procrastilist/internal/service/auth"
	"github.com/procrastilist/procrastilist/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func postJSON(t *testing.T, path string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister(t *testing.T) {
	t.Parallel()

	expiresAt := time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC)
	users := &fakeUserService{
		CreateUserFn: func(_ context.Context, email, name, password string) (*domain.User, error) {
			if email == "taken@example.com" {
				return nil, store.ErrEmailExists
			}
			return &domain.User{ID: uuid.New(), Email: email, Name: name}, nil
		},
	}
	handler := NewAuthHandler(users, &fakeJWTService{Token: "test-token", ExpiresAt: expiresAt}, testLogger)

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantToken  bool
	}{
		{
			name:       "valid registration",
			payload:    map[string]interface{}{"email": "test@example.com", "password": "password1234", "name": "Tester"},
			wantStatus: http.StatusCreated,
			wantToken:  true,
		},
		{
			name:       "invalid email",
			payload:    map[string]interface{}{"email": "invalid-email", "password": "password1234"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "password too short",
			payload:    map[string]interface{}{"email": "test2@example.com", "password": "short"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing email",
			payload:    map[string]interface{}{"password": "password1234"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "email taken",
			payload:    map[string]interface{}{"email": "taken@example.com", "password": "password1234"},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			recorder := httptest.NewRecorder()
			handler.Register(recorder, postJSON(t, "/api/auth/register", tt.payload))

			assert.Equal(t, tt.wantStatus, recorder.Code)
			if tt.wantToken {
				var resp AuthResponse
				require.NoError(t, json.NewDecoder(recorder.Body).Decode(&resp))
				assert.NotEqual(t, uuid.Nil, resp.UserID)
				assert.Equal(t, "test-token", resp.AccessToken)
				assert.Equal(t, "2025-01-02T12:00:00Z", resp.ExpiresAt)
			}
		})
	}
}

func TestRegister_MalformedBody(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(&fakeUserService{}, &fakeJWTService{}, testLogger)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader("{not json"))
	recorder := httptest.NewRecorder()

	handler.Register(recorder, req)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid request format")
}

func TestLogin(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	users := &fakeUserService{
		AuthenticateFn: func(_ context.Context, email, password string) (*domain.User, error) {
			switch {
			case email == "down@example.com":
				return nil, errors.New("connection refused to postgres://user:pw@db:5432")
			case password != "password1234":
				return nil, auth.ErrInvalidCredentials
			}
			return &domain.User{ID: userID, Email: email}, nil
		},
	}
	handler := NewAuthHandler(users, &fakeJWTService{Token: "test-token", ExpiresAt: time.Now()}, testLogger)

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid login",
			payload:    map[string]interface{}{"email": "user@example.com", "password": "password1234"},
			wantStatus: http.StatusOK,
			wantBody:   "test-token",
		},
		{
			name:       "wrong password",
			payload:    map[string]interface{}{"email": "user@example.com", "password": "nope"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Invalid credentials",
		},
		{
			name:       "missing password",
			payload:    map[string]interface{}{"email": "user@example.com"},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid Password",
		},
		{
			name:       "store failure hides details",
			payload:    map[string]interface{}{"email": "down@example.com", "password": "password1234"},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "Failed to authenticate user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			recorder := httptest.NewRecorder()
			handler.Login(recorder, postJSON(t, "/api/auth/login", tt.payload))

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
			assert.NotContains(t, recorder.Body.String(), "postgres://")
		})
	}
}

func TestLogin_TokenFailure(t *testing.T) {
	t.Parallel()

	users := &fakeUserService{
		AuthenticateFn: func(context.Context, string, string) (*domain.User, error) {
			return &domain.User{ID: uuid.New()}, nil
		},
	}
	handler := NewAuthHandler(users, &fakeJWTService{Err: errors.New("sign failed")}, testLogger)
	recorder := httptest.NewRecorder()

	handler.Login(recorder, postJSON(t, "/api/auth/login",
		map[string]interface{}{"email": "user@example.com", "password": "password1234"}))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
}
