//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/procrastilist/procrastilist/internal/domain"
	"github.com/procrastilist/procrastilist/internal/platform/postgres"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestTimeout bounds individual setup operations against the test database.
const TestTimeout = 5 * time.Second

var (
	migrateOnce sync.Once
	migrateErr  error
)

// GetTestDatabaseURL returns PROCRASTILIST_TEST_DATABASE_URL, falling back
// to DATABASE_URL.
func GetTestDatabaseURL() string {
	if u := os.Getenv("PROCRASTILIST_TEST_DATABASE_URL"); u != "" {
		return u
	}
	return os.Getenv("DATABASE_URL")
}

// GetTestDB opens a connection to the test database and applies all
// migrations once per test binary. The test is skipped when no database URL
// is configured.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbURL := GetTestDatabaseURL()
	if dbURL == "" {
		t.Skip("no test database configured, set PROCRASTILIST_TEST_DATABASE_URL")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	migrateOnce.Do(func() {
		migrateErr = postgres.RunMigrations(context.Background(), db, "up")
	})
	require.NoError(t, migrateErr, "failed to migrate test database")

	return db
}

// WithTx runs fn inside a transaction that is rolled back afterwards, so
// tests can write freely and still run in parallel.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// CreateTestUser inserts a user with a unique email through the user store.
func CreateTestUser(t *testing.T, tx *sql.Tx) *domain.User {
	t.Helper()

	email := fmt.Sprintf("test-%s@example.com", uuid.NewString()[:8])
	user, err := domain.NewUser(email, "Test User", "password123")
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	require.NoError(t, err)
	user.HashedPassword = string(hash)
	user.Password = ""

	userStore := postgres.NewPostgresUserStore(tx, nil)
	require.NoError(t, userStore.Create(context.Background(), user), "failed to create test user")
	return user
}
