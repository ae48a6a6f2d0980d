// Package testdb provides helpers for tests that run against a real
// PostgreSQL database. Every helper lives behind the "integration" build tag
// and skips when no test database URL is configured.
//
// Tests obtain a migrated connection with GetTestDB and isolate their writes
// with WithTx, which always rolls back:
//
//	db := testdb.GetTestDB(t)
//	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//		user := testdb.CreateTestUser(t, tx)
//		...
//	})
package testdb
