// Package store defines the persistence contracts for tasks and users,
// the error values every implementation returns, and RunInTransaction,
// which services use to group several store calls into one unit of work.
package store
