// Package service contains the application use cases of ProcrastiList. It
// orchestrates domain objects, the repositories defined in internal/store and
// the distraction generator.
//
// TaskService owns the task workflow: creating a task and injecting the
// generated distractions, listing, toggling completion inside a row-locking
// transaction, and deleting. Generator failures are absorbed here so that
// creating a task never fails because of the generator.
//
// UserService covers registration and credential checks for the API layer.
//
// Services receive their dependencies through constructor injection and never
// depend on a concrete storage implementation. Errors are translated into the
// sentinels in errors.go, which the API layer maps to HTTP status codes.
package service
