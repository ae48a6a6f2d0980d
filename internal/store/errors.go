package store

import (
	"errors"
	"fmt"
)

// Generic store errors. Implementations wrap driver errors with these so
// callers never depend on a particular database.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when a write would break a uniqueness rule.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity is rejected before or by
	// the database, e.g. a task pointing at an unknown user.
	ErrInvalidEntity = errors.New("invalid entity")
)

// Entity-specific errors. Each matches its generic parent under errors.Is.
var (
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrTaskNotFound covers both missing tasks and tasks owned by someone else.
	ErrTaskNotFound = fmt.Errorf("%w: task", ErrNotFound)

	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)
)
