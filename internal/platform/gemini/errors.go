package gemini

import "errors"

// Error definitions for the gemini package.
var (
	// ErrEmptyTaskDescription is returned when asked to distract from an empty task.
	ErrEmptyTaskDescription = errors.New("task description cannot be empty")
)
