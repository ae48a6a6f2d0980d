package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrGenerationFailed is returned when distraction generation fails for any general reason
	ErrGenerationFailed = errors.New("failed to generate distractions")

	// ErrInvalidResponse is returned when the model response is not a JSON array of strings
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during distraction generation")

	// ErrInvalidConfig is returned when the generator configuration is invalid
	ErrInvalidConfig = errors.New("invalid generator configuration")
)
