package generation

import "context"

// Generator produces distraction activities for a task.
// Implementations wrap an external AI service; callers must treat every
// error as non-fatal to the task they are distracting from.
type Generator interface {
	// GenerateDistractions returns short activity descriptions meant to
	// distract from taskDescription. The returned strings are trimmed and
	// non-empty. An empty slice with a nil error is a valid answer.
	GenerateDistractions(ctx context.Context, taskDescription string) ([]string, error)
}

// NoopGenerator never produces distractions.
type NoopGenerator struct{}

// GenerateDistractions implements Generator.
func (NoopGenerator) GenerateDistractions(ctx context.Context, _ string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []string{}, nil
}

var _ Generator = NoopGenerator{}
