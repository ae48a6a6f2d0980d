package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxDescriptionLength is the maximum number of characters in a task description.
const MaxDescriptionLength = 100

// Priority represents how urgent a task is.
type Priority string

// Possible priority values
const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// DefaultPriority is assigned to user-entered tasks that carry no valid priority.
const DefaultPriority = PriorityLow

// Task validation errors. Each wraps ErrValidation.
var (
	ErrEmptyTaskID          = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrEmptyTaskOwner       = fmt.Errorf("%w: task owner cannot be empty", ErrValidation)
	ErrEmptyTaskDescription = fmt.Errorf("%w: task description cannot be empty", ErrValidation)
	ErrTaskDescriptionLong  = fmt.Errorf(
		"%w: task description must be at most %d characters",
		ErrValidation,
		MaxDescriptionLength,
	)
	ErrInvalidPriority = fmt.Errorf("%w: invalid task priority", ErrValidation)

	// ErrTaskDescriptionFormat also matches ErrInvalidFormat. PostgreSQL
	// text columns cannot hold NUL bytes or invalid UTF-8.
	ErrTaskDescriptionFormat = fmt.Errorf(
		"%w: task description contains invalid characters (%w)",
		ErrValidation,
		ErrInvalidFormat,
	)
)

// deadlineLayouts are tried in order when parsing a caller-supplied deadline.
// The first one is what an HTML datetime-local input submits.
var deadlineLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Task is a to-do item owned by exactly one user. It is either entered by
// the user or generated as a distraction alongside a user task.
type Task struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	Description   string     `json:"description"`
	Completed     bool       `json:"completed"`
	Priority      Priority   `json:"priority"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	IsDistraction bool       `json:"is_distraction"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewTask creates a user-entered task. The description is trimmed before
// validation; the deadline may be nil.
func NewTask(userID uuid.UUID, description string, priority Priority, deadline *time.Time) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Description: strings.TrimSpace(description),
		Priority:    priority,
		Deadline:    deadline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// NewDistractionTask creates a generated distraction task. Distractions are
// always high priority, never completed and carry no deadline.
func NewDistractionTask(userID uuid.UUID, description string) (*Task, error) {
	task, err := NewTask(userID, description, PriorityHigh, nil)
	if err != nil {
		return nil, err
	}
	task.IsDistraction = true
	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwner
	}

	if strings.TrimSpace(t.Description) == "" {
		return ErrEmptyTaskDescription
	}

	if !ValidText(t.Description) {
		return ErrTaskDescriptionFormat
	}

	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return ErrTaskDescriptionLong
	}

	if !t.Priority.IsValid() {
		return ErrInvalidPriority
	}

	return nil
}

// ToggleCompleted flips the completion flag and returns the new value.
func (t *Task) ToggleCompleted() bool {
	t.Completed = !t.Completed
	t.UpdatedAt = time.Now().UTC()
	return t.Completed
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// ParsePriority converts user input into a Priority. Matching is
// case-insensitive; anything unknown or empty yields DefaultPriority.
func ParsePriority(s string) Priority {
	p := Priority(strings.ToUpper(strings.TrimSpace(s)))
	if !p.IsValid() {
		return DefaultPriority
	}
	return p
}

// ParseDeadline parses a caller-supplied deadline. An empty or unparsable
// value yields nil rather than an error.
func ParseDeadline(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			return &utc
		}
	}

	return nil
}

// ValidText reports whether s can be stored as task text: valid UTF-8
// without NUL characters.
func ValidText(s string) bool {
	return utf8.ValidString(s) && !strings.ContainsRune(s, 0)
}

// TruncateDescription shortens s to at most MaxDescriptionLength characters.
func TruncateDescription(s string) string {
	if utf8.RuneCountInString(s) <= MaxDescriptionLength {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:MaxDescriptionLength]))
}
