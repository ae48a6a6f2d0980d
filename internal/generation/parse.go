package generation

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/procrastilist/procrastilist/internal/domain"
)

// ParseDistractions turns raw model output into distraction descriptions.
//
// The whole text, once surrounding whitespace is removed, must be a JSON
// array whose elements are all strings. Anything else (code fences, prose
// around the array, objects, null, numbers) is rejected with
// ErrInvalidResponse. The text is never evaluated or interpreted beyond
// JSON decoding.
//
// An element holding a NUL character also rejects the whole response; such
// text cannot be stored. Entries are trimmed, blank entries are dropped, entries longer than
// domain.MaxDescriptionLength runes are truncated, and at most limit entries
// are returned. A limit of zero or less disables the cap.
func ParseDistractions(text string, limit int) ([]string, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[") {
		return nil, fmt.Errorf("%w: expected a JSON array", ErrInvalidResponse)
	}

	var raw []any
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	result := make([]string, 0, len(raw))
	for i, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not a string", ErrInvalidResponse, i)
		}
		if !domain.ValidText(s) {
			return nil, fmt.Errorf("%w: element %d contains invalid characters", ErrInvalidResponse, i)
		}

		s = strings.TrimSpace(s)
		if s == "" || (limit > 0 && len(result) == limit) {
			continue
		}

		result = append(result, domain.TruncateDescription(s))
	}

	return result, nil
}
