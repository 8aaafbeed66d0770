package journal

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the ISO-8601 calendar date form entries are stored with.
const DateLayout = "2006-01-02"

// Entry represents a single journal entry record.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	Date      time.Time `json:"date"`
	Title     string    `json:"title,omitempty"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt float64   `json:"created_at"`
	UpdatedAt float64   `json:"updated_at"`
}

// Tag represents a label together with the number of entries carrying it.
type Tag struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// encodeTags serializes a tag list to its stored JSON text form.
// A nil or empty list is stored as the empty JSON array.
func encodeTags(tags []string) (string, error) {
	if len(tags) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}
	return string(raw), nil
}

// decodeTags parses the stored JSON text form back into an ordered tag list.
func decodeTags(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var tags []string
	if err := json.Unmarshal([]byte(raw), &tags); err != nil {
		return nil, fmt.Errorf("failed to decode stored tags %q: %w", raw, err)
	}
	if len(tags) == 0 {
		return nil, nil
	}
	return tags, nil
}
