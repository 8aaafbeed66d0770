package editor

import (
	"errors"
	"strings"
)

var (
	// ErrDuplicateTag is reported when an add would repeat an existing tag.
	ErrDuplicateTag = errors.New("tag already added")
)

// TagSet is an ordered collection of unique string labels. Values keep their
// insertion order; membership is a case-sensitive exact match.
type TagSet struct {
	values []string
}

// NewTagSet builds a set from stored values, dropping blanks and duplicates
// while keeping first-occurrence order.
func NewTagSet(values ...string) TagSet {
	var s TagSet
	for _, v := range values {
		// Duplicates in stored data are collapsed rather than rejected.
		_ = s.Add(v)
	}
	return s
}

// Add trims the value and appends it. An empty trimmed value is a no-op.
// A value already present leaves the set unchanged and returns ErrDuplicateTag.
func (s *TagSet) Add(value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	if s.Has(value) {
		return ErrDuplicateTag
	}
	s.values = append(s.values, value)
	return nil
}

// Delete removes all occurrences of value. Absent values are a no-op.
func (s *TagSet) Delete(value string) {
	kept := s.values[:0]
	for _, v := range s.values {
		if v != value {
			kept = append(kept, v)
		}
	}
	s.values = kept
}

// Has reports whether value is in the set.
func (s *TagSet) Has(value string) bool {
	for _, v := range s.values {
		if v == value {
			return true
		}
	}
	return false
}

// Values returns the tags in insertion order. The returned slice is a copy.
func (s *TagSet) Values() []string {
	if len(s.values) == 0 {
		return nil
	}
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of tags in the set.
func (s *TagSet) Len() int {
	return len(s.values)
}
