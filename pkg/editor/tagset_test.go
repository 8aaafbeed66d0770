package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagSetAdd(t *testing.T) {
	var s TagSet

	require.NoError(t, s.Add("work"))
	require.NoError(t, s.Add("life"))
	assert.Equal(t, []string{"work", "life"}, s.Values())
}

func TestTagSetAddDuplicate(t *testing.T) {
	var s TagSet

	require.NoError(t, s.Add("x"))
	err := s.Add("x")
	assert.ErrorIs(t, err, ErrDuplicateTag)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []string{"x"}, s.Values())
}

func TestTagSetAddTrims(t *testing.T) {
	var s TagSet

	require.NoError(t, s.Add("  x  "))
	assert.Equal(t, []string{"x"}, s.Values())

	// The trimmed form collides with the stored one.
	assert.ErrorIs(t, s.Add("x "), ErrDuplicateTag)
}

func TestTagSetAddBlankIsNoop(t *testing.T) {
	var s TagSet

	require.NoError(t, s.Add(""))
	require.NoError(t, s.Add("   "))
	assert.Equal(t, 0, s.Len())
}

func TestTagSetCaseSensitive(t *testing.T) {
	var s TagSet

	require.NoError(t, s.Add("Work"))
	require.NoError(t, s.Add("work"))
	assert.Equal(t, []string{"Work", "work"}, s.Values())
}

func TestTagSetDelete(t *testing.T) {
	s := NewTagSet("a", "b", "c")

	s.Delete("b")
	assert.Equal(t, []string{"a", "c"}, s.Values())

	// Deleting a non-member changes nothing.
	s.Delete("z")
	assert.Equal(t, []string{"a", "c"}, s.Values())
}

func TestNewTagSetCollapsesStoredDuplicates(t *testing.T) {
	s := NewTagSet("a", "b", "a", " ")
	assert.Equal(t, []string{"a", "b"}, s.Values())
}

func TestTagSetValuesIsACopy(t *testing.T) {
	s := NewTagSet("a", "b")

	vals := s.Values()
	vals[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, s.Values())
}
