package journal

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestListTags(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	date := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)

	createTestEntry(t, ctx, testDB, date, "One", "body", []string{"alpha", "beta"})
	createTestEntry(t, ctx, testDB, date, "Two", "body", []string{"beta"})
	createTestEntry(t, ctx, testDB, date, "Three", "body", nil)

	tags, err := ListTags(ctx, testDB)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}

	if len(tags) != 2 {
		t.Fatalf("Expected 2 distinct tags, got %d", len(tags))
	}

	if tags[0].Tag != "alpha" || tags[0].Count != 1 {
		t.Errorf("Expected first tag alpha with count 1, got %s/%d", tags[0].Tag, tags[0].Count)
	}
	if tags[1].Tag != "beta" || tags[1].Count != 2 {
		t.Errorf("Expected second tag beta with count 2, got %s/%d", tags[1].Tag, tags[1].Count)
	}
}

func TestListTagsEmpty(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	tags, err := ListTags(context.Background(), testDB)
	if err != nil {
		t.Fatalf("ListTags failed on empty database: %v", err)
	}
	if len(tags) != 0 {
		t.Errorf("Expected no tags, got %v", tags)
	}
}

func TestDeleteTag(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	date := time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)

	first := createTestEntry(t, ctx, testDB, date, "One", "body", []string{"keep", "drop", "tail"})
	second := createTestEntry(t, ctx, testDB, date, "Two", "body", []string{"drop"})
	third := createTestEntry(t, ctx, testDB, date, "Three", "body", []string{"keep"})

	touched, err := DeleteTag(ctx, testDB, "drop")
	if err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}
	if touched != 2 {
		t.Errorf("Expected 2 entries touched, got %d", touched)
	}

	entry, err := GetEntry(ctx, testDB, first.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if len(entry.Tags) != 2 || entry.Tags[0] != "keep" || entry.Tags[1] != "tail" {
		t.Errorf("Expected remaining tags [keep tail] in order, got %v", entry.Tags)
	}

	entry, err = GetEntry(ctx, testDB, second.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if entry.Tags != nil {
		t.Errorf("Expected no tags left on second entry, got %v", entry.Tags)
	}

	entry, err = GetEntry(ctx, testDB, third.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if len(entry.Tags) != 1 || entry.Tags[0] != "keep" {
		t.Errorf("Expected third entry untouched, got %v", entry.Tags)
	}
}

func TestDeleteTagNotFound(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	createTestEntry(t, ctx, testDB, time.Time{}, "One", "body", []string{"present"})

	_, err := DeleteTag(ctx, testDB, "absent")
	if !errors.Is(err, ErrTagNotFound) {
		t.Errorf("Expected ErrTagNotFound, got: %v", err)
	}
}

func TestDeleteTagWithJSONEscapedCharacters(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	quoted := `he said "hi"`
	entry := createTestEntry(t, ctx, testDB, time.Time{}, "One", "body", []string{"plain", quoted})

	tags, err := ListTags(ctx, testDB)
	if err != nil {
		t.Fatalf("ListTags failed: %v", err)
	}
	if len(tags) != 2 {
		t.Fatalf("Expected 2 tags, got %v", tags)
	}

	// Every tag ListTags reports must be deletable, including ones whose
	// stored JSON form contains escape sequences.
	touched, err := DeleteTag(ctx, testDB, quoted)
	if err != nil {
		t.Fatalf("DeleteTag failed for a tag ListTags reports present: %v", err)
	}
	if touched != 1 {
		t.Errorf("Expected 1 entry touched, got %d", touched)
	}

	got, err := GetEntry(ctx, testDB, entry.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "plain" {
		t.Errorf("Expected only 'plain' to survive, got %v", got.Tags)
	}
}

func TestDeleteTagExactMatchOnly(t *testing.T) {
	testDB := setupTestDB(t)
	defer testDB.Close()

	ctx := context.Background()
	entry := createTestEntry(t, ctx, testDB, time.Time{}, "One", "body", []string{"work", "workout"})

	touched, err := DeleteTag(ctx, testDB, "work")
	if err != nil {
		t.Fatalf("DeleteTag failed: %v", err)
	}
	if touched != 1 {
		t.Errorf("Expected 1 entry touched, got %d", touched)
	}

	got, err := GetEntry(ctx, testDB, entry.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "workout" {
		t.Errorf("Expected 'workout' to survive deleting 'work', got %v", got.Tags)
	}
}
