package mcp

import (
	"context"
	"database/sql"
	"testing"
	"time"

	mcpgo "github.com/mark3labs/mcp-go/mcp"

	pkgdb "github.com/daybook-app/daybook/pkg/db"
	"github.com/daybook-app/daybook/pkg/journal"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := pkgdb.OpenDBConnection(":memory:", false, "OFF")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { testDB.Close() })

	if err := pkgdb.InitializeSchema(testDB, pkgdb.TargetSchemaVersion); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}
	return testDB
}

func callUpdateEntry(t *testing.T, db *sql.DB, args map[string]interface{}) *mcpgo.CallToolResult {
	t.Helper()

	request := mcpgo.CallToolRequest{}
	request.Params.Name = "update_entry"
	request.Params.Arguments = args

	result, err := updateEntryHandler(db)(context.Background(), request)
	if err != nil {
		t.Fatalf("update_entry handler returned a protocol error: %v", err)
	}
	return result
}

func TestUpdateEntryBlanksProvidedEmptyFields(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	entry, err := journal.CreateEntry(ctx, testDB, time.Time{}, "Title", "original body", nil)
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	// An explicit empty string clears the field; updates have no non-blank
	// requirement.
	result := callUpdateEntry(t, testDB, map[string]interface{}{
		"id":   entry.ID.String(),
		"body": "",
	})
	if result.IsError {
		t.Fatalf("Expected success, got tool error: %v", result.Content)
	}

	got, err := journal.GetEntry(ctx, testDB, entry.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Body != "" {
		t.Errorf("Expected body blanked, got %q", got.Body)
	}
	if got.Title != "Title" {
		t.Errorf("Expected title untouched, got %q", got.Title)
	}

	result = callUpdateEntry(t, testDB, map[string]interface{}{
		"id":    entry.ID.String(),
		"title": "",
	})
	if result.IsError {
		t.Fatalf("Expected success, got tool error: %v", result.Content)
	}

	got, err = journal.GetEntry(ctx, testDB, entry.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Title != "" {
		t.Errorf("Expected title blanked, got %q", got.Title)
	}
}

func TestUpdateEntryLeavesAbsentFieldsAlone(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	entry, err := journal.CreateEntry(ctx, testDB, time.Time{}, "Keep", "keep body", []string{"tag"})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}

	result := callUpdateEntry(t, testDB, map[string]interface{}{
		"id":       entry.ID.String(),
		"add_tags": "extra",
	})
	if result.IsError {
		t.Fatalf("Expected success, got tool error: %v", result.Content)
	}

	got, err := journal.GetEntry(ctx, testDB, entry.ID)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if got.Title != "Keep" || got.Body != "keep body" {
		t.Errorf("Expected title and body untouched, got %q/%q", got.Title, got.Body)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "tag" || got.Tags[1] != "extra" {
		t.Errorf("Expected tags [tag extra], got %v", got.Tags)
	}
}
