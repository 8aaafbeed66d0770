package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/daybook-app/daybook/pkg/editor"
	"github.com/daybook-app/daybook/pkg/journal"
)

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Daybook MCP server is alive."),
	)
	s.AddTool(pingTool, pingHandler)
}

func pingHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong_daybook"), nil
}

// splitTagList parses a comma-separated tag argument into its trimmed parts.
func splitTagList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}

// RegisterCreateEntryTool registers the create_entry tool. Creation goes
// through the editor so its validation rules (non-blank body, unique tags)
// apply to MCP clients the same way they apply everywhere else.
func RegisterCreateEntryTool(s *server.MCPServer, db *sql.DB) {
	createEntry := mcp.NewTool("create_entry",
		mcp.WithDescription("Creates a new journal entry."),
		mcp.WithString("body", mcp.Required(), mcp.Description("Free-text body of the entry. Must not be blank.")),
		mcp.WithString("title", mcp.Description("Optional short title.")),
		mcp.WithString("date", mcp.Description("Calendar date as YYYY-MM-DD. Defaults to today.")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated list of tags.")),
	)
	s.AddTool(createEntry, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		body, bodyOk := request.Params.Arguments["body"].(string)
		if !bodyOk {
			return mcp.NewToolResultError("'body' parameter is required and must be a string."), nil
		}
		title, _ := request.Params.Arguments["title"].(string)
		dateStr, _ := request.Params.Arguments["date"].(string)
		tagsStr, _ := request.Params.Arguments["tags"].(string)

		ed := editor.New(journal.NewStore(db), zerolog.Nop())
		ed.SetTitle(title)
		ed.SetBody(body)
		if dateStr != "" {
			date, err := time.Parse(journal.DateLayout, dateStr)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid date '%s', expected YYYY-MM-DD.", dateStr)), nil
			}
			ed.SetDate(date)
		}
		for _, tag := range splitTagList(tagsStr) {
			if err := ed.AddTag(tag); err != nil && !errors.Is(err, editor.ErrDuplicateTag) {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to add tag '%s': %v", tag, err)), nil
			}
		}

		entry, err := ed.Save(ctx)
		if errors.Is(err, editor.ErrEmptyBody) {
			return mcp.NewToolResultError("Entry body must not be blank."), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to create entry: %v", err)), nil
		}

		jsonResult, err := json.Marshal(entry)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize entry to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterGetEntryTool registers the get_entry tool.
func RegisterGetEntryTool(s *server.MCPServer, db *sql.DB) {
	getEntryTool := mcp.NewTool("get_entry",
		mcp.WithDescription("Retrieves a journal entry by its ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("The UUID of the entry to retrieve.")),
	)
	s.AddTool(getEntryTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		idStr, idOk := request.Params.Arguments["id"].(string)
		if !idOk || idStr == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid entry ID '%s': %v", idStr, err)), nil
		}

		entry, err := journal.GetEntry(ctx, db, id)
		if errors.Is(err, journal.ErrEntryNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Entry with ID '%s' not found.", idStr)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error retrieving entry '%s': %v", idStr, err)), nil
		}

		jsonResult, err := json.Marshal(entry)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize entry to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterListEntriesTool registers the list_entries tool.
func RegisterListEntriesTool(s *server.MCPServer, db *sql.DB) {
	listEntriesTool := mcp.NewTool("list_entries",
		mcp.WithDescription("Lists all journal entries, newest first."),
	)
	s.AddTool(listEntriesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := journal.ListEntries(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}

		if len(entries) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}

		jsonResult, err := json.Marshal(entries)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize entries to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterUpdateEntryTool registers the update_entry tool. The stored record
// is loaded into an editor, the provided fields are applied to the draft, and
// the full draft is written back.
func RegisterUpdateEntryTool(s *server.MCPServer, db *sql.DB) {
	updateEntryTool := mcp.NewTool("update_entry",
		mcp.WithDescription("Updates a journal entry's date, title, body, or tags."),
		mcp.WithString("id", mcp.Required(), mcp.Description("The UUID of the entry to update.")),
		mcp.WithString("body", mcp.Description("Replacement body text.")),
		mcp.WithString("title", mcp.Description("Replacement title.")),
		mcp.WithString("date", mcp.Description("Replacement calendar date as YYYY-MM-DD.")),
		mcp.WithString("add_tags", mcp.Description("Comma-separated tags to add.")),
		mcp.WithString("remove_tags", mcp.Description("Comma-separated tags to remove.")),
	)
	s.AddTool(updateEntryTool, updateEntryHandler(db))
}

func updateEntryHandler(db *sql.DB) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		idStr, idOk := request.Params.Arguments["id"].(string)
		if !idOk || idStr == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid entry ID '%s': %v", idStr, err)), nil
		}

		ed := editor.NewForEntry(journal.NewStore(db), zerolog.Nop(), id)
		if err := ed.Load(ctx); err != nil {
			if errors.Is(err, journal.ErrEntryNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("Entry with ID '%s' not found.", idStr)), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Error loading entry '%s': %v", idStr, err)), nil
		}

		// A provided empty string is a deliberate blanking; only an absent
		// argument leaves the stored field alone.
		if raw, ok := request.Params.Arguments["body"]; ok {
			if body, ok := raw.(string); ok {
				ed.SetBody(body)
			}
		}
		if raw, ok := request.Params.Arguments["title"]; ok {
			if title, ok := raw.(string); ok {
				ed.SetTitle(title)
			}
		}
		if dateStr, ok := request.Params.Arguments["date"].(string); ok && dateStr != "" {
			date, err := time.Parse(journal.DateLayout, dateStr)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid date '%s', expected YYYY-MM-DD.", dateStr)), nil
			}
			ed.SetDate(date)
		}
		addTags, _ := request.Params.Arguments["add_tags"].(string)
		for _, tag := range splitTagList(addTags) {
			if err := ed.AddTag(tag); err != nil && !errors.Is(err, editor.ErrDuplicateTag) {
				return mcp.NewToolResultError(fmt.Sprintf("Failed to add tag '%s': %v", tag, err)), nil
			}
		}
		removeTags, _ := request.Params.Arguments["remove_tags"].(string)
		for _, tag := range splitTagList(removeTags) {
			ed.DeleteTag(tag)
		}

		entry, err := ed.Save(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update entry: %v", err)), nil
		}

		jsonResult, err := json.Marshal(entry)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize entry to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	}
}

// RegisterDeleteEntryTool registers the delete_entry tool.
func RegisterDeleteEntryTool(s *server.MCPServer, db *sql.DB) {
	deleteEntryTool := mcp.NewTool("delete_entry",
		mcp.WithDescription("Permanently deletes a journal entry by its ID."),
		mcp.WithString("id", mcp.Required(), mcp.Description("The UUID of the entry to delete.")),
	)
	s.AddTool(deleteEntryTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		idStr, idOk := request.Params.Arguments["id"].(string)
		if !idOk || idStr == "" {
			return mcp.NewToolResultError("'id' parameter is required and must be a non-empty string."), nil
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid entry ID '%s': %v", idStr, err)), nil
		}

		err = journal.DeleteEntry(ctx, db, id)
		if errors.Is(err, journal.ErrEntryNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Entry with ID '%s' not found.", idStr)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete entry: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Entry %s deleted.", idStr)), nil
	})
}

// RegisterListTagsTool registers the list_tags tool.
func RegisterListTagsTool(s *server.MCPServer, db *sql.DB) {
	listTagsTool := mcp.NewTool("list_tags",
		mcp.WithDescription("Lists all tags in use, with the number of entries carrying each."),
	)
	s.AddTool(listTagsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tags, err := journal.ListTags(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list tags: %v", err)), nil
		}

		if len(tags) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}

		jsonResult, err := json.Marshal(tags)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize tags to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// RegisterSearchEntriesTool registers the search_entries tool.
func RegisterSearchEntriesTool(s *server.MCPServer, db *sql.DB) {
	searchEntriesTool := mcp.NewTool("search_entries",
		mcp.WithDescription("Searches entries by free text and/or tags. Tag matches are ranked by the number of matching tags."),
		mcp.WithString("query", mcp.Description("Case-insensitive substring matched against title and body.")),
		mcp.WithString("tags", mcp.Description("Comma-separated list of tags; entries carrying at least one are returned.")),
	)
	s.AddTool(searchEntriesTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, _ := request.Params.Arguments["query"].(string)
		tagsStr, _ := request.Params.Arguments["tags"].(string)

		results, err := journal.SearchEntries(ctx, db, query, splitTagList(tagsStr))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to search entries: %v", err)), nil
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("[]"), nil
		}

		jsonResult, err := json.Marshal(results)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize search results to JSON: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}
