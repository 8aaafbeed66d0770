package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrTagNotFound = errors.New("tag not found")
)

const (
	listTagsStatement = `
	SELECT j.value, COUNT(*)
	FROM entries e, json_each(e.tags) j
	GROUP BY j.value
	ORDER BY j.value ASC
	`

	// Membership is tested against the decoded JSON values, not the raw text,
	// so tags containing characters JSON escapes still match.
	entriesWithTagStatement = `
	SELECT id, tags
	FROM entries
	WHERE EXISTS (
		SELECT 1 FROM json_each(entries.tags) WHERE json_each.value = ?
	)
	`

	setEntryTagsStatement = `
	UPDATE entries
	SET tags = ?, updated_at = unixepoch()
	WHERE id = ?
	`
)

// ListTags retrieves all distinct tags across entries with their usage counts.
func ListTags(ctx context.Context, db *sql.DB) ([]Tag, error) {
	rows, err := db.QueryContext(ctx, listTagsStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var t Tag
		if err := rows.Scan(&t.Tag, &t.Count); err != nil {
			return nil, fmt.Errorf("failed to scan tag row: %w", err)
		}
		tags = append(tags, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tag rows: %w", err)
	}

	return tags, nil
}

// DeleteTag removes the tag from every entry carrying it and returns the
// number of entries touched. Returns ErrTagNotFound when no entry carries it.
func DeleteTag(ctx context.Context, db *sql.DB, tag string) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, entriesWithTagStatement, tag)
	if err != nil {
		return 0, fmt.Errorf("failed to query entries for tag '%s': %w", tag, err)
	}

	type pendingUpdate struct {
		id   uuid.UUID
		tags []string
	}

	var updates []pendingUpdate
	for rows.Next() {
		var id uuid.UUID
		var tagsText string
		if err := rows.Scan(&id, &tagsText); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan entry row: %w", err)
		}

		stored, err := decodeTags(tagsText)
		if err != nil {
			rows.Close()
			return 0, err
		}

		kept := stored[:0]
		for _, t := range stored {
			if t != tag {
				kept = append(kept, t)
			}
		}
		updates = append(updates, pendingUpdate{id: id, tags: kept})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, fmt.Errorf("error iterating entry rows: %w", err)
	}
	rows.Close()

	if len(updates) == 0 {
		return 0, ErrTagNotFound
	}

	for _, u := range updates {
		tagsText, err := encodeTags(u.tags)
		if err != nil {
			return 0, err
		}
		if _, err := tx.ExecContext(ctx, setEntryTagsStatement, tagsText, u.id); err != nil {
			return 0, fmt.Errorf("failed to update tags for entry %s: %w", u.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return int64(len(updates)), nil
}
