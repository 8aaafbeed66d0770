package journal

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
)

const (
	createEntryStatement = `
	INSERT INTO entries (id, entry_date, title, body, tags)
	VALUES (?, ?, ?, ?, ?)
	`

	getEntryStatement = `
	SELECT id, entry_date, title, body, tags, created_at, updated_at
	FROM entries
	WHERE id = ?
	`

	listEntriesStatement = `
	SELECT id, entry_date, title, body, tags, created_at, updated_at
	FROM entries
	ORDER BY entry_date DESC, updated_at DESC
	`

	updateEntryStatement = `
	UPDATE entries
	SET entry_date = ?, title = ?, body = ?, tags = ?, updated_at = unixepoch()
	WHERE id = ?
	`

	deleteEntryStatement = `
	DELETE FROM entries
	WHERE id = ?
	`
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanEntry reads one entries row, decoding the stored ISO date and JSON tag list.
func scanEntry(row rowScanner) (Entry, error) {
	var entry Entry
	var dateText, tagsText string

	err := row.Scan(
		&entry.ID,
		&dateText,
		&entry.Title,
		&entry.Body,
		&tagsText,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return Entry{}, err
	}

	entry.Date, err = time.Parse(DateLayout, dateText)
	if err != nil {
		return Entry{}, err
	}

	entry.Tags, err = decodeTags(tagsText)
	if err != nil {
		return Entry{}, err
	}

	return entry, nil
}

// CreateEntry inserts a new entry and returns the stored record.
// A zero date defaults to the current date.
func CreateEntry(ctx context.Context, db *sql.DB, date time.Time, title, body string, tags []string) (Entry, error) {
	entryID := uuid.New()

	if date.IsZero() {
		date = time.Now()
	}

	tagsText, err := encodeTags(tags)
	if err != nil {
		return Entry{}, err
	}

	_, err = db.ExecContext(
		ctx,
		createEntryStatement,
		entryID,
		date.Format(DateLayout),
		title,
		body,
		tagsText,
	)
	if err != nil {
		return Entry{}, err
	}

	return GetEntry(ctx, db, entryID)
}

// GetEntry retrieves an entry using a database connection.
func GetEntry(ctx context.Context, db *sql.DB, id uuid.UUID) (Entry, error) {
	entry, err := scanEntry(db.QueryRowContext(ctx, getEntryStatement, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrEntryNotFound
		}
		return Entry{}, err
	}

	return entry, nil
}

// TODO: Add pagination support
func ListEntries(ctx context.Context, db *sql.DB) ([]Entry, error) {
	rows, err := db.QueryContext(ctx, listEntriesStatement)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}

		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// UpdateEntry overwrites the identified entry with the full given state.
// Unlike creation, an empty body is accepted here.
func UpdateEntry(ctx context.Context, db *sql.DB, id uuid.UUID, date time.Time, title, body string, tags []string) (Entry, error) {
	if date.IsZero() {
		date = time.Now()
	}

	tagsText, err := encodeTags(tags)
	if err != nil {
		return Entry{}, err
	}

	res, err := db.ExecContext(
		ctx,
		updateEntryStatement,
		date.Format(DateLayout),
		title,
		body,
		tagsText,
		id,
	)
	if err != nil {
		return Entry{}, err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return Entry{}, err
	}

	if rowsAffected == 0 {
		return Entry{}, ErrEntryNotFound
	}

	return GetEntry(ctx, db, id)
}

func DeleteEntry(ctx context.Context, db *sql.DB, id uuid.UUID) error {
	res, err := db.ExecContext(ctx, deleteEntryStatement, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}
