package journal

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// Store adapts the package-level entry operations to a value that can be
// handed to collaborators (such as the editor) as an injected dependency.
type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) Store {
	return Store{DB: db}
}

func (s Store) ReadEntry(ctx context.Context, id uuid.UUID) (Entry, error) {
	return GetEntry(ctx, s.DB, id)
}

func (s Store) CreateEntry(ctx context.Context, e Entry) (Entry, error) {
	return CreateEntry(ctx, s.DB, e.Date, e.Title, e.Body, e.Tags)
}

func (s Store) UpdateEntry(ctx context.Context, e Entry) (Entry, error) {
	return UpdateEntry(ctx, s.DB, e.ID, e.Date, e.Title, e.Body, e.Tags)
}
