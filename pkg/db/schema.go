package db

const (
	// SchemaV1 defines the SQL statements for version 1 of the database schema.
	// This schema pertains to the 'journaldb' component.
	//
	// Entries carry their calendar date as an ISO-8601 string and their tags
	// as a JSON-encoded array of strings, preserving insertion order.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS daybook_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS entries (
    id UUID PRIMARY KEY,
    entry_date TEXT NOT NULL,
    title VARCHAR(256) NOT NULL DEFAULT '',
    body TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT '[]',
    created_at REAL DEFAULT (unixepoch()),
    updated_at REAL DEFAULT (unixepoch())
);

CREATE INDEX IF NOT EXISTS idx_entries_entry_date ON entries (entry_date);
`
)
