package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	pkgdb "github.com/daybook-app/daybook/pkg/db"
	"github.com/daybook-app/daybook/pkg/journal"
	"github.com/daybook-app/daybook/pkg/utils"
)

// openDB resolves the database path, opens the connection, and makes sure the
// schema is current.
func openDB() (*sql.DB, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	dbConn, err := pkgdb.OpenDBConnection(resolvedPath, walMode, syncMode)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, err
	}

	return dbConn, nil
}

// newLogger builds the CLI logger writing human-readable lines to stderr.
func newLogger() zerolog.Logger {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// formatTimestamp converts a Unix timestamp (float64, seconds since epoch)
// to a human-readable string in RFC3339 format.
func formatTimestamp(timestamp float64) string {
	timeObj := time.Unix(int64(timestamp), 0)
	return timeObj.Format(time.RFC3339)
}

// splitTagsFlag parses a comma-separated --tags value into trimmed parts.
func splitTagsFlag(raw string) []string {
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

func printEntry(entry journal.Entry) {
	fmt.Printf("ID:      %s\n", entry.ID)
	fmt.Printf("Date:    %s\n", entry.Date.Format(journal.DateLayout))
	if entry.Title != "" {
		fmt.Printf("Title:   %s\n", entry.Title)
	}
	if len(entry.Tags) > 0 {
		fmt.Printf("Tags:    %s\n", strings.Join(entry.Tags, ", "))
	}
	fmt.Printf("Created: %s\n", formatTimestamp(entry.CreatedAt))
	fmt.Printf("Updated: %s\n", formatTimestamp(entry.UpdatedAt))
	fmt.Println()
	fmt.Println(entry.Body)
}
