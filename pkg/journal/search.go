package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// MatchedEntry holds an Entry and the count of matching tags from a search query.
type MatchedEntry struct {
	Entry      // Embed the existing Entry type
	MatchCount int
}

// SearchEntries searches entries by free text and/or tags.
//
// A non-empty query matches case-insensitive substrings of the title or body.
// When queryTags are given, only entries carrying at least one of them are
// returned, ranked by the number of matching tags in descending order with
// updated_at as a tiebreaker. With no tags the result is ordered by recency.
// An empty query and empty tag list returns all entries.
func SearchEntries(ctx context.Context, db *sql.DB, query string, queryTags []string) ([]MatchedEntry, error) {
	var (
		conditions []string
		args       []interface{}
	)

	selectClause := `
		SELECT
			e.id, e.entry_date, e.title, e.body, e.tags, e.created_at, e.updated_at,
			0 as match_count
		FROM entries e`
	orderClause := `
		ORDER BY e.entry_date DESC, e.updated_at DESC`

	if len(queryTags) > 0 {
		// Tags live in a JSON array column; json_each unpacks them so matches
		// can be counted and ranked, the same shape a join table query has.
		placeholders := strings.Repeat("?,", len(queryTags)-1) + "?"
		selectClause = `
		SELECT
			e.id, e.entry_date, e.title, e.body, e.tags, e.created_at, e.updated_at,
			COUNT(jt.value) as match_count
		FROM entries e, json_each(e.tags) jt`
		conditions = append(conditions, fmt.Sprintf("jt.value IN (%s)", placeholders))
		for _, tag := range queryTags {
			args = append(args, tag)
		}
		orderClause = `
		GROUP BY e.id, e.entry_date, e.title, e.body, e.tags, e.created_at, e.updated_at
		HAVING COUNT(jt.value) > 0
		ORDER BY match_count DESC, e.updated_at DESC`
	}

	if query != "" {
		conditions = append(conditions, "(e.title LIKE ? COLLATE NOCASE OR e.body LIKE ? COLLATE NOCASE)")
		needle := "%" + query + "%"
		args = append(args, needle, needle)
	}

	sqlQuery := selectClause
	if len(conditions) > 0 {
		sqlQuery += "\n\t\tWHERE " + strings.Join(conditions, " AND ")
	}
	sqlQuery += orderClause

	rows, err := db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var results []MatchedEntry
	for rows.Next() {
		var me MatchedEntry
		var dateText, tagsText string
		err := rows.Scan(
			&me.Entry.ID,
			&dateText,
			&me.Entry.Title,
			&me.Entry.Body,
			&tagsText,
			&me.Entry.CreatedAt,
			&me.Entry.UpdatedAt,
			&me.MatchCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan search result row: %w", err)
		}
		me.Entry.Date, err = time.Parse(DateLayout, dateText)
		if err != nil {
			return nil, err
		}
		me.Entry.Tags, err = decodeTags(tagsText)
		if err != nil {
			return nil, err
		}
		results = append(results, me)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over search results: %w", err)
	}

	return results, nil
}
