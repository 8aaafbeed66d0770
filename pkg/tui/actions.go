package tui

import (
	"context"
	"database/sql"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/daybook-app/daybook/pkg/editor"
	"github.com/daybook-app/daybook/pkg/journal"
)

// entriesLoadedMsg carries the current entry listing for the list column.
type entriesLoadedMsg struct {
	entries []journal.MatchedEntry
}

// entryLoadedMsg reports completion of an editor load. gen identifies the
// editor lifetime the result belongs to; stale results are dropped.
type entryLoadedMsg struct {
	gen uint64
	err error
}

// entrySavedMsg reports completion of an editor save.
type entrySavedMsg struct {
	gen   uint64
	entry journal.Entry
	err   error
}

// searchEntries lists entries matching the query text, or all entries when
// the query is empty.
func searchEntries(db *sql.DB, query string) tea.Cmd {
	return func() tea.Msg {
		results, err := journal.SearchEntries(context.Background(), db, query, nil)
		if err != nil {
			return err
		}
		return entriesLoadedMsg{entries: results}
	}
}

// loadEntry runs the editor's load off the event loop. The editor blocks
// edits while loading, so the draft is not touched concurrently.
func loadEntry(ed *editor.Editor, gen uint64) tea.Cmd {
	return func() tea.Msg {
		err := ed.Load(context.Background())
		return entryLoadedMsg{gen: gen, err: err}
	}
}

// saveEntry runs the editor's save off the event loop.
func saveEntry(ed *editor.Editor, gen uint64) tea.Cmd {
	return func() tea.Msg {
		entry, err := ed.Save(context.Background())
		return entrySavedMsg{gen: gen, entry: entry, err: err}
	}
}
