// Package tui contains the terminal screens for browsing, searching, and
// editing journal entries.
package tui

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	textinput "github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/daybook-app/daybook/pkg/editor"
	"github.com/daybook-app/daybook/pkg/journal"
)

type mode int

const (
	modeList mode = iota
	modeEditor
)

// Editor focus slots, cycled with tab.
const (
	focusTitle = iota
	focusDate
	focusBody
	focusCount
)

type model struct {
	db  *sql.DB
	log zerolog.Logger

	mode   mode
	width  int
	height int
	err    error

	quitting bool

	// List column state
	entries     []journal.MatchedEntry
	cursor      int
	searchInput textinput.Model
	searching   bool

	// Editor state. ed is nil while no editor screen is open.
	ed         *editor.Editor
	titleInput textinput.Model
	dateInput  textinput.Model
	bodyInput  textarea.Model
	focusIdx   int
	loading    bool
	saving     bool
	notice     string

	// Tag overlay state
	tagOverlay bool
	tagInput   textinput.Model
	tagCursor  int
}

// Initialize TUI model
func initModel(db *sql.DB, log zerolog.Logger) model {
	search := textinput.New()
	search.Placeholder = "search title and body"
	search.Prompt = "/ "
	search.CharLimit = 256

	return model{
		db:          db,
		log:         log,
		mode:        modeList,
		entries:     []journal.MatchedEntry{},
		searchInput: search,
	}
}

func (m model) Init() tea.Cmd {
	return searchEntries(m.db, "")
}

// openEditor prepares the editor screen. With an entry ID the editor starts
// in its loading state and the fetch runs as a command; otherwise the draft
// is blank and immediately editable.
func (m *model) openEditor(existing *journal.MatchedEntry) tea.Cmd {
	title := textinput.New()
	title.Placeholder = "Title (optional)"
	title.CharLimit = 256

	date := textinput.New()
	date.Placeholder = "YYYY-MM-DD"
	date.CharLimit = 10

	body := textarea.New()
	body.Placeholder = "What happened?"
	m.sizeEditorInputs(&body)

	m.titleInput = title
	m.dateInput = date
	m.bodyInput = body
	m.focusIdx = focusTitle
	m.titleInput.Focus()
	m.notice = ""
	m.tagOverlay = false
	m.mode = modeEditor

	store := journal.NewStore(m.db)
	if existing == nil {
		m.ed = editor.New(store, m.log)
		m.loading = false
		m.syncEditorInputs()
		return nil
	}

	m.ed = editor.NewForEntry(store, m.log, existing.ID)
	m.loading = true
	return loadEntry(m.ed, m.ed.Generation())
}

// closeEditor tears the editor screen down. Outstanding load/save results
// are invalidated so they cannot touch a future draft.
func (m *model) closeEditor() {
	if m.ed != nil {
		m.ed.Invalidate()
		m.ed = nil
	}
	m.loading = false
	m.saving = false
	m.tagOverlay = false
	m.notice = ""
	m.mode = modeList
}

// syncEditorInputs copies the draft fields into the input widgets.
func (m *model) syncEditorInputs() {
	m.titleInput.SetValue(m.ed.Title())
	m.dateInput.SetValue(m.ed.Date().Format(journal.DateLayout))
	m.bodyInput.SetValue(m.ed.Body())
}

// applyInputsToDraft pushes the input widget values into the draft before a
// save. Reports false when the date field doesn't parse.
func (m *model) applyInputsToDraft() bool {
	date, err := time.Parse(journal.DateLayout, strings.TrimSpace(m.dateInput.Value()))
	if err != nil {
		m.notice = "Invalid date, expected YYYY-MM-DD."
		return false
	}
	m.ed.SetDate(date)
	m.ed.SetTitle(m.titleInput.Value())
	m.ed.SetBody(m.bodyInput.Value())
	return true
}

func (m *model) setEditorFocus(idx int) {
	m.focusIdx = idx
	m.titleInput.Blur()
	m.dateInput.Blur()
	m.bodyInput.Blur()
	switch idx {
	case focusTitle:
		m.titleInput.Focus()
	case focusDate:
		m.dateInput.Focus()
	case focusBody:
		m.bodyInput.Focus()
	}
}

func (m *model) sizeEditorInputs(body *textarea.Model) {
	w := m.width - 4
	if w < 20 {
		w = 60
	}
	h := m.height - 12
	if h < 3 {
		h = 8
	}
	body.SetWidth(w)
	body.SetHeight(h)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.mode == modeEditor {
			m.sizeEditorInputs(&m.bodyInput)
		}
		return m, nil

	case error:
		m.err = msg
		return m, nil

	case entriesLoadedMsg:
		m.entries = msg.entries
		if m.cursor >= len(m.entries) {
			m.cursor = 0
		}
		return m, nil

	case entryLoadedMsg:
		// A result addressed to a torn-down editor is dropped.
		if m.ed == nil || m.ed.Stale(msg.gen) {
			return m, nil
		}
		m.loading = false
		m.syncEditorInputs()
		if msg.err != nil {
			m.notice = "Entry could not be loaded; starting a blank draft."
		}
		return m, nil

	case entrySavedMsg:
		if m.ed == nil || m.ed.Stale(msg.gen) {
			return m, nil
		}
		m.saving = false
		if msg.err != nil {
			if errors.Is(msg.err, editor.ErrEmptyBody) {
				m.notice = "Write something before saving."
			} else {
				m.notice = "Save failed; your draft is intact, try again."
			}
			return m, nil
		}
		// Saved: leave the editor and refresh the listing.
		m.closeEditor()
		return m, searchEntries(m.db, m.searchInput.Value())

	case tea.KeyMsg:
		if m.mode == modeEditor {
			return m.updateEditorKey(msg)
		}
		return m.updateListKey(msg)
	}

	return m, nil
}

func (m model) updateListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.Type {
		case tea.KeyEscape:
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			return m, searchEntries(m.db, "")
		case tea.KeyEnter:
			m.searching = false
			m.searchInput.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.searchInput, cmd = m.searchInput.Update(msg)
			// Incremental search on every keystroke.
			return m, tea.Batch(cmd, searchEntries(m.db, m.searchInput.Value()))
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
		return m, nil
	case "n":
		cmd := m.openEditor(nil)
		return m, cmd
	case "r":
		return m, searchEntries(m.db, m.searchInput.Value())
	case "enter":
		if len(m.entries) == 0 {
			return m, nil
		}
		selected := m.entries[m.cursor]
		cmd := m.openEditor(&selected)
		return m, cmd
	}

	return m, nil
}

func (m model) updateEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.loading {
		// Only leaving is allowed while the fetch is in flight; Invalidate
		// in closeEditor makes the late result a no-op.
		if msg.Type == tea.KeyEscape {
			m.closeEditor()
		}
		return m, nil
	}

	if m.tagOverlay {
		return m.updateTagOverlayKey(msg)
	}

	switch msg.String() {
	case "esc":
		m.closeEditor()
		return m, searchEntries(m.db, m.searchInput.Value())
	case "ctrl+s":
		if m.saving {
			return m, nil
		}
		if !m.applyInputsToDraft() {
			return m, nil
		}
		m.notice = ""
		m.saving = true
		return m, saveEntry(m.ed, m.ed.Generation())
	case "ctrl+t":
		// The save command's goroutine is reading the draft; no edits until
		// it reports back.
		if m.saving {
			return m, nil
		}
		m.tagOverlay = true
		m.tagCursor = 0
		m.tagInput = textinput.New()
		m.tagInput.Placeholder = "new tag"
		m.tagInput.CharLimit = 64
		m.tagInput.Focus()
		m.notice = ""
		return m, nil
	case "tab":
		m.setEditorFocus((m.focusIdx + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.setEditorFocus((m.focusIdx + focusCount - 1) % focusCount)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focusIdx {
	case focusTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case focusDate:
		m.dateInput, cmd = m.dateInput.Update(msg)
	case focusBody:
		m.bodyInput, cmd = m.bodyInput.Update(msg)
	}
	return m, cmd
}

func (m model) updateTagOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+t":
		m.tagOverlay = false
		m.notice = ""
		return m, nil
	case "enter":
		if err := m.ed.AddTag(m.tagInput.Value()); err != nil {
			if errors.Is(err, editor.ErrDuplicateTag) {
				m.notice = "Tag already added."
			}
			return m, nil
		}
		m.notice = ""
		m.tagInput.SetValue("")
		return m, nil
	case "up":
		if m.tagCursor > 0 {
			m.tagCursor--
		}
		return m, nil
	case "down":
		if m.tagCursor < len(m.ed.Tags())-1 {
			m.tagCursor++
		}
		return m, nil
	case "ctrl+d":
		tags := m.ed.Tags()
		if m.tagCursor < len(tags) {
			m.ed.DeleteTag(tags[m.tagCursor])
			if m.tagCursor > 0 {
				m.tagCursor--
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.tagInput, cmd = m.tagInput.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("daybook"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeEditor:
		b.WriteString(m.editorView())
	default:
		b.WriteString(m.listView())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(fmt.Sprintf("error: %v", m.err)))
	}

	return b.String()
}

func (m model) listView() string {
	var b strings.Builder

	if m.searching || m.searchInput.Value() != "" {
		b.WriteString(m.searchInput.View())
	} else {
		b.WriteString(footerStyle.Render("press / to search"))
	}
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(textStyle.Render("No entries yet. Press n to write one."))
		b.WriteString("\n")
	}

	for i, e := range m.entries {
		line := fmt.Sprintf("%s  %s", e.Date.Format(journal.DateLayout), entryLabel(e.Entry))
		if len(e.Tags) > 0 {
			line += "  " + tagStyle.Render("["+strings.Join(e.Tags, ", ")+"]")
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(textStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("n new · enter edit · / search · q quit"))
	return b.String()
}

// entryLabel is the list line text for an entry: the title when present,
// otherwise the start of the body.
func entryLabel(e journal.Entry) string {
	if e.Title != "" {
		return e.Title
	}
	body := strings.TrimSpace(e.Body)
	if idx := strings.IndexByte(body, '\n'); idx >= 0 {
		body = body[:idx]
	}
	if runes := []rune(body); len(runes) > 48 {
		body = string(runes[:48]) + "…"
	}
	return body
}

func (m model) editorView() string {
	if m.loading {
		return textStyle.Render("Loading entry...") + "\n\n" +
			footerStyle.Render("esc back")
	}

	var b strings.Builder

	b.WriteString(labelStyle.Render("Title"))
	b.WriteString("\n")
	b.WriteString(m.titleInput.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Date"))
	b.WriteString("\n")
	b.WriteString(m.dateInput.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Body"))
	b.WriteString("\n")
	b.WriteString(m.bodyInput.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Tags: "))
	if tags := m.ed.Tags(); len(tags) > 0 {
		b.WriteString(tagStyle.Render(strings.Join(tags, ", ")))
	} else {
		b.WriteString(footerStyle.Render("none"))
	}
	b.WriteString("\n")

	if m.tagOverlay {
		b.WriteString("\n")
		b.WriteString(m.tagOverlayView())
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.saving {
		b.WriteString(footerStyle.Render("saving..."))
	} else if m.tagOverlay {
		b.WriteString(footerStyle.Render("enter add · ctrl+d delete · esc close"))
	} else {
		b.WriteString(footerStyle.Render("tab next field · ctrl+s save · ctrl+t tags · esc back"))
	}
	return b.String()
}

func (m model) tagOverlayView() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Edit tags"))
	b.WriteString("\n")
	b.WriteString(m.tagInput.View())
	b.WriteString("\n")

	for i, tag := range m.ed.Tags() {
		if i == m.tagCursor {
			b.WriteString(selectedStyle.Render("> " + tag))
		} else {
			b.WriteString(textStyle.Render("  " + tag))
		}
		b.WriteString("\n")
	}

	return overlayStyle.Render(strings.TrimRight(b.String(), "\n"))
}

// ShowTUI runs the interactive terminal UI against the given database.
func ShowTUI(db *sql.DB, log zerolog.Logger) error {
	p := tea.NewProgram(initModel(db, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
