// Package editor holds the in-memory draft state for a journal entry being
// created or edited, and commits it to a storage collaborator on save.
package editor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/daybook-app/daybook/pkg/journal"
)

var (
	// ErrEmptyBody is reported when a first save is attempted with a blank body.
	ErrEmptyBody = errors.New("entry body must not be empty")
)

// Store is the storage collaborator the editor commits drafts to.
type Store interface {
	ReadEntry(ctx context.Context, id uuid.UUID) (journal.Entry, error)
	CreateEntry(ctx context.Context, e journal.Entry) (journal.Entry, error)
	UpdateEntry(ctx context.Context, e journal.Entry) (journal.Entry, error)
}

// State is the editor lifecycle state.
type State int

const (
	// StateLoading means an existing entry is being fetched into the draft.
	StateLoading State = iota
	// StateReady means the draft is editable.
	StateReady
)

// Editor is the draft state machine for a single journal entry.
//
// The draft is exclusively owned by its caller; methods are not safe for
// concurrent use. UIs that run Load or Save off the event loop must keep
// edits blocked while exactly one such call is in flight, and use the
// generation counter to drop results addressed to a torn-down editor.
type Editor struct {
	store Store
	log   zerolog.Logger

	id      uuid.UUID // uuid.Nil until the first successful create
	date    time.Time
	title   string
	body    string
	tags    TagSet
	state   State
	loadErr error

	gen uint64
}

// New returns an editor holding a blank draft dated today, immediately Ready.
func New(store Store, log zerolog.Logger) *Editor {
	return &Editor{
		store: store,
		log:   log,
		date:  time.Now(),
		state: StateReady,
	}
}

// NewForEntry returns an editor that must load the identified entry before it
// is Ready.
func NewForEntry(store Store, log zerolog.Logger, id uuid.UUID) *Editor {
	return &Editor{
		store: store,
		log:   log,
		id:    id,
		date:  time.Now(),
		state: StateLoading,
	}
}

// Load fetches the existing entry into the draft and transitions to Ready.
// On any fetch failure the error is logged, the editor still becomes Ready
// with a blank draft, and the error stays available via LoadErr. Calling Load
// on an already-Ready editor is a no-op.
func (e *Editor) Load(ctx context.Context) error {
	if e.state != StateLoading {
		return nil
	}

	entry, err := e.store.ReadEntry(ctx, e.id)
	if err != nil {
		e.log.Error().Err(err).Stringer("entry_id", e.id).Msg("failed to load entry")
		e.id = uuid.Nil
		e.loadErr = err
		e.state = StateReady
		return err
	}

	e.date = entry.Date
	e.title = entry.Title
	e.body = entry.Body
	e.tags = NewTagSet(entry.Tags...)
	e.state = StateReady
	return nil
}

// Save commits the draft. With an ID present the identified record is updated
// in place with the full draft. Without one the body is validated non-blank,
// the record is created, and the assigned ID is adopted so later saves update
// it. Collaborator failures are logged and returned; the draft is retained
// either way.
func (e *Editor) Save(ctx context.Context) (journal.Entry, error) {
	draft := e.draft()

	if e.id != uuid.Nil {
		saved, err := e.store.UpdateEntry(ctx, draft)
		if err != nil {
			e.log.Error().Err(err).Stringer("entry_id", e.id).Msg("failed to update entry")
			return journal.Entry{}, err
		}
		return saved, nil
	}

	if strings.TrimSpace(e.body) == "" {
		return journal.Entry{}, ErrEmptyBody
	}

	saved, err := e.store.CreateEntry(ctx, draft)
	if err != nil {
		e.log.Error().Err(err).Msg("failed to create entry")
		return journal.Entry{}, err
	}

	e.id = saved.ID
	return saved, nil
}

// draft snapshots the current fields as a journal entry.
func (e *Editor) draft() journal.Entry {
	return journal.Entry{
		ID:    e.id,
		Date:  e.date,
		Title: e.title,
		Body:  e.body,
		Tags:  e.tags.Values(),
	}
}

// Draft returns a snapshot of the current draft state.
func (e *Editor) Draft() journal.Entry {
	return e.draft()
}

// State returns the current lifecycle state.
func (e *Editor) State() State {
	return e.state
}

// LoadErr returns the error from a failed Load, if any.
func (e *Editor) LoadErr() error {
	return e.loadErr
}

// ID returns the persisted entry ID, or uuid.Nil for a not-yet-created draft.
func (e *Editor) ID() uuid.UUID {
	return e.id
}

func (e *Editor) Date() time.Time       { return e.date }
func (e *Editor) Title() string         { return e.title }
func (e *Editor) Body() string          { return e.body }
func (e *Editor) Tags() []string        { return e.tags.Values() }
func (e *Editor) SetDate(d time.Time)   { e.date = d }
func (e *Editor) SetTitle(title string) { e.title = title }
func (e *Editor) SetBody(body string)   { e.body = body }

// AddTag adds a tag to the draft, with the TagSet's trimming and duplicate
// rules.
func (e *Editor) AddTag(value string) error {
	return e.tags.Add(value)
}

// DeleteTag removes a tag from the draft.
func (e *Editor) DeleteTag(value string) {
	e.tags.Delete(value)
}

// Generation identifies the editor's current lifetime for in-flight work.
// An asynchronous Load or Save should capture it before starting and check
// Stale with it when delivering the result.
func (e *Editor) Generation() uint64 {
	return e.gen
}

// Invalidate marks outstanding asynchronous results as stale. Call it when
// the owning view is torn down or the draft is reset.
func (e *Editor) Invalidate() {
	e.gen++
}

// Stale reports whether a result captured at generation gen should be dropped.
func (e *Editor) Stale(gen uint64) bool {
	return gen != e.gen
}
