package editor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook/pkg/journal"
)

// fakeStore is an in-memory Store recording how often each operation ran.
type fakeStore struct {
	entries map[uuid.UUID]journal.Entry

	reads   int
	creates int
	updates int

	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{entries: make(map[uuid.UUID]journal.Entry)}
}

func (s *fakeStore) ReadEntry(_ context.Context, id uuid.UUID) (journal.Entry, error) {
	s.reads++
	if s.failWith != nil {
		return journal.Entry{}, s.failWith
	}
	e, ok := s.entries[id]
	if !ok {
		return journal.Entry{}, journal.ErrEntryNotFound
	}
	return e, nil
}

func (s *fakeStore) CreateEntry(_ context.Context, e journal.Entry) (journal.Entry, error) {
	s.creates++
	if s.failWith != nil {
		return journal.Entry{}, s.failWith
	}
	e.ID = uuid.New()
	s.entries[e.ID] = e
	return e, nil
}

func (s *fakeStore) UpdateEntry(_ context.Context, e journal.Entry) (journal.Entry, error) {
	s.updates++
	if s.failWith != nil {
		return journal.Entry{}, s.failWith
	}
	if _, ok := s.entries[e.ID]; !ok {
		return journal.Entry{}, journal.ErrEntryNotFound
	}
	s.entries[e.ID] = e
	return e, nil
}

func TestNewStartsReadyWithBlankDraft(t *testing.T) {
	ed := New(newFakeStore(), zerolog.Nop())

	assert.Equal(t, StateReady, ed.State())
	assert.Equal(t, uuid.Nil, ed.ID())
	assert.Empty(t, ed.Title())
	assert.Empty(t, ed.Body())
	assert.Empty(t, ed.Tags())
	assert.Equal(t, time.Now().Format(journal.DateLayout), ed.Date().Format(journal.DateLayout))
}

func TestCreateSavePersistsDraftOnce(t *testing.T) {
	store := newFakeStore()
	ed := New(store, zerolog.Nop())

	ed.SetTitle("First entry")
	ed.SetBody("Something happened today.")
	ed.SetDate(time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, ed.AddTag("summer"))

	saved, err := ed.Save(context.Background())
	require.NoError(t, err)

	require.Len(t, store.entries, 1)
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, 0, store.updates)

	got := store.entries[saved.ID]
	assert.Equal(t, "First entry", got.Title)
	assert.Equal(t, "Something happened today.", got.Body)
	assert.Equal(t, []string{"summer"}, got.Tags)
	assert.Equal(t, "2026-07-04", got.Date.Format(journal.DateLayout))

	// The draft adopted the assigned ID.
	assert.Equal(t, saved.ID, ed.ID())
}

func TestSecondSaveUpdatesInsteadOfCreating(t *testing.T) {
	store := newFakeStore()
	ed := New(store, zerolog.Nop())

	ed.SetBody("v1")
	saved, err := ed.Save(context.Background())
	require.NoError(t, err)

	ed.SetBody("v2")
	again, err := ed.Save(context.Background())
	require.NoError(t, err)

	assert.Equal(t, saved.ID, again.ID)
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, 1, store.updates)
	require.Len(t, store.entries, 1)
	assert.Equal(t, "v2", store.entries[saved.ID].Body)
}

func TestCreateSaveRejectsBlankBody(t *testing.T) {
	for _, body := range []string{"", "   ", "\n\t"} {
		store := newFakeStore()
		ed := New(store, zerolog.Nop())

		ed.SetTitle("kept")
		ed.SetBody(body)
		require.NoError(t, ed.AddTag("kept-tag"))

		_, err := ed.Save(context.Background())
		assert.ErrorIs(t, err, ErrEmptyBody)

		// The create operation never ran and the draft is unchanged.
		assert.Equal(t, 0, store.creates)
		assert.Equal(t, "kept", ed.Title())
		assert.Equal(t, body, ed.Body())
		assert.Equal(t, []string{"kept-tag"}, ed.Tags())
	}
}

func TestUpdateSaveAllowsBlankBody(t *testing.T) {
	store := newFakeStore()
	ed := New(store, zerolog.Nop())

	ed.SetBody("original")
	_, err := ed.Save(context.Background())
	require.NoError(t, err)

	ed.SetBody("")
	_, err = ed.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.updates)
}

func TestLoadMapsStoredFields(t *testing.T) {
	store := newFakeStore()
	id := uuid.New()
	store.entries[id] = journal.Entry{
		ID:    id,
		Date:  time.Date(2026, time.January, 2, 0, 0, 0, 0, time.UTC),
		Title: "Loaded",
		Body:  "stored body",
		Tags:  []string{"a", "b"},
	}

	ed := NewForEntry(store, zerolog.Nop(), id)
	require.Equal(t, StateLoading, ed.State())

	require.NoError(t, ed.Load(context.Background()))

	assert.Equal(t, StateReady, ed.State())
	assert.Equal(t, "Loaded", ed.Title())
	assert.Equal(t, "stored body", ed.Body())
	assert.Equal(t, []string{"a", "b"}, ed.Tags())
	assert.Equal(t, "2026-01-02", ed.Date().Format(journal.DateLayout))
	assert.Equal(t, id, ed.ID())
}

func TestLoadFailureFallsBackToBlankDraft(t *testing.T) {
	store := newFakeStore()
	ed := NewForEntry(store, zerolog.Nop(), uuid.New())

	err := ed.Load(context.Background())
	require.ErrorIs(t, err, journal.ErrEntryNotFound)

	// Documented choice: a failed load leaves a Ready blank draft, with the
	// error kept for the UI to surface.
	assert.Equal(t, StateReady, ed.State())
	assert.ErrorIs(t, ed.LoadErr(), journal.ErrEntryNotFound)
	assert.Equal(t, uuid.Nil, ed.ID())
	assert.Empty(t, ed.Body())

	// A later save therefore creates rather than updates.
	ed.SetBody("fresh")
	_, err = ed.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.creates)
	assert.Equal(t, 0, store.updates)
}

func TestLoadOnReadyEditorIsNoop(t *testing.T) {
	store := newFakeStore()
	ed := New(store, zerolog.Nop())

	require.NoError(t, ed.Load(context.Background()))
	assert.Equal(t, 0, store.reads)
}

func TestSaveFailureRetainsDraft(t *testing.T) {
	store := newFakeStore()
	store.failWith = errors.New("disk full")
	ed := New(store, zerolog.Nop())

	ed.SetBody("precious words")
	_, err := ed.Save(context.Background())
	require.Error(t, err)

	assert.Equal(t, "precious words", ed.Body())
	assert.Equal(t, uuid.Nil, ed.ID())

	// Manual retry succeeds once the collaborator recovers.
	store.failWith = nil
	_, err = ed.Save(context.Background())
	require.NoError(t, err)
}

func TestGenerationGuard(t *testing.T) {
	ed := New(newFakeStore(), zerolog.Nop())

	gen := ed.Generation()
	assert.False(t, ed.Stale(gen))

	ed.Invalidate()
	assert.True(t, ed.Stale(gen))
	assert.False(t, ed.Stale(ed.Generation()))
}
