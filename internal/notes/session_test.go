package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukerupert/sharenote/internal/model"
)

// fakeStore is an in-memory Store that counts calls and can be told to fail.
type fakeStore struct {
	notes  []model.Note
	nextID int64
	calls  int
	err    error
}

func (f *fakeStore) List(ctx context.Context) ([]model.Note, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]model.Note(nil), f.notes...), nil
}

func (f *fakeStore) Create(ctx context.Context, title, content string) (model.Note, error) {
	f.calls++
	if f.err != nil {
		return model.Note{}, f.err
	}
	f.nextID++
	n := model.Note{ID: f.nextID, Title: title, Content: content, ShareID: fmt.Sprintf("share-%d", f.nextID)}
	f.notes = append(f.notes, n)
	return n, nil
}

func (f *fakeStore) Update(ctx context.Context, id int64, title, content string) (model.Note, error) {
	f.calls++
	if f.err != nil {
		return model.Note{}, f.err
	}
	for i, n := range f.notes {
		if n.ID == id {
			f.notes[i].Title, f.notes[i].Content = title, content
			return f.notes[i], nil
		}
	}
	return model.Note{}, fmt.Errorf("update note: %w", ErrNotFound)
}

func (f *fakeStore) Delete(ctx context.Context, id int64) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	for i, n := range f.notes {
		if n.ID == id {
			f.notes = append(f.notes[:i], f.notes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("delete note: %w", ErrNotFound)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(t *testing.T, seed ...string) (*Session, *fakeStore) {
	t.Helper()
	fs := &fakeStore{}
	for _, title := range seed {
		fs.Create(context.Background(), title, "")
	}
	s := NewSession(fs, quietLogger())
	require.NoError(t, s.Load(context.Background()))
	fs.calls = 0
	return s, fs
}

func TestSessionCreate(t *testing.T) {
	s, fs := newTestSession(t)
	ctx := context.Background()

	s.SetTitle("A")
	s.SetContent("B")
	n, err := s.Save(ctx)
	require.NoError(t, err)

	assert.Equal(t, "A", n.Title)
	assert.NotZero(t, n.ID)
	assert.NotEmpty(t, n.ShareID)

	st := s.State()
	require.Len(t, st.Notes, 1)
	assert.Equal(t, n, st.Notes[0])
	assert.Equal(t, Draft{}, st.Draft)
	assert.Equal(t, 1, fs.calls)
}

func TestSessionEmptySaveNoStoreCall(t *testing.T) {
	s, fs := newTestSession(t, "existing")

	s.SetTitle("   ")
	_, err := s.Save(context.Background())

	assert.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, fs.calls)
	assert.Len(t, s.State().Notes, 1)
	assert.Contains(t, s.Status(), "required")
}

func TestSessionEdit(t *testing.T) {
	s, _ := newTestSession(t, "one", "two")
	ctx := context.Background()
	before := s.State().Notes[1]

	require.NoError(t, s.StartEdit(before.ID))
	assert.Equal(t, Editing, s.State().Draft.Mode())
	assert.Equal(t, "two", s.State().Draft.Title)

	s.SetContent("changed")
	n, err := s.Save(ctx)
	require.NoError(t, err)

	assert.Equal(t, before.ID, n.ID)
	assert.Equal(t, before.ShareID, n.ShareID)
	assert.Equal(t, "changed", n.Content)

	st := s.State()
	assert.Equal(t, Creating, st.Draft.Mode())
	assert.Equal(t, n, st.Notes[1])
	assert.Equal(t, "one", st.Notes[0].Title)
}

func TestSessionStartEditUnknown(t *testing.T) {
	s, _ := newTestSession(t, "one")

	err := s.StartEdit(99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, Creating, s.State().Draft.Mode())
}

func TestSessionUpdateNotFoundLeavesList(t *testing.T) {
	s, fs := newTestSession(t, "one", "two")
	ctx := context.Background()

	require.NoError(t, s.StartEdit(1))
	// Another client deleted the note in the meantime.
	fs.notes = fs.notes[1:]

	s.SetTitle("edited")
	_, err := s.Save(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	st := s.State()
	require.Len(t, st.Notes, 2)
	assert.Equal(t, "one", st.Notes[0].Title)
	assert.Equal(t, int64(1), st.Draft.EditingID, "draft is kept so the user can retry or cancel")
}

func TestSessionDelete(t *testing.T) {
	s, _ := newTestSession(t, "one", "two", "three")

	require.NoError(t, s.Delete(context.Background(), 2))

	st := s.State()
	require.Len(t, st.Notes, 2)
	assert.Equal(t, int64(1), st.Notes[0].ID)
	assert.Equal(t, int64(3), st.Notes[1].ID)
	assert.Equal(t, "deleted note 2", s.Status())
}

func TestSessionDeleteFailureKeepsList(t *testing.T) {
	s, fs := newTestSession(t, "one", "two")
	netErr := &NetworkError{Op: "delete note", Err: errors.New("connection refused")}
	fs.err = netErr

	err := s.Delete(context.Background(), 1)

	var ne *NetworkError
	assert.ErrorAs(t, err, &ne)
	assert.Len(t, s.State().Notes, 2)
	assert.Contains(t, s.Status(), "unreachable")
}

func TestSessionCreateFailureKeepsDraft(t *testing.T) {
	s, fs := newTestSession(t)
	fs.err = &StoreError{Op: "create note", Status: 500, Message: "failed to create note"}

	s.SetTitle("keep me")
	_, err := s.Save(context.Background())

	var se *StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 500, se.Status)
	assert.Empty(t, s.State().Notes)
	assert.Equal(t, "keep me", s.State().Draft.Title)
}

func TestSessionLoadFailure(t *testing.T) {
	fs := &fakeStore{err: &NetworkError{Op: "list notes", Err: errors.New("timeout")}}
	s := NewSession(fs, quietLogger())

	err := s.Load(context.Background())
	var ne *NetworkError
	assert.ErrorAs(t, err, &ne)
	assert.Empty(t, s.State().Notes)
}

func TestSessionRefresh(t *testing.T) {
	s, fs := newTestSession(t, "one")
	fs.Create(context.Background(), "from elsewhere", "")

	require.NoError(t, s.Refresh(context.Background(), model.NewEvent(model.ActionCreated, 2)))
	assert.Len(t, s.State().Notes, 2)
}

func TestSessionCancelEdit(t *testing.T) {
	s, _ := newTestSession(t, "one")

	require.NoError(t, s.StartEdit(1))
	s.CancelEdit()
	assert.Equal(t, Draft{}, s.State().Draft)
}
