package notes

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dukerupert/sharenote/internal/model"
)

// Session holds one user's State and applies actions against a Store.
// Actions run one at a time; a second call waits for the first to finish.
type Session struct {
	mu     sync.Mutex
	store  Store
	state  State
	status string
	logger *slog.Logger
}

func NewSession(store Store, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{store: store, logger: logger}
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns the outcome of the last action, suitable for display.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Load fetches the full collection from the store.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.store.List(ctx)
	if err != nil {
		return s.fail("load", err)
	}
	s.state = Loaded(s.state, notes)
	s.status = fmt.Sprintf("%d notes", len(s.state.Notes))
	return nil
}

// Refresh reloads the list after a change made elsewhere.
func (s *Session) Refresh(ctx context.Context, ev model.Event) error {
	s.logger.Debug("remote change", "type", ev.Type, "note_id", ev.NoteID)
	return s.Load(ctx)
}

// StartEdit puts the session in Editing mode for a note in the local list.
func (s *Session) StartEdit(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.state.Find(id)
	if !ok {
		return s.fail("edit", fmt.Errorf("note %d: %w", id, ErrNotFound))
	}
	s.state = StartEdit(s.state, n)
	s.status = fmt.Sprintf("editing note %d", id)
	return nil
}

// CancelEdit abandons the draft.
func (s *Session) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = CancelEdit(s.state)
	s.status = ""
}

func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SetTitle(s.state, title)
}

func (s *Session) SetContent(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SetContent(s.state, content)
}

// Save submits the draft: create in Creating mode, update in Editing mode.
// An empty draft returns ErrValidation without contacting the store.
func (s *Session) Save(ctx context.Context) (model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := s.state.Draft
	if err := ValidateDraft(d); err != nil {
		return model.Note{}, s.fail("save", fmt.Errorf("title or content is required: %w", err))
	}

	if d.Mode() == Editing {
		n, err := s.store.Update(ctx, d.EditingID, d.Title, d.Content)
		if err != nil {
			return model.Note{}, s.fail("save", err)
		}
		s.state = Replaced(s.state, n)
		s.status = fmt.Sprintf("saved note %d", n.ID)
		s.logger.Debug("note updated", "id", n.ID)
		return n, nil
	}

	n, err := s.store.Create(ctx, d.Title, d.Content)
	if err != nil {
		return model.Note{}, s.fail("save", err)
	}
	s.state = Added(s.state, n)
	s.status = fmt.Sprintf("added note %d", n.ID)
	s.logger.Debug("note created", "id", n.ID)
	return n, nil
}

// Delete removes a note from the store, then from the local list.
// On failure the local list is left as it was.
func (s *Session) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail("delete", err)
	}
	s.state = Removed(s.state, id)
	s.status = fmt.Sprintf("deleted note %d", id)
	s.logger.Debug("note deleted", "id", id)
	return nil
}

// fail records err as the visible status and returns it. Callers hold s.mu.
func (s *Session) fail(op string, err error) error {
	s.status = err.Error()
	s.logger.Warn(op+" failed", "error", err)
	return err
}
