package notes

import (
	"slices"
	"strings"

	"github.com/dukerupert/sharenote/internal/model"
)

// Mode is whether the draft will create a new note or replace an existing one.
type Mode int

const (
	Creating Mode = iota
	Editing
)

func (m Mode) String() string {
	if m == Editing {
		return "editing"
	}
	return "creating"
}

// Draft is the title/content pair not yet confirmed by the store.
// EditingID is 0 while creating; store ids start at 1.
type Draft struct {
	Title     string
	Content   string
	EditingID int64
}

func (d Draft) Mode() Mode {
	if d.EditingID != 0 {
		return Editing
	}
	return Creating
}

// Empty reports whether both fields are blank.
func (d Draft) Empty() bool {
	return strings.TrimSpace(d.Title) == "" && strings.TrimSpace(d.Content) == ""
}

// ValidateDraft rejects an empty submission.
func ValidateDraft(d Draft) error {
	if d.Empty() {
		return ErrValidation
	}
	return nil
}

// State is the client's view: the confirmed notes plus the current draft.
// Reducers never modify the Notes slice they receive.
type State struct {
	Notes []model.Note
	Draft Draft
}

// Find returns the note with the given id from the local list.
func (s State) Find(id int64) (model.Note, bool) {
	i := s.index(id)
	if i < 0 {
		return model.Note{}, false
	}
	return s.Notes[i], true
}

func (s State) index(id int64) int {
	return slices.IndexFunc(s.Notes, func(n model.Note) bool { return n.ID == id })
}

// Loaded replaces the list with a fresh copy from the store. A draft being
// edited is dropped if its note no longer exists.
func Loaded(s State, notes []model.Note) State {
	s.Notes = slices.Clone(notes)
	if s.Draft.Mode() == Editing && s.index(s.Draft.EditingID) < 0 {
		s.Draft = Draft{}
	}
	return s
}

// StartEdit switches to Editing and copies the note into the draft.
func StartEdit(s State, n model.Note) State {
	s.Draft = Draft{Title: n.Title, Content: n.Content, EditingID: n.ID}
	return s
}

// CancelEdit clears the draft and returns to Creating.
func CancelEdit(s State) State {
	s.Draft = Draft{}
	return s
}

func SetTitle(s State, title string) State {
	s.Draft.Title = title
	return s
}

func SetContent(s State, content string) State {
	s.Draft.Content = content
	return s
}

// Added appends a note the store has just created and clears the draft.
func Added(s State, n model.Note) State {
	notes := make([]model.Note, 0, len(s.Notes)+1)
	for _, existing := range s.Notes {
		if existing.ID != n.ID {
			notes = append(notes, existing)
		}
	}
	s.Notes = append(notes, n)
	s.Draft = Draft{}
	return s
}

// Replaced swaps in the store's updated copy of a note and leaves Editing.
func Replaced(s State, n model.Note) State {
	notes := slices.Clone(s.Notes)
	if i := s.index(n.ID); i >= 0 {
		notes[i] = n
	} else {
		notes = append(notes, n)
	}
	s.Notes = notes
	s.Draft = Draft{}
	return s
}

// Removed drops exactly the note with id. A draft editing that note is cleared.
func Removed(s State, id int64) State {
	s.Notes = slices.DeleteFunc(slices.Clone(s.Notes), func(n model.Note) bool { return n.ID == id })
	if s.Draft.EditingID == id {
		s.Draft = Draft{}
	}
	return s
}
