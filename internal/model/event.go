package model

import "fmt"

// Change actions carried by an Event.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event announces a confirmed change to the note collection.
type Event struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	NoteID int64  `json:"noteId"`
}

// NewEvent builds an Event whose Type reads "note_<action>".
func NewEvent(action string, noteID int64) Event {
	return Event{
		Type:   fmt.Sprintf("note_%s", action),
		Action: action,
		NoteID: noteID,
	}
}
