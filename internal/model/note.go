package model

import "time"

// Note is a persisted note. ID and ShareID are assigned by the store and never change.
type Note struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ShareID   string    `json:"shareId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SharedNote is the public, read-only view served for a share token.
type SharedNote struct {
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Shared returns the public view of n.
func (n Note) Shared() SharedNote {
	return SharedNote{Title: n.Title, Content: n.Content, UpdatedAt: n.UpdatedAt}
}
