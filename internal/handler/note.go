package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/sharenote/internal/model"
	"github.com/dukerupert/sharenote/internal/store"
	"github.com/dukerupert/sharenote/internal/websocket"
)

const maxNoteBody = 1 << 20

type NoteHandler struct {
	noteStore *store.NoteStore
	hub       *websocket.Hub
	logger    *slog.Logger
}

func NewNoteHandler(ns *store.NoteStore, hub *websocket.Hub, logger *slog.Logger) *NoteHandler {
	return &NoteHandler{noteStore: ns, hub: hub, logger: logger}
}

func (h *NoteHandler) broadcast(action string, id int64) {
	if h.hub != nil {
		h.hub.Broadcast(model.NewEvent(action, id))
	}
}

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// decodeNote reads and validates a note body. It writes the error response
// itself and returns false when the request should stop.
func decodeNote(w http.ResponseWriter, r *http.Request) (noteRequest, bool) {
	var req noteRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxNoteBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return req, false
	}
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "title or content is required")
		return req, false
	}
	return req, true
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeNote(w, r)
	if !ok {
		return
	}

	note, err := h.noteStore.Create(req.Title, req.Content)
	if err != nil {
		h.logger.Error("create note", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create note")
		return
	}

	h.logger.Debug("note created", "id", note.ID)
	h.broadcast(model.ActionCreated, note.ID)

	writeJSON(w, http.StatusCreated, note)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteStore.List()
	if err != nil {
		h.logger.Error("list notes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list notes")
		return
	}
	if notes == nil {
		notes = []model.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	note, err := h.noteStore.GetByID(id)
	if err != nil {
		h.logger.Error("get note", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get note")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	req, ok := decodeNote(w, r)
	if !ok {
		return
	}

	note, err := h.noteStore.Update(id, req.Title, req.Content)
	if err != nil {
		h.logger.Error("update note", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update note")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}

	h.broadcast(model.ActionUpdated, id)

	writeJSON(w, http.StatusOK, note)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	existed, err := h.noteStore.Delete(id)
	if err != nil {
		h.logger.Error("delete note", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete note")
		return
	}
	if !existed {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}

	h.broadcast(model.ActionDeleted, id)

	w.WriteHeader(http.StatusNoContent)
}

// Share serves the public read-only view for a share token.
func (h *NoteHandler) Share(w http.ResponseWriter, r *http.Request) {
	shareID := r.PathValue("shareId")
	if shareID == "" {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}

	note, err := h.noteStore.GetByShareID(shareID)
	if err != nil {
		h.logger.Error("get shared note", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to get note")
		return
	}
	if note == nil {
		writeError(w, http.StatusNotFound, "note not found")
		return
	}
	writeJSON(w, http.StatusOK, note.Shared())
}
