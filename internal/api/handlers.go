package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"slices"

	"github.com/go-chi/chi/v5"

	"github.com/starford/notepad/internal/editor"
	"github.com/starford/notepad/internal/notes"
	"github.com/starford/notepad/internal/theme"
)

const maxBody = 10 << 20

// Handler holds API route handlers.
type Handler struct {
	notes  *notes.Store
	theme  *theme.Flag
	editor *editor.Editor
}

// NewHandler creates a new Handler.
func NewHandler(store *notes.Store, flag *theme.Flag) *Handler {
	return &Handler{
		notes:  store,
		theme:  flag,
		editor: editor.New(store, flag, nil),
	}
}

// noteName extracts the note name from the URL. Names containing slashes
// must be sent percent-encoded. chi matches against RawPath when the
// request has one and the decoded Path otherwise, so the parameter is
// unescaped only in the first case.
func noteName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if r.URL.RawPath == "" {
		return raw
	}
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}

// ListNotes handles GET /api/notes.
//
//	@Summary		List note names and the open note
//	@Tags			notes
//	@Produce		json
//	@Success		200	{object}	NoteListResponse
//	@Security		BearerAuth
//	@Router			/notes [get]
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	seq, err := h.notes.ListNotes(r.Context())
	if err != nil {
		writeError(w, "list notes", err)
		return
	}
	resp := NoteListResponse{Notes: slices.Collect(seq)}
	if resp.Notes == nil {
		resp.Notes = []string{}
	}

	name, ok, err := h.notes.CurrentSelection(r.Context())
	if err != nil {
		writeError(w, "list notes", err)
		return
	}
	if ok {
		resp.Current = &name
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateNote handles POST /api/notes.
//
//	@Summary		Create an empty note and open it
//	@Tags			notes
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateNoteRequest	true	"Note to create"
//	@Success		201		{object}	NoteResponse
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes [post]
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	var req CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.editor.Create(r.Context(), req.Name); err != nil {
		writeError(w, "create note", err)
		return
	}
	writeJSON(w, http.StatusCreated, NoteResponse{Name: req.Name})
}

// GetNote handles GET /api/notes/{name}. The selection is left alone.
//
//	@Summary		Read a note without opening it
//	@Tags			notes
//	@Produce		json
//	@Param			name	path		string	true	"Note name"
//	@Success		200		{object}	NoteResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{name} [get]
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	name := noteName(r)
	content, err := h.notes.ReadNote(r.Context(), name)
	if err != nil {
		writeError(w, "get note", err)
		return
	}
	writeJSON(w, http.StatusOK, NoteResponse{Name: name, Content: content})
}

// SelectNote handles POST /api/notes/{name}/select. A missing note also
// resets the selection.
//
//	@Summary		Open a note
//	@Tags			notes
//	@Produce		json
//	@Param			name	path		string	true	"Note name"
//	@Success		200		{object}	NoteResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/notes/{name}/select [post]
func (h *Handler) SelectNote(w http.ResponseWriter, r *http.Request) {
	name := noteName(r)
	content, err := h.editor.Open(r.Context(), name)
	if err != nil {
		writeError(w, "select note", err)
		return
	}
	writeJSON(w, http.StatusOK, NoteResponse{Name: name, Content: content})
}

// GetCurrent handles GET /api/current.
//
//	@Summary		Read the open note
//	@Tags			current
//	@Produce		json
//	@Success		200	{object}	NoteResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/current [get]
func (h *Handler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	v, err := h.editor.View(r.Context())
	if err != nil {
		writeError(w, "get current", err)
		return
	}
	if !v.Editable {
		writeJSON(w, http.StatusNotFound, errorBody("no note selected"))
		return
	}
	writeJSON(w, http.StatusOK, NoteResponse{Name: v.Current, Content: v.Content})
}

// UpdateCurrent handles PUT /api/current.
//
//	@Summary		Replace the open note's content
//	@Tags			current
//	@Accept			json
//	@Param			body	body	UpdateContentRequest	true	"New content"
//	@Success		204		"Content saved"
//	@Failure		400		{object}	errResponse
//	@Failure		409		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/current [put]
func (h *Handler) UpdateCurrent(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Content == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}
	if err := h.notes.UpdateNoteContent(r.Context(), *req.Content); err != nil {
		writeError(w, "update note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCurrent handles DELETE /api/current. The request itself is the
// confirmation.
//
//	@Summary		Delete the open note
//	@Tags			current
//	@Produce		json
//	@Success		200	{object}	DeleteResponse
//	@Failure		409	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/current [delete]
func (h *Handler) DeleteCurrent(w http.ResponseWriter, r *http.Request) {
	name, err := h.notes.DeleteNote(r.Context())
	if err != nil {
		writeError(w, "delete note", err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: name})
}

// ResetSelection handles DELETE /api/selection.
//
//	@Summary		Close the open note
//	@Tags			current
//	@Success		204	"Selection cleared"
//	@Security		BearerAuth
//	@Router			/selection [delete]
func (h *Handler) ResetSelection(w http.ResponseWriter, r *http.Request) {
	if err := h.editor.Reset(r.Context()); err != nil {
		writeError(w, "reset selection", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetTheme handles GET /api/theme.
//
//	@Summary		Read the display theme
//	@Tags			theme
//	@Produce		json
//	@Success		200	{object}	ThemeResponse
//	@Security		BearerAuth
//	@Router			/theme [get]
func (h *Handler) GetTheme(w http.ResponseWriter, r *http.Request) {
	t, err := h.theme.Current(r.Context())
	if err != nil {
		writeError(w, "get theme", err)
		return
	}
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: t.String()})
}

// ToggleTheme handles POST /api/theme/toggle.
//
//	@Summary		Switch between light and dark
//	@Tags			theme
//	@Produce		json
//	@Success		200	{object}	ThemeResponse
//	@Security		BearerAuth
//	@Router			/theme/toggle [post]
func (h *Handler) ToggleTheme(w http.ResponseWriter, r *http.Request) {
	t, err := h.editor.ToggleTheme(r.Context())
	if err != nil {
		writeError(w, "toggle theme", err)
		return
	}
	writeJSON(w, http.StatusOK, ThemeResponse{Theme: t.String()})
}
