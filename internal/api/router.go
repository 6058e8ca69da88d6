package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/notepad/internal/notes"
	"github.com/starford/notepad/internal/theme"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(store *notes.Store, flag *theme.Flag, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(store, flag)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Notes.
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/{name}", h.GetNote)
	r.Post("/notes/{name}/select", h.SelectNote)

	// Open note.
	r.Get("/current", h.GetCurrent)
	r.Put("/current", h.UpdateCurrent)
	r.Delete("/current", h.DeleteCurrent)
	r.Delete("/selection", h.ResetSelection)

	// Theme.
	r.Get("/theme", h.GetTheme)
	r.Post("/theme/toggle", h.ToggleTheme)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
