package api

// CreateNoteRequest is the request body for creating a note.
type CreateNoteRequest struct {
	Name string `json:"name" example:"shopping" validate:"required"`
}

// UpdateContentRequest is the request body for replacing the open note's content.
type UpdateContentRequest struct {
	Content *string `json:"content" example:"milk, eggs" validate:"required"`
}

// NoteResponse is a note with its content.
type NoteResponse struct {
	Name    string `json:"name" example:"shopping" validate:"required"`
	Content string `json:"content" example:"milk, eggs"`
}

// NoteListResponse lists every note and the open one, null when none is open.
type NoteListResponse struct {
	Notes   []string `json:"notes" validate:"required"`
	Current *string  `json:"current"`
}

// DeleteResponse reports the deleted note.
type DeleteResponse struct {
	Deleted string `json:"deleted" example:"shopping" validate:"required"`
}

// ThemeResponse reports the display theme.
type ThemeResponse struct {
	Theme string `json:"theme" example:"light" validate:"required"`
}
