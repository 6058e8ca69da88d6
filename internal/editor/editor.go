// Package editor is the glue between a notes UI and the store: it builds
// the view snapshot a UI renders and runs the create, open, save, delete
// and theme flows, asking the user through a prompt.Prompter.
package editor

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/starford/notepad/internal/apperr"
	"github.com/starford/notepad/internal/notes"
	"github.com/starford/notepad/internal/prompt"
	"github.com/starford/notepad/internal/theme"
)

// Placeholder is the title shown when no note is open.
const Placeholder = "Select or Create a Note"

// View is everything a UI needs to render one frame.
type View struct {
	Title    string
	Notes    []string
	Current  string // "" when nothing is open
	Content  string
	Editable bool
	Theme    theme.Theme
}

// Editor runs UI flows against the store.
type Editor struct {
	notes    *notes.Store
	theme    *theme.Flag
	prompter prompt.Prompter
}

// New creates an editor. p may be nil for UIs that collect input themselves
// and only call the non-prompting methods.
func New(n *notes.Store, t *theme.Flag, p prompt.Prompter) *Editor {
	return &Editor{notes: n, theme: t, prompter: p}
}

// View reads a fresh snapshot from the store.
func (e *Editor) View(ctx context.Context) (View, error) {
	seq, err := e.notes.ListNotes(ctx)
	if err != nil {
		return View{}, err
	}
	th, err := e.theme.Current(ctx)
	if err != nil {
		return View{}, err
	}
	v := View{
		Title: Placeholder,
		Notes: slices.Collect(seq),
		Theme: th,
	}

	name, content, ok, err := e.notes.CurrentNote(ctx)
	if err != nil {
		return View{}, err
	}
	if !ok {
		return v, nil
	}
	v.Title = name
	v.Current = name
	v.Content = content
	v.Editable = true
	return v, nil
}

// Reset closes whatever note is open, as a fresh page load does.
func (e *Editor) Reset(ctx context.Context) error {
	return e.notes.ResetSelection(ctx)
}

// NewNote asks for a name and creates the note. A cancelled prompt returns
// "" without error. Invalid or duplicate names are reported through an
// alert and also return "" without error.
func (e *Editor) NewNote(ctx context.Context) (string, error) {
	name, ok, err := e.prompter.RequestText(ctx, "Enter note name:")
	if err != nil || !ok {
		return "", err
	}
	if err := e.Create(ctx, name); err != nil {
		if msg, alert := AlertMessage(err); alert {
			return "", e.prompter.Alert(ctx, msg)
		}
		return "", err
	}
	return name, nil
}

// Create adds and opens the note name.
func (e *Editor) Create(ctx context.Context, name string) error {
	return e.notes.CreateNote(ctx, name)
}

// Open opens name and returns its content. When the note has disappeared
// the selection is reset and apperr.ErrNotFound is returned.
func (e *Editor) Open(ctx context.Context, name string) (string, error) {
	content, err := e.notes.SelectNote(ctx, name)
	if errors.Is(err, apperr.ErrNotFound) {
		if resetErr := e.notes.ResetSelection(ctx); resetErr != nil {
			return "", resetErr
		}
	}
	return content, err
}

// Save stores content into the open note. Without an open note it does nothing.
func (e *Editor) Save(ctx context.Context, content string) error {
	err := e.notes.UpdateNoteContent(ctx, content)
	if errors.Is(err, apperr.ErrNoSelection) {
		return nil
	}
	return err
}

// Delete asks for confirmation and deletes the open note, returning its name.
// It returns "" without error when nothing is open or the user declines.
func (e *Editor) Delete(ctx context.Context) (string, error) {
	name, ok, err := e.notes.CurrentSelection(ctx)
	if err != nil || !ok {
		return "", err
	}
	confirmed, err := e.prompter.RequestConfirmation(ctx, ConfirmDeleteMessage(name))
	if err != nil || !confirmed {
		return "", err
	}
	return e.DeleteConfirmed(ctx)
}

// DeleteConfirmed deletes the open note without asking. The caller has
// already obtained confirmation. Without an open note it returns "".
func (e *Editor) DeleteConfirmed(ctx context.Context) (string, error) {
	name, err := e.notes.DeleteNote(ctx)
	if errors.Is(err, apperr.ErrNoSelection) {
		return "", nil
	}
	return name, err
}

// ToggleTheme flips the theme.
func (e *Editor) ToggleTheme(ctx context.Context) (theme.Theme, error) {
	return e.theme.Toggle(ctx)
}

// ConfirmDeleteMessage is the question asked before deleting name.
func ConfirmDeleteMessage(name string) string {
	return fmt.Sprintf("Are you sure you want to delete \"%s\"?", name)
}

// AlertMessage returns the text to alert for err, if err is one the user
// should be told about.
func AlertMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, apperr.ErrInvalidName):
		return "Note name cannot be empty!", true
	case errors.Is(err, apperr.ErrAlreadyExists):
		return "Note name already exists!", true
	}
	return "", false
}
