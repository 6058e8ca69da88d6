// Package notes implements the notes store: named text notes plus the
// identity of the note currently open for editing, both kept in a
// storage.Provider.
package notes

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/starford/notepad/internal/apperr"
	"github.com/starford/notepad/internal/storage"
)

// Persistence keys.
const (
	KeyNotes   = "notes"
	KeyCurrent = "currentNote"
)

// Store owns the note collection and the current-note reference.
// Every read goes to the provider; the store caches nothing.
type Store struct {
	kv       storage.Provider
	logger   *slog.Logger
	listener Listener

	mu sync.Mutex // serialises read-modify-write cycles
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for mutation traces.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// WithListener registers fn to be called after each successful mutation.
func WithListener(fn Listener) Option {
	return func(s *Store) {
		s.listener = fn
	}
}

// NewStore creates a store persisting into kv.
func NewStore(kv storage.Provider, opts ...Option) *Store {
	s := &Store{kv: kv, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListNotes returns every note name in ascending order. The sequence walks
// a snapshot taken at call time and may be ranged over any number of times.
func (s *Store) ListNotes(ctx context.Context) (iter.Seq[string], error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Values(c.names()), nil
}

// CreateNote adds an empty note called name and makes it current. Blank
// names and names that are not valid UTF-8 are rejected.
func (s *Store) CreateNote(ctx context.Context, name string) error {
	if strings.TrimSpace(name) == "" || !utf8.ValidString(name) {
		return apperr.ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := c[name]; ok {
		return apperr.ErrAlreadyExists
	}
	c[name] = ""
	if err := s.save(ctx, c); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyCurrent, name); err != nil {
		return fmt.Errorf("notes: set current: %w", err)
	}

	s.logger.Debug("notes: created", slog.String("name", name))
	s.emit(EventCreated, name)
	return nil
}

// SelectNote makes name the current note and returns its content.
// On apperr.ErrNotFound callers are expected to ResetSelection.
func (s *Store) SelectNote(ctx context.Context, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	content, ok := c[name]
	if !ok {
		return "", apperr.ErrNotFound
	}
	if err := s.kv.Set(ctx, KeyCurrent, name); err != nil {
		return "", fmt.Errorf("notes: set current: %w", err)
	}

	s.emit(EventSelected, name)
	return content, nil
}

// UpdateNoteContent replaces the content of the current note and rewrites
// the whole collection. Invalid UTF-8 in content is stored as U+FFFD.
func (s *Store) UpdateNoteContent(ctx context.Context, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, name, err := s.loadWithCurrent(ctx)
	if err != nil {
		return err
	}
	if name == "" {
		return apperr.ErrNoSelection
	}
	content = strings.ToValidUTF8(content, string(utf8.RuneError))
	c[name] = content
	if err := s.save(ctx, c); err != nil {
		return err
	}

	s.logger.Debug("notes: updated", slog.String("name", name), slog.Int("bytes", len(content)))
	s.emit(EventUpdated, name)
	return nil
}

// DeleteNote removes the current note, clears the selection and returns the
// deleted name. Confirmation is the caller's business.
func (s *Store) DeleteNote(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, name, err := s.loadWithCurrent(ctx)
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", apperr.ErrNoSelection
	}
	delete(c, name)
	if err := s.save(ctx, c); err != nil {
		return "", err
	}
	if err := s.kv.Remove(ctx, KeyCurrent); err != nil {
		return "", fmt.Errorf("notes: clear current: %w", err)
	}

	s.logger.Debug("notes: deleted", slog.String("name", name))
	s.emit(EventDeleted, name)
	return name, nil
}

// ResetSelection clears the current-note reference.
func (s *Store) ResetSelection(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Remove(ctx, KeyCurrent); err != nil {
		return fmt.Errorf("notes: clear current: %w", err)
	}
	s.emit(EventReset, "")
	return nil
}

// CurrentSelection returns the current note name. A reference to a note
// that no longer exists reads as no selection; nothing is written.
func (s *Store) CurrentSelection(ctx context.Context) (string, bool, error) {
	_, name, err := s.loadWithCurrent(ctx)
	if err != nil {
		return "", false, err
	}
	return name, name != "", nil
}

// CurrentNote returns the current note and its content from one snapshot
// of the collection. ok is false when nothing (or a dangling name) is
// selected.
func (s *Store) CurrentNote(ctx context.Context) (name, content string, ok bool, err error) {
	c, name, err := s.loadWithCurrent(ctx)
	if err != nil {
		return "", "", false, err
	}
	if name == "" {
		return "", "", false, nil
	}
	return name, c[name], true, nil
}

// ReadNote returns the content of name without touching the selection.
func (s *Store) ReadNote(ctx context.Context, name string) (string, error) {
	c, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	content, ok := c[name]
	if !ok {
		return "", apperr.ErrNotFound
	}
	return content, nil
}

func (s *Store) load(ctx context.Context) (collection, error) {
	raw, _, err := s.kv.Get(ctx, KeyNotes)
	if err != nil {
		return nil, fmt.Errorf("notes: load collection: %w", err)
	}
	return decodeCollection(raw)
}

// loadWithCurrent returns the collection and the validated current name,
// "" when unset or dangling.
func (s *Store) loadWithCurrent(ctx context.Context) (collection, string, error) {
	c, err := s.load(ctx)
	if err != nil {
		return nil, "", err
	}
	name, ok, err := s.kv.Get(ctx, KeyCurrent)
	if err != nil {
		return nil, "", fmt.Errorf("notes: load current: %w", err)
	}
	if !ok || name == "" {
		return c, "", nil
	}
	if _, exists := c[name]; !exists {
		s.logger.Debug("notes: dangling current reference", slog.String("name", name))
		return c, "", nil
	}
	return c, name, nil
}

func (s *Store) save(ctx context.Context, c collection) error {
	raw, err := c.encode()
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyNotes, raw); err != nil {
		return fmt.Errorf("notes: save collection: %w", err)
	}
	return nil
}

func (s *Store) emit(kind EventKind, name string) {
	if s.listener != nil {
		s.listener(Event{Kind: kind, Name: name})
	}
}
