package editor

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/starford/notepad/internal/apperr"
	"github.com/starford/notepad/internal/notes"
	"github.com/starford/notepad/internal/storage"
	"github.com/starford/notepad/internal/theme"
)

// scriptedPrompter answers from canned values and records what it was asked.
type scriptedPrompter struct {
	texts   []string
	cancel  bool
	confirm bool
	asked   []string
	alerts  []string
}

func (p *scriptedPrompter) RequestText(_ context.Context, msg string) (string, bool, error) {
	p.asked = append(p.asked, msg)
	if p.cancel || len(p.texts) == 0 {
		return "", false, nil
	}
	t := p.texts[0]
	p.texts = p.texts[1:]
	return t, true, nil
}

func (p *scriptedPrompter) RequestConfirmation(_ context.Context, msg string) (bool, error) {
	p.asked = append(p.asked, msg)
	return p.confirm, nil
}

func (p *scriptedPrompter) Alert(_ context.Context, msg string) error {
	p.alerts = append(p.alerts, msg)
	return nil
}

func newTestEditor(t *testing.T, p *scriptedPrompter) (*Editor, *notes.Store, storage.Provider) {
	t.Helper()
	kv := storage.NewMemory()
	t.Cleanup(func() { kv.Close() })
	store := notes.NewStore(kv)
	return New(store, theme.NewFlag(kv, nil), p), store, kv
}

func TestViewWithoutSelection(t *testing.T) {
	ctx := context.Background()
	e, store, _ := newTestEditor(t, nil)
	require.NoError(t, store.CreateNote(ctx, "b"))
	require.NoError(t, store.CreateNote(ctx, "a"))
	require.NoError(t, store.ResetSelection(ctx))

	v, err := e.View(ctx)
	require.NoError(t, err)
	want := View{
		Title: Placeholder,
		Notes: []string{"a", "b"},
		Theme: theme.Light,
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("View mismatch (-want +got):\n%s", diff)
	}
}

func TestViewWithSelection(t *testing.T) {
	ctx := context.Background()
	e, store, _ := newTestEditor(t, nil)
	require.NoError(t, store.CreateNote(ctx, "plans"))
	require.NoError(t, store.UpdateNoteContent(ctx, "ship it"))
	_, err := e.ToggleTheme(ctx)
	require.NoError(t, err)

	v, err := e.View(ctx)
	require.NoError(t, err)
	want := View{
		Title:    "plans",
		Notes:    []string{"plans"},
		Current:  "plans",
		Content:  "ship it",
		Editable: true,
		Theme:    theme.Dark,
	}
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("View mismatch (-want +got):\n%s", diff)
	}
}

func TestNewNote_Creates(t *testing.T) {
	ctx := context.Background()
	p := &scriptedPrompter{texts: []string{"ideas"}}
	e, store, _ := newTestEditor(t, p)

	name, err := e.NewNote(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ideas", name)
	assert.Equal(t, []string{"Enter note name:"}, p.asked)

	cur, ok, _ := store.CurrentSelection(ctx)
	assert.True(t, ok)
	assert.Equal(t, "ideas", cur)
}

func TestNewNote_Cancelled(t *testing.T) {
	ctx := context.Background()
	p := &scriptedPrompter{cancel: true}
	e, _, _ := newTestEditor(t, p)

	name, err := e.NewNote(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Empty(t, p.alerts)

	v, _ := e.View(ctx)
	assert.Empty(t, v.Notes)
}

func TestNewNote_BlankNameAlerts(t *testing.T) {
	ctx := context.Background()
	p := &scriptedPrompter{texts: []string{"   "}}
	e, _, _ := newTestEditor(t, p)

	name, err := e.NewNote(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Equal(t, []string{"Note name cannot be empty!"}, p.alerts)
}

func TestNewNote_DuplicateAlerts(t *testing.T) {
	ctx := context.Background()
	p := &scriptedPrompter{texts: []string{"dup", "dup"}}
	e, _, _ := newTestEditor(t, p)

	_, err := e.NewNote(ctx)
	require.NoError(t, err)
	name, err := e.NewNote(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Equal(t, []string{"Note name already exists!"}, p.alerts)
}

func TestOpenMissingResetsSelection(t *testing.T) {
	ctx := context.Background()
	e, store, _ := newTestEditor(t, nil)
	require.NoError(t, store.CreateNote(ctx, "kept"))

	_, err := e.Open(ctx, "vanished")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, ok, _ := store.CurrentSelection(ctx)
	assert.False(t, ok, "selection should be reset after a missing open")
}

func TestSaveWithoutSelectionIsSilent(t *testing.T) {
	ctx := context.Background()
	e, _, kv := newTestEditor(t, nil)

	require.NoError(t, e.Save(ctx, "lost words"))
	_, ok, _ := kv.Get(ctx, notes.KeyNotes)
	assert.False(t, ok)
}

func TestSaveThenOpen(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEditor(t, nil)
	require.NoError(t, e.Create(ctx, "log"))
	require.NoError(t, e.Save(ctx, "day one"))

	content, err := e.Open(ctx, "log")
	require.NoError(t, err)
	assert.Equal(t, "day one", content)
}

func TestDelete_Declined(t *testing.T) {
	ctx := context.Background()
	p := &scriptedPrompter{confirm: false}
	e, _, _ := newTestEditor(t, p)
	require.NoError(t, e.Create(ctx, "precious"))

	name, err := e.Delete(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Equal(t, []string{`Are you sure you want to delete "precious"?`}, p.asked)

	v, _ := e.View(ctx)
	assert.Equal(t, []string{"precious"}, v.Notes)
	assert.Equal(t, "precious", v.Current)
}

func TestConfirmDeleteMessage_Verbatim(t *testing.T) {
	assert.Equal(t, `Are you sure you want to delete "say "hi" \ bye"?`,
		ConfirmDeleteMessage(`say "hi" \ bye`))
	assert.Equal(t, "Are you sure you want to delete \"tab\there\"?",
		ConfirmDeleteMessage("tab\there"))
}

func TestDelete_Confirmed(t *testing.T) {
	ctx := context.Background()
	p := &scriptedPrompter{confirm: true}
	e, _, _ := newTestEditor(t, p)
	require.NoError(t, e.Create(ctx, "scratch"))

	name, err := e.Delete(ctx)
	require.NoError(t, err)
	assert.Equal(t, "scratch", name)

	v, _ := e.View(ctx)
	assert.Empty(t, v.Notes)
	assert.Equal(t, Placeholder, v.Title)
	assert.False(t, v.Editable)
}

func TestDelete_NothingOpenDoesNotAsk(t *testing.T) {
	ctx := context.Background()
	p := &scriptedPrompter{confirm: true}
	e, _, _ := newTestEditor(t, p)

	name, err := e.Delete(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)
	assert.Empty(t, p.asked)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	e, _, _ := newTestEditor(t, nil)
	require.NoError(t, e.Create(ctx, "open"))
	require.NoError(t, e.Reset(ctx))

	v, err := e.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, v.Current)
	assert.Equal(t, []string{"open"}, v.Notes)
}

func TestAlertMessage(t *testing.T) {
	msg, ok := AlertMessage(apperr.ErrAlreadyExists)
	assert.True(t, ok)
	assert.Equal(t, "Note name already exists!", msg)

	_, ok = AlertMessage(apperr.ErrNoSelection)
	assert.False(t, ok)
}

// deletingProvider removes every note the first time the current-note key
// is read, as a concurrent delete from another surface would.
type deletingProvider struct {
	storage.Provider
	armed bool
}

func (p *deletingProvider) Get(ctx context.Context, key string) (string, bool, error) {
	if p.armed && key == notes.KeyCurrent {
		p.armed = false
		if err := p.Provider.Set(ctx, notes.KeyNotes, "{}"); err != nil {
			return "", false, err
		}
	}
	return p.Provider.Get(ctx, key)
}

func TestView_ConcurrentDeleteIsConsistent(t *testing.T) {
	ctx := context.Background()
	kv := &deletingProvider{Provider: storage.NewMemory()}
	t.Cleanup(func() { kv.Close() })
	store := notes.NewStore(kv)
	e := New(store, theme.NewFlag(kv, nil), nil)

	require.NoError(t, store.CreateNote(ctx, "gone"))
	require.NoError(t, store.UpdateNoteContent(ctx, "draft"))
	kv.armed = true

	v, err := e.View(ctx)
	require.NoError(t, err)
	assert.Equal(t, "gone", v.Current)
	assert.Equal(t, "draft", v.Content)

	v, err = e.View(ctx)
	require.NoError(t, err)
	assert.Empty(t, v.Current)
	assert.Equal(t, Placeholder, v.Title)
	assert.False(t, v.Editable)
}
