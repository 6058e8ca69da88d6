// Package tui is the interactive terminal front end: a note list on the
// left, the open note on the right, with prompts drawn inline.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/starford/notepad/internal/apperr"
	"github.com/starford/notepad/internal/editor"
)

type focus int

const (
	focusList focus = iota
	focusEditor
)

type mode int

const (
	modeNormal mode = iota
	modeNewName
	modeConfirmDelete
)

const sidebarWidth = 24

// Model is the bubbletea model of the notepad.
type Model struct {
	ctx    context.Context
	editor *editor.Editor

	view   editor.View
	cursor int
	focus  focus
	mode   mode

	content textarea.Model
	name    textinput.Model
	help    help.Model
	keys    keyMap
	styles  styles

	status string
	alert  bool
	width  int
	height int
}

// New resets the selection, as a fresh start does, and builds the model.
func New(ctx context.Context, ed *editor.Editor) (Model, error) {
	if err := ed.Reset(ctx); err != nil {
		return Model{}, err
	}

	ta := textarea.New()
	ta.Placeholder = editor.Placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = 0

	ti := textinput.New()
	ti.Placeholder = "note name"
	ti.Prompt = "Enter note name: "
	ti.CharLimit = 256

	m := Model{
		ctx:     ctx,
		editor:  ed,
		content: ta,
		name:    ti,
		help:    help.New(),
		keys:    defaultKeys(),
		width:   80,
		height:  24,
	}
	if err := m.refresh(); err != nil {
		return Model{}, err
	}
	m.resize()
	return m, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeNewName:
			return m.updateNewName(msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg)
		}
		if m.focus == focusEditor {
			return m.updateEditor(msg)
		}
		return m.updateList(msg)
	}

	if m.focus == focusEditor {
		var cmd tea.Cmd
		m.content, cmd = m.content.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Notes)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Open):
		if len(m.view.Notes) == 0 {
			return m, nil
		}
		return m.open(m.view.Notes[m.cursor])

	case key.Matches(msg, m.keys.New):
		m.mode = modeNewName
		m.name.SetValue("")
		m.setStatus("", false)
		return m, m.name.Focus()

	case key.Matches(msg, m.keys.Delete):
		if !m.view.Editable {
			m.setStatus("No note is open.", false)
			return m, nil
		}
		m.mode = modeConfirmDelete
		m.setStatus(editor.ConfirmDeleteMessage(m.view.Current)+" [y/N]", false)

	case key.Matches(msg, m.keys.Theme):
		t, err := m.editor.ToggleTheme(m.ctx)
		if err != nil {
			return m.fail(err)
		}
		m.view.Theme = t
		m.styles = newStyles(t)
		m.setStatus("Theme: "+t.String(), false)

	case key.Matches(msg, m.keys.Focus):
		return m.focusEditor()
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Focus):
		m.focus = focusList
		m.content.Blur()
		return m, nil
	}

	before := m.content.Value()
	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	if after := m.content.Value(); after != before {
		if err := m.editor.Save(m.ctx, after); err != nil {
			return m.fail(err)
		}
		m.view.Content = after
	}
	return m, cmd
}

func (m Model) updateNewName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.name.Blur()
		return m, nil

	case tea.KeyEnter:
		m.mode = modeNormal
		m.name.Blur()
		name := m.name.Value()
		if err := m.editor.Create(m.ctx, name); err != nil {
			if text, ok := editor.AlertMessage(err); ok {
				m.setStatus(text, true)
				return m, nil
			}
			return m.fail(err)
		}
		if err := m.refresh(); err != nil {
			return m.fail(err)
		}
		m.setStatus(fmt.Sprintf("Created %q.", name), false)
		return m.focusEditor()
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	if !key.Matches(msg, m.keys.Confirm) {
		m.setStatus("", false)
		return m, nil
	}
	name, err := m.editor.DeleteConfirmed(m.ctx)
	if err != nil {
		return m.fail(err)
	}
	if err := m.refresh(); err != nil {
		return m.fail(err)
	}
	m.focus = focusList
	m.content.Blur()
	m.setStatus(fmt.Sprintf("Deleted %q.", name), false)
	return m, nil
}

func (m Model) open(name string) (tea.Model, tea.Cmd) {
	if _, err := m.editor.Open(m.ctx, name); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			// Removed behind our back; the selection has been reset.
			if rerr := m.refresh(); rerr != nil {
				return m.fail(rerr)
			}
			m.setStatus(fmt.Sprintf("Note %q no longer exists.", name), true)
			return m, nil
		}
		return m.fail(err)
	}
	if err := m.refresh(); err != nil {
		return m.fail(err)
	}
	return m.focusEditor()
}

func (m Model) focusEditor() (tea.Model, tea.Cmd) {
	if !m.view.Editable {
		m.setStatus(editor.Placeholder+".", false)
		return m, nil
	}
	m.focus = focusEditor
	return m, m.content.Focus()
}

// refresh re-reads the view and points the cursor at the open note.
func (m *Model) refresh() error {
	v, err := m.editor.View(m.ctx)
	if err != nil {
		return err
	}
	m.view = v
	m.styles = newStyles(v.Theme)
	if i := slices.Index(v.Notes, v.Current); v.Editable && i >= 0 {
		m.cursor = i
	}
	m.cursor = min(m.cursor, max(len(v.Notes)-1, 0))

	m.content.SetValue(v.Content)
	if !v.Editable {
		m.content.Blur()
		m.focus = focusList
	}
	return nil
}

func (m *Model) resize() {
	w := max(m.width-sidebarWidth-6, 10)
	h := max(m.height-6, 3)
	m.content.SetWidth(w)
	m.content.SetHeight(h)
	m.help.Width = m.width
}

func (m *Model) setStatus(text string, alert bool) {
	m.status = text
	m.alert = alert
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.setStatus("Error: "+err.Error(), true)
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	s := m.styles
	title := s.title.Render(m.view.Title)

	var list strings.Builder
	if len(m.view.Notes) == 0 {
		list.WriteString(s.disabled.Render("no notes yet"))
	}
	for i, name := range m.view.Notes {
		line := "  " + name
		style := s.item
		if name == m.view.Current {
			style = s.current
		}
		if i == m.cursor && m.focus == focusList {
			line = "> " + name
			style = s.cursor
		}
		list.WriteString(style.Render(line))
		if i < len(m.view.Notes)-1 {
			list.WriteByte('\n')
		}
	}

	sidebar := s.sidebar
	pane := s.pane
	if m.focus == focusList {
		sidebar = s.focused
	} else {
		pane = s.focused
	}

	body := m.content.View()
	if !m.view.Editable {
		body = s.disabled.Render(editor.Placeholder)
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		sidebar.Width(sidebarWidth).Render(list.String()),
		pane.Render(body),
	)

	var footer string
	switch {
	case m.mode == modeNewName:
		footer = s.prompt.Render(m.name.View())
	case m.status != "" && m.alert:
		footer = s.alert.Render(m.status)
	case m.status != "":
		footer = s.status.Render(m.status)
	default:
		footer = m.help.View(m.keys)
	}

	return s.app.Render(lipgloss.JoinVertical(lipgloss.Left, title, main, footer))
}

// Run starts the program on the given terminal streams and blocks until
// the user quits or ctx is cancelled.
func Run(ctx context.Context, ed *editor.Editor, in io.Reader, out io.Writer) error {
	m, err := New(ctx, ed)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
