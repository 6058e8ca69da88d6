// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the notepad for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/notepad/internal/apperr"
	"github.com/starford/notepad/internal/editor"
	"github.com/starford/notepad/internal/notes"
	"github.com/starford/notepad/internal/theme"
)

// Server wraps the MCP server with notepad tools.
type Server struct {
	mcp    *server.MCPServer
	notes  *notes.Store
	editor *editor.Editor
}

// New creates a new MCP server with all notepad tools registered.
func New(store *notes.Store, flag *theme.Flag, version string) *Server {
	s := &Server{notes: store, editor: editor.New(store, flag, nil)}

	s.mcp = server.NewMCPServer(
		"Notepad",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List every note name and the name of the open note."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("read_note",
		mcp.WithDescription("Read a note's content without opening it."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Note name")),
	), s.readNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create an empty note and open it."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Name of the new note")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("open_note",
		mcp.WithDescription("Open a note and return its content."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Note name")),
	), s.openNote)

	s.mcp.AddTool(mcp.NewTool("update_note",
		mcp.WithDescription("Replace the full content of the open note."),
		mcp.WithString("content", mcp.Required(), mcp.Description("New content, may be empty")),
	), s.updateNote)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete the open note. Requires confirm=true."),
		mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("Must be true to delete")),
	), s.deleteNote)

	s.mcp.AddTool(mcp.NewTool("reset_selection",
		mcp.WithDescription("Close the open note without deleting anything."),
	), s.resetSelection)

	s.mcp.AddTool(mcp.NewTool("current_note",
		mcp.WithDescription("Return the open note's name and content."),
	), s.currentNote)

	s.mcp.AddTool(mcp.NewTool("toggle_theme",
		mcp.WithDescription("Switch the display theme between light and dark."),
	), s.toggleTheme)

	s.mcp.AddTool(mcp.NewTool("get_usage_guide",
		mcp.WithDescription("Returns the notepad usage guide. Read it before editing notes."),
	), s.getUsageGuide)

	s.mcp.AddResource(
		mcp.NewResource(GuideURI, "Notepad Usage Guide",
			mcp.WithResourceDescription("How notes, names and the open note work."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readGuideResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

type noteResult struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type listResult struct {
	Notes   []string `json:"notes"`
	Current *string  `json:"current"`
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

// errorResult turns a store error into a tool error message.
func errorResult(err error) *mcp.CallToolResult {
	if msg, ok := editor.AlertMessage(err); ok {
		return mcp.NewToolResultError(msg)
	}
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return mcp.NewToolResultError("note not found")
	case errors.Is(err, apperr.ErrNoSelection):
		return mcp.NewToolResultError("no note selected")
	}
	return mcp.NewToolResultError(err.Error())
}

func (s *Server) listNotes(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := s.editor.View(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	res := listResult{Notes: v.Notes}
	if res.Notes == nil {
		res.Notes = []string{}
	}
	if v.Editable {
		res.Current = &v.Current
	}
	return jsonResult(res)
}

func (s *Server) readNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := s.notes.ReadNote(ctx, name)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(content), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.editor.Create(ctx, name); err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", name)), nil
}

func (s *Server) openNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := s.editor.Open(ctx, name)
	if err != nil {
		return errorResult(err), nil
	}
	return jsonResult(noteResult{Name: name, Content: content})
}

func (s *Server) updateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.notes.UpdateNoteContent(ctx, content); err != nil {
		return errorResult(err), nil
	}
	name, _, err := s.notes.CurrentSelection(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved: %s", name)), nil
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !req.GetBool("confirm", false) {
		return mcp.NewToolResultError("refusing to delete without confirm=true"), nil
	}
	name, err := s.notes.DeleteNote(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted: %s", name)), nil
}

func (s *Server) resetSelection(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.editor.Reset(ctx); err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText("selection cleared"), nil
}

func (s *Server) currentNote(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := s.editor.View(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	if !v.Editable {
		return mcp.NewToolResultError("no note selected"), nil
	}
	return jsonResult(noteResult{Name: v.Current, Content: v.Content})
}

func (s *Server) toggleTheme(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := s.editor.ToggleTheme(ctx)
	if err != nil {
		return errorResult(err), nil
	}
	return mcp.NewToolResultText(t.String()), nil
}

func (s *Server) getUsageGuide(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(UsageGuide), nil
}

func (s *Server) readGuideResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      GuideURI,
			MIMEType: "text/markdown",
			Text:     UsageGuide,
		},
	}, nil
}

