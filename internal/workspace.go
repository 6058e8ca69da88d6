package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/starford/notepad/internal/notes"
	"github.com/starford/notepad/internal/storage"
	"github.com/starford/notepad/internal/theme"
)

// Workspace is an opened storage backend with the notes store and theme
// flag on top of it.
type Workspace struct {
	KV     storage.Provider
	Notes  *notes.Store
	Theme  *theme.Flag
	Logger *slog.Logger
}

// Hooks receive workspace change notifications. Either field may be nil.
type Hooks struct {
	Note  notes.Listener
	Theme func(theme.Theme)
}

// OpenWorkspace opens the configured storage backend.
func OpenWorkspace(ctx context.Context, opts ...Option) (*Workspace, error) {
	return openWorkspace(ctx, newApplication(opts), Hooks{})
}

func openWorkspace(ctx context.Context, app *application, hooks Hooks) (*Workspace, error) {
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	logger := newLogger(app.config, app.logOutput)

	kv, err := storage.Open(ctx, app.config.Storage.Options())
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	storeOpts := []notes.Option{notes.WithLogger(logger)}
	if hooks.Note != nil {
		storeOpts = append(storeOpts, notes.WithListener(hooks.Note))
	}

	return &Workspace{
		KV:     kv,
		Notes:  notes.NewStore(kv, storeOpts...),
		Theme:  theme.NewFlag(kv, hooks.Theme),
		Logger: logger,
	}, nil
}

// Close releases the storage backend.
func (w *Workspace) Close() error {
	return w.KV.Close()
}

// newLogger builds the structured JSON logger and installs it as default.
func newLogger(cfg *Config, out io.Writer) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}
