// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/notepad/internal/api"
	"github.com/starford/notepad/internal/editor"
	"github.com/starford/notepad/internal/mcpserver"
	"github.com/starford/notepad/internal/metrics"
	"github.com/starford/notepad/internal/notes"
	"github.com/starford/notepad/internal/sse"
	"github.com/starford/notepad/internal/storage"
	"github.com/starford/notepad/internal/theme"
	"github.com/starford/notepad/internal/tui"
)

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	cfg := app.config

	broker := sse.NewBroker(cfg.Events.RefreshThrottle)
	defer broker.Close()

	m := metrics.New(broker.ClientCount)

	ws, err := openWorkspace(ctx, app, Hooks{
		Note: func(e notes.Event) {
			broker.PublishNoteEvent(string(e.Kind), e.Name)
			m.ObserveNoteEvent(string(e.Kind))
		},
		Theme: func(t theme.Theme) {
			broker.PublishTheme(t.String())
			m.ObserveThemeToggle()
		},
	})
	if err != nil {
		return err
	}
	defer ws.Close()
	logger := ws.Logger

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.String("storage_path", cfg.Storage.Path),
		slog.String("auth_mode", cfg.Auth.Mode),
		slog.String("log_level", cfg.App.LogLevel.String()))

	apiRouter := api.NewRouter(ws.Notes, ws.Theme, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if cfg.App.MetricsPath != "" {
		r.Use(m.Middleware)
		r.Method(http.MethodGet, cfg.App.MetricsPath, m.Handler())
	}

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := ws.Notes.ListNotes(r.Context()); err != nil {
			logger.Warn("readiness check failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api; the SSE stream lives at /api/events.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// External edits of the file backend are announced to SSE clients.
	if file, ok := ws.KV.(*storage.File); ok {
		g.Go(func() error {
			err := storage.WatchFile(gCtx, file, logger, func() {
				logger.Info("notes changed on disk", slog.String("path", file.Path()))
				broker.PublishNoteEvent(sse.KindExternal, file.Path())
			})
			if err != nil {
				logger.Warn("file watcher stopped", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		// Open SSE streams only end when the broker closes.
		broker.Close()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher stops with the server.
var errShutdown = errors.New("shutdown")

// RunMCP serves the MCP tools on stdin/stdout until the client disconnects.
func RunMCP(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	ws, err := openWorkspace(ctx, app, Hooks{})
	if err != nil {
		return err
	}
	defer ws.Close()

	ws.Logger.Info("MCP server starting", slog.String("storage_driver", app.config.Storage.Driver))
	return mcpserver.New(ws.Notes, ws.Theme, app.version).ServeStdio()
}

// RunTUI runs the interactive terminal editor.
func RunTUI(ctx context.Context, opts ...Option) error {
	app := newApplication(opts)
	ws, err := openWorkspace(ctx, app, Hooks{})
	if err != nil {
		return err
	}
	defer ws.Close()

	ed := editor.New(ws.Notes, ws.Theme, nil)
	return tui.Run(ctx, ed, app.stdin, app.stdout)
}
