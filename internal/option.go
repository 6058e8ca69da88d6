package internal

import (
	"io"
	"os"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config    *Config
	logOutput io.Writer
	version   string
	stdin     io.Reader
	stdout    io.Writer
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithLogOutput sets where structured logs are written. Interactive and
// stdio modes log to stderr so their own output stays clean.
func WithLogOutput(w io.Writer) Option {
	return func(a *application) {
		a.logOutput = w
	}
}

// WithVersion sets the version reported by the MCP server.
func WithVersion(v string) Option {
	return func(a *application) {
		a.version = v
	}
}

// WithStdio overrides the terminal streams used by the TUI.
func WithStdio(in io.Reader, out io.Writer) Option {
	return func(a *application) {
		a.stdin = in
		a.stdout = out
	}
}

func newApplication(opts []Option) *application {
	app := &application{
		logOutput: os.Stdout,
		version:   "dev",
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}
