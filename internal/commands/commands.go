// Package commands defines the notepad command line.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/starford/notepad/internal"
	pkgconfig "github.com/starford/notepad/pkg/config"
)

// DefaultConfigPath is read when --config is not given. It may be absent.
const DefaultConfigPath = "config/config.yaml"

// Streams are the terminal streams commands read from and write to.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// New builds the root command.
func New(version string, s Streams) *cli.Command {
	return &cli.Command{
		Name:    "notepad",
		Usage:   "Named plain-text notes with a remembered open note and a light/dark theme",
		Version: version,
		Commands: []*cli.Command{
			serveCommand(version, s),
			mcpCommand(version, s),
			tuiCommand(s),
			listCommand(s),
			newCommand(s),
			openCommand(s),
			writeCommand(s),
			showCommand(s),
			deleteCommand(s),
			resetCommand(s),
			themeCommand(s),
		},
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: DefaultConfigPath,
		Value:       DefaultConfigPath,
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}
}

func withConfigFlag(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{configFlag()}, flags...)
}

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.LoadOptional(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// options returns the application options shared by every command. Logs
// go to errOut so command output stays clean.
func options(cmd *cli.Command, errOut io.Writer) ([]internal.Option, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return []internal.Option{
		internal.WithConfig(cfg),
		internal.WithLogOutput(errOut),
	}, nil
}

// withWorkspace opens the configured storage, runs fn and closes it.
func withWorkspace(ctx context.Context, cmd *cli.Command, s Streams, fn func(*internal.Workspace) error) error {
	opts, err := options(cmd, s.Err)
	if err != nil {
		return err
	}
	ws, err := internal.OpenWorkspace(ctx, opts...)
	if err != nil {
		return err
	}
	defer ws.Close()
	return fn(ws)
}
