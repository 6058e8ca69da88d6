package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/starford/notepad/internal"
)

func serveCommand(version string, s Streams) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API with server-sent events",
		Flags: withConfigFlag(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := internal.Run(ctx,
				internal.WithConfig(cfg),
				internal.WithLogOutput(s.Out),
				internal.WithVersion(version),
			); err != nil {
				return fmt.Errorf("app run error: %w", err)
			}
			return nil
		},
	}
}

func mcpCommand(version string, s Streams) *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve MCP tools over stdio",
		Flags: withConfigFlag(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := options(cmd, s.Err)
			if err != nil {
				return err
			}
			return internal.RunMCP(ctx, append(opts, internal.WithVersion(version))...)
		},
	}
}

func tuiCommand(s Streams) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Open the interactive terminal editor",
		Flags: withConfigFlag(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := options(cmd, s.Err)
			if err != nil {
				return err
			}
			return internal.RunTUI(ctx, append(opts, internal.WithStdio(s.In, s.Out))...)
		},
	}
}
