package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/starford/notepad/internal"
	"github.com/starford/notepad/internal/apperr"
	"github.com/starford/notepad/internal/editor"
	"github.com/starford/notepad/internal/prompt"
	"github.com/starford/notepad/internal/theme"
)

func newEditor(ws *internal.Workspace, s Streams) *editor.Editor {
	return editor.New(ws.Notes, ws.Theme, prompt.NewTerminal(s.In, s.Err))
}

// userError turns domain errors into messages fit for a terminal.
func userError(err error) error {
	if msg, ok := editor.AlertMessage(err); ok {
		return errors.New(msg)
	}
	if errors.Is(err, apperr.ErrNoSelection) {
		return errors.New("no note is open; run \"notepad open <name>\" first")
	}
	return err
}

func listCommand(s Streams) *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List notes; the open one is marked with *",
		Flags: withConfigFlag(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withWorkspace(ctx, cmd, s, func(ws *internal.Workspace) error {
				v, err := newEditor(ws, s).View(ctx)
				if err != nil {
					return err
				}
				for _, name := range v.Notes {
					marker := "  "
					if name == v.Current {
						marker = "* "
					}
					fmt.Fprintln(s.Out, marker+name)
				}
				return nil
			})
		},
	}
}

func newCommand(s Streams) *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a note and open it; prompts for the name when omitted",
		ArgsUsage: "[name]",
		Flags:     withConfigFlag(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withWorkspace(ctx, cmd, s, func(ws *internal.Workspace) error {
				ed := newEditor(ws, s)
				if !cmd.Args().Present() {
					name, err := ed.NewNote(ctx)
					if err != nil || name == "" {
						return err
					}
					fmt.Fprintf(s.Out, "created: %s\n", name)
					return nil
				}
				name := strings.Join(cmd.Args().Slice(), " ")
				if err := ed.Create(ctx, name); err != nil {
					return userError(err)
				}
				fmt.Fprintf(s.Out, "created: %s\n", name)
				return nil
			})
		},
	}
}

func openCommand(s Streams) *cli.Command {
	return &cli.Command{
		Name:      "open",
		Usage:     "Open a note and print its content",
		ArgsUsage: "<name>",
		Flags:     withConfigFlag(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if !cmd.Args().Present() {
				return errors.New("open: note name is required")
			}
			name := strings.Join(cmd.Args().Slice(), " ")
			return withWorkspace(ctx, cmd, s, func(ws *internal.Workspace) error {
				content, err := newEditor(ws, s).Open(ctx, name)
				if errors.Is(err, apperr.ErrNotFound) {
					return fmt.Errorf("note %q not found", name)
				}
				if err != nil {
					return err
				}
				_, err = io.WriteString(s.Out, content)
				return err
			})
		},
	}
}

func writeCommand(s Streams) *cli.Command {
	return &cli.Command{
		Name:      "write",
		Usage:     "Replace the open note's content with the arguments, or stdin when none",
		ArgsUsage: "[text...]",
		Flags:     withConfigFlag(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var content string
			if cmd.Args().Present() {
				content = strings.Join(cmd.Args().Slice(), " ")
			} else {
				data, err := io.ReadAll(s.In)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				content = string(data)
			}
			return withWorkspace(ctx, cmd, s, func(ws *internal.Workspace) error {
				if err := ws.Notes.UpdateNoteContent(ctx, content); err != nil {
					return userError(err)
				}
				return nil
			})
		},
	}
}

func showCommand(s Streams) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Render a note as markdown; defaults to the open note",
		ArgsUsage: "[name]",
		Flags: withConfigFlag(
			&cli.BoolFlag{Name: "raw", Usage: "Print the content without rendering"},
			&cli.IntFlag{Name: "width", Usage: "Word wrap width", Value: 80},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withWorkspace(ctx, cmd, s, func(ws *internal.Workspace) error {
				content, err := noteToShow(ctx, ws, cmd)
				if err != nil {
					return err
				}
				if cmd.Bool("raw") {
					_, err = io.WriteString(s.Out, content)
					return err
				}
				t, err := ws.Theme.Current(ctx)
				if err != nil {
					return err
				}
				out, err := render(content, t, int(cmd.Int("width")))
				if err != nil {
					return err
				}
				_, err = io.WriteString(s.Out, out)
				return err
			})
		},
	}
}

func noteToShow(ctx context.Context, ws *internal.Workspace, cmd *cli.Command) (string, error) {
	if cmd.Args().Present() {
		name := strings.Join(cmd.Args().Slice(), " ")
		content, err := ws.Notes.ReadNote(ctx, name)
		if errors.Is(err, apperr.ErrNotFound) {
			return "", fmt.Errorf("note %q not found", name)
		}
		return content, err
	}
	name, ok, err := ws.Notes.CurrentSelection(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", userError(apperr.ErrNoSelection)
	}
	return ws.Notes.ReadNote(ctx, name)
}

// render formats markdown for the terminal in the stored theme.
func render(content string, t theme.Theme, width int) (string, error) {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(t.String()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("init renderer: %w", err)
	}
	return r.Render(content)
}

func deleteCommand(s Streams) *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Delete the open note after confirmation",
		Flags: withConfigFlag(
			&cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Do not ask for confirmation"},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withWorkspace(ctx, cmd, s, func(ws *internal.Workspace) error {
				ed := newEditor(ws, s)
				var (
					name string
					err  error
				)
				if cmd.Bool("yes") {
					name, err = ed.DeleteConfirmed(ctx)
				} else {
					name, err = ed.Delete(ctx)
				}
				if err != nil {
					return err
				}
				if name != "" {
					fmt.Fprintf(s.Out, "deleted: %s\n", name)
				}
				return nil
			})
		},
	}
}

func resetCommand(s Streams) *cli.Command {
	return &cli.Command{
		Name:  "reset",
		Usage: "Close the open note",
		Flags: withConfigFlag(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return withWorkspace(ctx, cmd, s, func(ws *internal.Workspace) error {
				return newEditor(ws, s).Reset(ctx)
			})
		},
	}
}

func themeCommand(s Streams) *cli.Command {
	return &cli.Command{
		Name:      "theme",
		Usage:     "Print the theme, or switch it with \"toggle\"",
		ArgsUsage: "[toggle]",
		Flags:     withConfigFlag(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			arg := cmd.Args().First()
			if arg != "" && arg != "toggle" {
				return fmt.Errorf("theme: unknown argument %q", arg)
			}
			return withWorkspace(ctx, cmd, s, func(ws *internal.Workspace) error {
				var (
					t   theme.Theme
					err error
				)
				if arg == "toggle" {
					t, err = newEditor(ws, s).ToggleTheme(ctx)
				} else {
					t, err = ws.Theme.Current(ctx)
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(s.Out, t)
				return nil
			})
		},
	}
}
