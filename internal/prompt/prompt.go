// Package prompt asks the user for text, confirmations, and shows alerts.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Prompter is the user-interaction collaborator of the editor flows.
type Prompter interface {
	// RequestText asks for a line of text. ok is false when the user cancelled.
	RequestText(ctx context.Context, message string) (text string, ok bool, err error)
	// RequestConfirmation asks a yes/no question.
	RequestConfirmation(ctx context.Context, message string) (bool, error)
	// Alert shows a message the user must acknowledge.
	Alert(ctx context.Context, message string) error
}

// Terminal is a line-oriented Prompter. End of input counts as cancel / no.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal reads answers from in and writes questions to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// RequestText prints message and reads one line.
func (t *Terminal) RequestText(_ context.Context, message string) (string, bool, error) {
	if _, err := fmt.Fprintf(t.out, "%s ", message); err != nil {
		return "", false, err
	}
	line, ok, err := t.readLine()
	if err != nil || !ok {
		return "", false, err
	}
	return line, true, nil
}

// RequestConfirmation prints message with a [y/N] suffix; only y or yes confirm.
func (t *Terminal) RequestConfirmation(_ context.Context, message string) (bool, error) {
	if _, err := fmt.Fprintf(t.out, "%s [y/N] ", message); err != nil {
		return false, err
	}
	line, ok, err := t.readLine()
	if err != nil || !ok {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Alert prints message on its own line.
func (t *Terminal) Alert(_ context.Context, message string) error {
	_, err := fmt.Fprintf(t.out, "! %s\n", message)
	return err
}

func (t *Terminal) readLine() (string, bool, error) {
	line, err := t.in.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", false, nil
		}
	} else if err != nil {
		return "", false, fmt.Errorf("prompt: read: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), true, nil
}
