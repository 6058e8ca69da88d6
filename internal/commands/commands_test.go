package commands

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t      *testing.T
	config string
}

// newHarness points APP_CONFIG_FILE at a config using a file backend in a
// temp dir, so state persists between invocations.
func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.yaml")
	body := fmt.Sprintf("app:\n  log_level: error\nstorage:\n  driver: file\n  path: %s\n", filepath.Join(dir, "notepad.json"))
	require.NoError(t, os.WriteFile(cfg, []byte(body), 0o644))
	t.Setenv("APP_CONFIG_FILE", cfg)
	return &harness{t: t, config: cfg}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	root := New("test", Streams{In: strings.NewReader(stdin), Out: &out, Err: &errOut})
	err := root.Run(context.Background(), append([]string{"notepad"}, args...))
	return out.String(), err
}

func (h *harness) mustRun(stdin string, args ...string) string {
	h.t.Helper()
	out, err := h.run(stdin, args...)
	require.NoError(h.t, err, "notepad %v", args)
	return out
}

func TestNewWriteOpenList(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "created: shopping\n", h.mustRun("", "new", "shopping"))
	h.mustRun("", "write", "milk,", "eggs")
	h.mustRun("", "new", "todo")

	assert.Equal(t, "  shopping\n* todo\n", h.mustRun("", "list"))
	assert.Equal(t, "milk, eggs", h.mustRun("", "open", "shopping"))
	assert.Equal(t, "* shopping\n  todo\n", h.mustRun("", "list"))
}

func TestNew_Prompted(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "created: ideas\n", h.mustRun("ideas\n", "new"))

	// Cancelled prompt creates nothing.
	assert.Empty(t, h.mustRun("", "new"))
	assert.Equal(t, "* ideas\n", h.mustRun("", "list"))
}

func TestNew_Rejections(t *testing.T) {
	h := newHarness(t)
	h.mustRun("", "new", "dup")

	_, err := h.run("", "new", "dup")
	require.Error(t, err)
	assert.Equal(t, "Note name already exists!", err.Error())

	_, err = h.run("", "new", "  ")
	require.Error(t, err)
	assert.Equal(t, "Note name cannot be empty!", err.Error())
}

func TestWrite_FromStdinAndWithoutSelection(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("", "write", "orphan")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no note is open")

	h.mustRun("", "new", "piped")
	h.mustRun("line one\nline two\n", "write")
	assert.Equal(t, "line one\nline two\n", h.mustRun("", "show", "--raw"))
}

func TestOpen_Missing(t *testing.T) {
	h := newHarness(t)
	h.mustRun("", "new", "here")

	_, err := h.run("", "open", "gone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"gone" not found`)
	assert.Equal(t, "  here\n", h.mustRun("", "list"), "selection is reset")

	_, err = h.run("", "open")
	assert.Error(t, err)
}

func TestShow_Rendered(t *testing.T) {
	h := newHarness(t)
	h.mustRun("", "new", "doc")
	h.mustRun("", "write", "plain paragraph text")

	out := h.mustRun("", "show", "doc")
	assert.Contains(t, out, "paragraph")

	h.mustRun("", "reset")
	_, err := h.run("", "show")
	assert.Error(t, err)
}

func TestDelete(t *testing.T) {
	h := newHarness(t)
	h.mustRun("", "new", "victim")

	// Declined.
	assert.Empty(t, h.mustRun("n\n", "delete"))
	assert.Equal(t, "* victim\n", h.mustRun("", "list"))

	assert.Equal(t, "deleted: victim\n", h.mustRun("y\n", "delete"))
	assert.Empty(t, h.mustRun("", "list"))

	// Nothing open: nothing to do.
	assert.Empty(t, h.mustRun("", "delete", "--yes"))
}

func TestDelete_Yes(t *testing.T) {
	h := newHarness(t)
	h.mustRun("", "new", "quick")

	assert.Equal(t, "deleted: quick\n", h.mustRun("", "delete", "--yes"))
}

func TestTheme(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, "light\n", h.mustRun("", "theme"))
	assert.Equal(t, "dark\n", h.mustRun("", "theme", "toggle"))
	assert.Equal(t, "dark\n", h.mustRun("", "theme"))

	_, err := h.run("", "theme", "blue")
	assert.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("storage:\n  driver: floppy\n"), 0o644))
	t.Setenv("APP_CONFIG_FILE", cfg)

	h := &harness{t: t, config: cfg}
	_, err := h.run("", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}
