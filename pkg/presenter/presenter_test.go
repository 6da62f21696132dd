package presenter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func newTestPresenter() (*TerminalPresenter, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewWithOptions(out, errOut, ColorNever), out, errOut
}

func TestSuccess(t *testing.T) {
	p, out, _ := newTestPresenter()
	p.Success("installed code-review")
	assert.Equal(t, "✓ installed code-review\n", out.String())
}

func TestWarning(t *testing.T) {
	p, out, _ := newTestPresenter()
	p.Warning("reference fetch failed")
	assert.Equal(t, "⚠ reference fetch failed\n", out.String())
}

func TestError(t *testing.T) {
	p, out, errOut := newTestPresenter()
	p.Error(errors.New("boom"), "install failed")

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "[ERROR] install failed: boom")
}

func TestErrorNilIsSilent(t *testing.T) {
	p, _, errOut := newTestPresenter()
	p.Error(nil, "context")
	assert.Empty(t, errOut.String())
}

func TestSection(t *testing.T) {
	p, out, _ := newTestPresenter()
	p.Section("Branch: main")

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	assert.Equal(t, "Branch: main", lines[0])
	assert.Equal(t, strings.Repeat("-", len("Branch: main")), lines[1])
}

func TestQuietSuppressesNonErrors(t *testing.T) {
	p, out, errOut := newTestPresenter()
	p.SetQuiet(true)
	assert.True(t, p.IsQuiet())

	p.Success("hidden")
	p.Warning("hidden")
	p.Info("hidden")
	p.Section("hidden")
	p.Separator()
	assert.Empty(t, out.String())

	// Errors always surface.
	p.Error(errors.New("boom"), "")
	assert.Contains(t, errOut.String(), "boom")
}

func TestPrompt(t *testing.T) {
	p, out, _ := newTestPresenter()
	p.SetInput(strings.NewReader("local\n"))

	answer := p.Prompt("Install skills where?", "global", "local")
	assert.Equal(t, "local", answer)
	assert.Contains(t, out.String(), "Install skills where? [global/local]: ")
}

func TestPromptTrimsWhitespace(t *testing.T) {
	p, _, _ := newTestPresenter()
	p.SetInput(strings.NewReader("  global  \n"))
	assert.Equal(t, "global", p.Prompt("where?"))
}

func TestPromptReadFailure(t *testing.T) {
	p, _, _ := newTestPresenter()
	p.SetInput(strings.NewReader("no trailing newline"))
	assert.Equal(t, "", p.Prompt("where?"))
}
