package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/notesbridge/pkg/applescript"
	"github.com/entrhq/notesbridge/pkg/config"
	"github.com/entrhq/notesbridge/pkg/tools"
	"github.com/entrhq/notesbridge/pkg/tools/notetools"
)

// stubRunner answers every script with a fixed outcome
type stubRunner struct {
	outcome applescript.Outcome
	scripts []string
}

func (s *stubRunner) Run(_ context.Context, script string) applescript.Outcome {
	s.scripts = append(s.scripts, script)
	return s.outcome
}

// runCLI executes the command line with args and returns stdout
func runCLI(t *testing.T, r applescript.Runner, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOTESBRIDGE_LOG_LEVEL", "disabled")

	var out bytes.Buffer
	err := run(args, &out, r)
	return out.String(), err
}

func TestBuildDispatcher(t *testing.T) {
	d, err := buildDispatcher(config.Default(), nil, &stubRunner{})
	require.NoError(t, err)

	names := []string{}
	for _, tool := range d.Tools() {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{"create-note", "search-notes", "get-note-content"}, names)
	assert.Equal(t, config.Default().OperationTimeout, d.Timeout())
}

func TestBuildDispatcher_Filtered(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.Disabled = []string{"create-*"}

	d, err := buildDispatcher(cfg, nil, &stubRunner{})
	require.NoError(t, err)
	_, found := d.Get("create-note")
	assert.False(t, found)
	assert.Len(t, d.Tools(), 2)
}

func TestBuildDispatcher_NothingEnabled(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.Enabled = []string{"nothing-matches"}

	_, err := buildDispatcher(cfg, nil, &stubRunner{})
	assert.Error(t, err)
}

func TestBuildDispatcher_PlainText(t *testing.T) {
	cfg := config.Default()
	cfg.Render.PlainText = true
	runner := &stubRunner{outcome: applescript.Success("<div>Hello</div><div>World</div>")}

	d, err := buildDispatcher(cfg, nil, runner)
	require.NoError(t, err)

	resp := d.Dispatch(context.Background(), "get-note-content", json.RawMessage(`{"title":"Greeting"}`))
	assert.Equal(t, "Content of note 'Greeting':\n\nHello\nWorld", resp.Text())
}

func TestParseArgs(t *testing.T) {
	raw, err := parseArgs("")
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(raw))

	raw, err = parseArgs(`{"query":"x"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"x"}`, string(raw))

	_, err = parseArgs(`{query}`)
	assert.Error(t, err)
}

func TestDescribeFields(t *testing.T) {
	got := describeFields(notetools.NewCreateNoteTool(nil).Fields())
	assert.Equal(t, "title: string (≤1000 chars), content: string (≤50000 chars), tags?: []string (≤20 items, each ≤100 chars)", got)

	got = describeFields([]tools.FieldRule{
		{Name: "opt", Kind: tools.KindString, MaxLength: 5},
		{Name: "req", Kind: tools.KindString, Required: true, MaxLength: 5},
	})
	assert.Equal(t, "req: string (≤5 chars), opt?: string (≤5 chars)", got)
}

func TestCLI_Version(t *testing.T) {
	out, err := runCLI(t, &stubRunner{}, "version")
	require.NoError(t, err)
	assert.Equal(t, "notesbridge version "+version+"\n", out)
}

func TestCLI_Tools(t *testing.T) {
	out, err := runCLI(t, &stubRunner{}, "tools")
	require.NoError(t, err)
	for _, name := range []string{"create-note", "search-notes", "get-note-content"} {
		assert.Contains(t, out, name)
	}
}

func TestCLI_CallRaw(t *testing.T) {
	runner := &stubRunner{outcome: applescript.Success("Alpha, Beta")}
	out, err := runCLI(t, runner, "call", "search-notes", "--args", `{"query":"a"}`, "--raw")
	require.NoError(t, err)

	var resp tools.Response
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.False(t, resp.IsError)
	assert.True(t, strings.HasPrefix(resp.Text(), `Found 2 notes matching "a":`))
	require.Len(t, runner.scripts, 1)
}

func TestCLI_CallErrorResponse(t *testing.T) {
	out, err := runCLI(t, &stubRunner{}, "call", "search-notes", "--args", `{}`)
	assert.ErrorIs(t, err, errToolFailed)
	assert.Contains(t, out, "Query is required and must be a string")
}

func TestCLI_ScriptDoesNotExecute(t *testing.T) {
	runner := &stubRunner{}
	out, err := runCLI(t, runner, "script", "get-note-content", "--args", `{"title":"Groceries"}`, "--no-color", "--sanitized")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2, "expected a title line and a single-line script")
	assert.True(t, strings.HasPrefix(lines[1], `tell application "Notes"`))
	assert.Contains(t, lines[1], `get body of note "Groceries"`)
	assert.True(t, strings.HasSuffix(lines[1], "end tell"))
	assert.Empty(t, runner.scripts)
}

func TestCLI_ScriptHighlighted(t *testing.T) {
	out, err := runCLI(t, &stubRunner{}, "script", "search-notes", "--args", `{"query":"x"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "contains")
}

func TestExecute_ClosesAppWhenCommandFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NOTESBRIDGE_LOG_LEVEL", "disabled")

	cmd, a := newRootCmd(&stubRunner{})
	cmd.SetArgs([]string{"call", "search-notes", "--args", `{}`})
	cmd.SetOut(&bytes.Buffer{})

	err := execute(cmd, a)
	assert.ErrorIs(t, err, errToolFailed)
	assert.True(t, a.closed)
}

func TestExecute_ClosesAppWhenSetupFails(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cmd, a := newRootCmd(&stubRunner{})
	cmd.SetArgs([]string{"tools", "--log-level", "loud"})
	cmd.SetOut(&bytes.Buffer{})

	assert.Error(t, execute(cmd, a))
	assert.True(t, a.closed)
}

func TestNewRootCmd_IndependentState(t *testing.T) {
	first := &stubRunner{outcome: applescript.Success("Alpha")}
	second := &stubRunner{}

	_, err := runCLI(t, first, "call", "search-notes", "--args", `{"query":"a"}`, "--raw")
	require.NoError(t, err)
	_, err = runCLI(t, second, "call", "search-notes", "--args", `{"query":"b"}`)
	assert.ErrorIs(t, err, errToolFailed)

	assert.Len(t, first.scripts, 1)
	assert.Len(t, second.scripts, 1)
}
