package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/cyoa/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const questDoc = `<quest>
	<question type="input" name="hero" text="Name?"/>
	<question name="class" text="Class?">
		<option value="Warrior"><constant name="strength" value="8"/></option>
		<option value="Mage"><constant name="strength" value="3"/></option>
	</question>
	<constant name="tags" value="brave" conflict="list"/>
	<constant name="tags" value="bold" conflict="list"/>
</quest>`

type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func nopLogger() *slog.Logger {
	return logging.NewNop()
}

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testConfig(t *testing.T) Config {
	t.Helper()
	seed := uint64(7)
	return Config{
		Seed:          &seed,
		ListSeparator: " | ",
		MaxDepth:      100,
		Format:        "text",
		Store:         StoreFile,
		RunsDir:       t.TempDir(),
	}
}

func TestRunDocument_Text(t *testing.T) {
	cfg := testConfig(t)
	path := writeDoc(t, "quest.xml", questDoc)
	var out bytes.Buffer

	run, err := RunDocument(context.Background(), cfg, RunOptions{Path: path, Save: true},
		strings.NewReader("Ada\nmage\n"), &out)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), run.Seed)
	assert.Equal(t, path, run.Document)
	assert.Contains(t, out.String(), "Name?")
	assert.Contains(t, out.String(), "Results:\nhero: Ada\nclass: Mage\nstrength: 3\ntags: brave | bold\n")
	assert.Contains(t, out.String(), "Run "+run.ID+" saved")

	var listed bytes.Buffer
	require.NoError(t, ListRuns(context.Background(), cfg, &listed))
	assert.Contains(t, listed.String(), run.ID)
	assert.Contains(t, listed.String(), "quest.xml")
}

func TestRunDocument_Quiet(t *testing.T) {
	cfg := testConfig(t)
	path := writeDoc(t, "quest.xml", questDoc)
	var out bytes.Buffer

	_, err := RunDocument(context.Background(), cfg, RunOptions{Path: path, Quiet: true, Format: "markdown"},
		strings.NewReader("Ada\n1\n"), &out)
	require.NoError(t, err)

	assert.NotContains(t, out.String(), ">>>")
	assert.Contains(t, out.String(), "| class | Warrior |")
}

func TestRunDocument_JSON(t *testing.T) {
	cfg := testConfig(t)
	path := writeDoc(t, "quest.xml", questDoc)
	var out bytes.Buffer

	run, err := RunDocument(context.Background(), cfg, RunOptions{Path: path, JSON: true},
		strings.NewReader("\"Ada\"\n2\n"), &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)

	var last struct {
		Type    string `json:"type"`
		RunID   string `json:"run_id"`
		Results []struct {
			Name  string `json:"name"`
			Value any    `json:"value"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &last))
	assert.Equal(t, "results", last.Type)
	assert.Equal(t, run.ID, last.RunID)
	require.Len(t, last.Results, 4)
	assert.Equal(t, "Ada", last.Results[0].Value)
	assert.Equal(t, "Mage", last.Results[1].Value)
}

func TestRunDocument_Interrupted(t *testing.T) {
	cfg := testConfig(t)
	path := writeDoc(t, "quest.xml", questDoc)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	pr, pw := io.Pipe()
	defer pw.Close()
	var out bytes.Buffer

	run, err := RunDocument(ctx, cfg, RunOptions{Path: path}, pr, &out)
	require.NoError(t, err, "interruptions exit cleanly")
	require.NotNil(t, run)
	assert.Contains(t, out.String(), "Interrupted")
	assert.Contains(t, out.String(), "Results:")
}

func TestRunDocument_Errors(t *testing.T) {
	cfg := testConfig(t)

	_, err := RunDocument(context.Background(), cfg, RunOptions{Path: filepath.Join(t.TempDir(), "missing.xml")},
		strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)

	path := writeDoc(t, "bad.xml", `<doc><equal><field name="nope"/><constant value="1"/></equal></doc>`)
	_, err = RunDocument(context.Background(), cfg, RunOptions{Path: path}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "nope")

	_, err = RunDocument(context.Background(), cfg, RunOptions{Path: path, Format: "csv"}, strings.NewReader(""), &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown report format")
}

func TestInspectAndDeleteRun(t *testing.T) {
	cfg := testConfig(t)
	path := writeDoc(t, "quest.yaml", `
- tag: constant
  attrs: {name: gold, value: 5}
- tag: constant
  attrs: {name: gold, value: 3, conflict: add}
`)
	run, err := RunDocument(context.Background(), cfg, RunOptions{Path: path, Save: true, Quiet: true},
		strings.NewReader(""), &bytes.Buffer{})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, InspectRun(context.Background(), cfg, run.ID, "", &out))
	assert.Contains(t, out.String(), "Run:      "+run.ID)
	assert.Contains(t, out.String(), "gold: 8")

	require.NoError(t, DeleteRun(context.Background(), cfg, run.ID))
	err = InspectRun(context.Background(), cfg, run.ID, "", &out)
	assert.Error(t, err)

	var listed bytes.Buffer
	require.NoError(t, ListRuns(context.Background(), cfg, &listed))
	assert.Equal(t, "No runs archived.\n", listed.String())
}

func TestGraph(t *testing.T) {
	cfg := testConfig(t)
	path := writeDoc(t, "quest.xml", questDoc)
	var out bytes.Buffer

	require.NoError(t, Graph(context.Background(), cfg, path, "", &out))
	assert.True(t, strings.HasPrefix(out.String(), "graph TD\n"))
	assert.Contains(t, out.String(), "class")

	assert.Error(t, Graph(context.Background(), cfg, path, "missing", &out))
}

func TestValidate(t *testing.T) {
	var out bytes.Buffer
	path := writeDoc(t, "quest.xml", questDoc)
	require.NoError(t, Validate(context.Background(), path, &out))
	assert.Contains(t, out.String(), "is valid (0 warnings)")

	out.Reset()
	path = writeDoc(t, "broken.xml", `<doc><macro load="x"/><question type="essay"/></doc>`)
	err := Validate(context.Background(), path, &out)
	assert.EqualError(t, err, "validation failed: 1 errors, 1 warnings")
	assert.Contains(t, out.String(), `macro "x" is loaded before it is saved`)
}
