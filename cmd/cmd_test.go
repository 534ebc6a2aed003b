package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command against an isolated data dir. Flag values
// persist between runs, so every call passes the same persistent flags.
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--data_dir", dataDir, "--log_level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

var savedID = regexp.MustCompile(`id (\d+)`)

func TestRenderStdin(t *testing.T) {
	rootCmd.SetIn(strings.NewReader("# Title\n- a\n- b"))
	t.Cleanup(func() { rootCmd.SetIn(nil) })

	out, err := run(t, t.TempDir(), "render", "-")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>\n<ul><li>a</li><li>b</li></ul>\n", out)
}

func TestNotesLifecycle(t *testing.T) {
	dataDir := t.TempDir()

	out, err := run(t, dataDir, "notes", "save", "--title", "", "--content", "**bold** move")
	require.NoError(t, err)
	assert.Contains(t, out, `✓ Saved: "Untitled Note 1"`)
	m := savedID.FindStringSubmatch(out)
	require.Len(t, m, 2)
	id := m[1]

	out, err = run(t, dataDir, "notes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Untitled Note 1")
	assert.Contains(t, out, id)

	out, err = run(t, dataDir, "notes", "show", id, "--preview=true")
	require.NoError(t, err)
	assert.Equal(t, "<strong>bold</strong> move\n", out)

	outDir := t.TempDir()
	out, err = run(t, dataDir, "export", id, "--format", "md", "--output_dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Written:")
	data, err := os.ReadFile(filepath.Join(outDir, "Untitled Note 1.md"))
	require.NoError(t, err)
	assert.Equal(t, "**bold** move", string(data))

	_, err = run(t, dataDir, "notes", "delete", id)
	require.NoError(t, err)
	_, err = run(t, dataDir, "notes", "show", id, "--preview=false")
	assert.ErrorContains(t, err, "not found")
}

func TestNotesSaveNothing(t *testing.T) {
	_, err := run(t, t.TempDir(), "notes", "save", "--title", " ", "--content", "")
	assert.ErrorContains(t, err, "nothing to save")
}

func TestNotesWipeNeedsConfirmation(t *testing.T) {
	_, err := run(t, t.TempDir(), "notes", "wipe", "--yes=false")
	assert.ErrorContains(t, err, "--yes")
}

func TestSnippet(t *testing.T) {
	out, err := run(t, t.TempDir(), "snippet", "bold", "--text", "make loud", "--start", "5", "--end", "9")
	require.NoError(t, err)
	assert.Equal(t, "make **loud**\n", out)

	_, err = run(t, t.TempDir(), "snippet", "blink", "--text", "", "--start", "0", "--end", "0")
	assert.Error(t, err)
}

func TestParseID(t *testing.T) {
	id, err := parseID("1740830400000")
	require.NoError(t, err)
	assert.Equal(t, int64(1740830400000), id)

	for _, raw := range []string{"", "abc", "0", "-4"} {
		_, err := parseID(raw)
		assert.Error(t, err, raw)
	}
}
