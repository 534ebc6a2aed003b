package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	tests := map[string]string{
		"Shopping list": "Shopping list.md",
		"Plan: Q3/Q4":   "Plan_ Q3_Q4.md",
		"":              "note.md",
		"   ":           "note.md",
		"../..":         "note.md",
		"Grüße":         "Grüße.md",
	}
	for title, want := range tests {
		assert.Equal(t, want, Filename(title, ".md"), "title %q", title)
	}
}

func TestWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write("My Note", []byte("# hi"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "My Note.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hi", string(data))
}
