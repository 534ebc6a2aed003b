// Package output handles file naming and writing for exported notes.
// Files are named after the note title (e.g. "Shopping list.md"), falling
// back to "note" when the title is blank.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// DefaultName is used when a note has no usable title.
const DefaultName = "note"

// Writer writes exported notes to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data as <title><ext> in the output directory and returns
// the written path.
func (w *Writer) Write(title string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, Filename(title, ext))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename converts a note title into a safe file name with ext appended.
// Example: "Plan: Q3/Q4" + ".md" -> "Plan_ Q3_Q4.md"
func Filename(title, ext string) string {
	name := sanitize(strings.TrimSpace(title))
	if strings.Trim(name, "_ ") == "" {
		name = DefaultName
	}
	return name + ext
}

// sanitize replaces everything but letters, digits, spaces, '-' and '_'
// with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == ' ' || ch == '-' || ch == '_' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
