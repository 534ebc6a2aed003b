// Package export provides the note exporters: Markdown, standalone HTML,
// PDF and JSON. Every exporter satisfies core.Exporter.
package export

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/notepipe/core"
)

// MarkdownExporter writes the note text as-is. It is the "download as .md"
// action of the editor.
type MarkdownExporter struct{}

// NewMarkdownExporter creates a MarkdownExporter.
func NewMarkdownExporter() *MarkdownExporter {
	return &MarkdownExporter{}
}

// Export returns the trimmed note content.
func (e *MarkdownExporter) Export(note core.Note) ([]byte, error) {
	content := strings.TrimSpace(note.Content)
	if content == "" {
		return nil, core.ErrEmptyNote
	}
	return []byte(content), nil
}

// Extension returns the file extension for Markdown output.
func (e *MarkdownExporter) Extension() string {
	return ".md"
}

// Formats lists the names accepted by ForFormat.
var Formats = []string{"md", "html", "pdf", "json"}

// ForFormat returns the exporter for a format name.
func ForFormat(format string, previewer core.Previewer) (core.Exporter, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "md", "markdown":
		return NewMarkdownExporter(), nil
	case "html":
		return NewHTMLExporter(previewer), nil
	case "pdf":
		return NewPDFExporter(), nil
	case "json":
		return NewJSONExporter(), nil
	default:
		return nil, fmt.Errorf("unknown export format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}
