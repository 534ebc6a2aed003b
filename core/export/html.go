package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/gaurav-prasanna/notepipe/core"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
</head>
<body>
<article class="markdown-preview">
{{.Body}}
</article>
</body>
</html>
`))

// HTMLExporter wraps the preview fragment in a standalone HTML document.
type HTMLExporter struct {
	previewer core.Previewer
}

// NewHTMLExporter creates an HTMLExporter rendering with previewer.
func NewHTMLExporter(previewer core.Previewer) *HTMLExporter {
	return &HTMLExporter{previewer: previewer}
}

// Export renders the note into an HTML document.
func (e *HTMLExporter) Export(note core.Note) ([]byte, error) {
	if strings.TrimSpace(note.Content) == "" {
		return nil, core.ErrEmptyNote
	}
	return Page(note.Title, e.previewer.Render(note.Content))
}

// Extension returns the file extension for HTML output.
func (e *HTMLExporter) Extension() string {
	return ".html"
}

// Page builds a standalone document around an already rendered fragment.
// The title is escaped; the fragment is inserted verbatim.
func Page(title, fragment string) ([]byte, error) {
	if strings.TrimSpace(title) == "" {
		title = "note"
	}
	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(fragment)})
	if err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	return buf.Bytes(), nil
}
