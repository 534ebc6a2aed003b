package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/notepipe/core"
	"github.com/jung-kurt/gofpdf"
)

// headingLine matches the same "# " .. "###### " markers as the preview.
var headingLine = regexp.MustCompile(`^(#{1,6}) (.*)$`)

var (
	boldMarks   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	italicMarks = regexp.MustCompile(`\*(.*?)\*`)
	codeMarks   = regexp.MustCompile("`(.*?)`")
	linkMarks   = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
)

// PDFExporter lays a note out as an A4 PDF using gofpdf core fonts.
type PDFExporter struct{}

// NewPDFExporter creates a PDFExporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Export converts the note into PDF bytes.
func (e *PDFExporter) Export(note core.Note) ([]byte, error) {
	if strings.TrimSpace(note.Content) == "" {
		return nil, core.ErrEmptyNote
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(note.Title, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	// Core fonts are cp1252; translate from UTF-8.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if note.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, tr(note.Title), "", "L", false)
		pdf.Ln(2)
	}
	if !note.Updated.IsZero() {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, "Updated: "+note.Updated.Format("2006-01-02 15:04"), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}
	pdf.Ln(4)

	for _, line := range strings.Split(strings.ReplaceAll(note.Content, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			pdf.Ln(3)
			continue
		}

		if m := headingLine.FindStringSubmatch(line); m != nil {
			renderHeading(pdf, tr(PlainText(m[2])), len(m[1]))
			continue
		}

		pdf.SetFont("Helvetica", "", 10)
		if strings.HasPrefix(line, "- ") {
			pdf.MultiCell(0, 5, tr("• "+PlainText(line[2:])), "", "L", false)
			continue
		}
		pdf.MultiCell(0, 5, tr(PlainText(line)), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (e *PDFExporter) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size := sizes[level]
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

// PlainText strips the inline markers the preview understands, keeping
// link labels and dropping their URLs.
func PlainText(text string) string {
	text = boldMarks.ReplaceAllString(text, "$1")
	text = italicMarks.ReplaceAllString(text, "$1")
	text = codeMarks.ReplaceAllString(text, "$1")
	text = linkMarks.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
