package export

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/notepipe/core"
)

// JSONExporter writes notes in the {id,title,content,updated} shape the
// browser editor stored.
type JSONExporter struct{}

// NewJSONExporter creates a JSONExporter.
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

// Export returns one note as indented JSON.
func (e *JSONExporter) Export(note core.Note) ([]byte, error) {
	data, err := json.MarshalIndent(note.Record(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Backup returns every note as one indented JSON array.
func (e *JSONExporter) Backup(notes []core.Note) ([]byte, error) {
	records := make([]core.NoteRecord, 0, len(notes))
	for _, n := range notes {
		records = append(records, n.Record())
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (e *JSONExporter) Extension() string {
	return ".json"
}
