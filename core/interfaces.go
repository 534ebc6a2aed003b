// Package core defines the shared types and stage interfaces for NotePipe.
// Each stage (preview, store, import, export) is a small, testable interface.
package core

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a note id is not in the store.
	ErrNotFound = errors.New("note not found")
	// ErrNothingToSave is returned when both title and content are blank.
	ErrNothingToSave = errors.New("nothing to save")
	// ErrEmptyNote is returned when exporting a note with no content.
	ErrEmptyNote = errors.New("no note to download")
)

// UntitledPrefix is the title prefix used for notes saved without a title.
const UntitledPrefix = "Untitled Note"

// Note is a single stored note.
type Note struct {
	ID      int64
	Title   string
	Content string
	Updated time.Time
}

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Previewer turns raw note text into an HTML fragment for display.
type Previewer interface {
	Render(text string) string
}

// NoteStore persists notes.
type NoteStore interface {
	List(ctx context.Context) ([]Note, error)
	Get(ctx context.Context, id int64) (Note, error)
	// Save creates the note when ID is zero and updates it otherwise.
	// The stored note (with id, title and timestamp filled in) is returned.
	Save(ctx context.Context, note Note) (Note, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	Close() error
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into Markdown (the note format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Exporter converts a note into a downloadable file format.
type Exporter interface {
	Export(note Note) ([]byte, error)
	// Extension returns the file extension for this exporter (e.g. ".md", ".pdf").
	Extension() string
}
