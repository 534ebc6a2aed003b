// Package store implements the core.NoteStore backends.
// Notes live either in a single notes.json array file or in a SQLite
// database; both share the save rules in Prepare.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gaurav-prasanna/notepipe/core"
)

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open creates the store for backend inside dataDir.
func Open(ctx context.Context, backend, dataDir string) (core.NoteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	switch backend {
	case "", BackendJSON:
		return NewJSONFile(filepath.Join(dataDir, "notes.json")), nil
	case BackendSQLite:
		return OpenSQLite(ctx, filepath.Join(dataDir, "notes.sqlite"))
	default:
		return nil, fmt.Errorf("unknown store backend %q (want %s or %s)", backend, BackendJSON, BackendSQLite)
	}
}

// Prepare applies the save rules to n given the currently stored notes:
// title and content are trimmed, a blank title becomes "Untitled Note N",
// a zero ID is assigned and Updated is set to now.
func Prepare(existing []core.Note, n core.Note, now time.Time) (core.Note, error) {
	n.Title = strings.TrimSpace(n.Title)
	n.Content = strings.TrimSpace(n.Content)
	if n.Title == "" && n.Content == "" {
		return core.Note{}, core.ErrNothingToSave
	}

	if n.Title == "" {
		count := 0
		for _, e := range existing {
			if strings.HasPrefix(e.Title, core.UntitledPrefix) {
				count++
			}
		}
		n.Title = fmt.Sprintf("%s %d", core.UntitledPrefix, count+1)
	}

	if n.ID == 0 {
		n.ID = nextID(existing, now)
	}
	n.Updated = now
	return n, nil
}

// nextID uses the creation time in milliseconds, moved past the highest
// stored id when two notes are created within the same millisecond.
func nextID(existing []core.Note, now time.Time) int64 {
	id := now.UnixMilli()
	for _, e := range existing {
		if e.ID >= id {
			id = e.ID + 1
		}
	}
	return id
}

func notFound(id int64) error {
	return fmt.Errorf("%w: %d", core.ErrNotFound, id)
}
