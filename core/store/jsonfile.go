package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gaurav-prasanna/notepipe/core"
)

// JSONFile stores all notes as one JSON array, the same shape the browser
// editor kept under its "notes" key.
type JSONFile struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewJSONFile creates a store backed by the file at path.
// The file is created on the first save.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path, now: time.Now}
}

// Path returns the backing file path.
func (s *JSONFile) Path() string {
	return s.path
}

// List returns all notes ordered by id.
func (s *JSONFile) List(ctx context.Context) ([]core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := s.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].ID < notes[j].ID })
	return notes, nil
}

// Get returns the note with the given id.
func (s *JSONFile) Get(ctx context.Context, id int64) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := s.load()
	if err != nil {
		return core.Note{}, err
	}
	for _, n := range notes {
		if n.ID == id {
			return n, nil
		}
	}
	return core.Note{}, notFound(id)
}

// Save creates or updates a note.
func (s *JSONFile) Save(ctx context.Context, note core.Note) (core.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := s.load()
	if err != nil {
		return core.Note{}, err
	}

	saved, err := Prepare(notes, note, s.now().UTC().Truncate(time.Millisecond))
	if err != nil {
		return core.Note{}, err
	}

	replaced := false
	for i := range notes {
		if notes[i].ID == saved.ID {
			notes[i] = saved
			replaced = true
			break
		}
	}
	if !replaced {
		notes = append(notes, saved)
	}

	if err := s.write(notes); err != nil {
		return core.Note{}, err
	}
	return saved, nil
}

// Delete removes the note with the given id.
func (s *JSONFile) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	notes, err := s.load()
	if err != nil {
		return err
	}
	for i, n := range notes {
		if n.ID == id {
			notes = append(notes[:i], notes[i+1:]...)
			return s.write(notes)
		}
	}
	return notFound(id)
}

// DeleteAll removes the notes file.
func (s *JSONFile) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op; the file is not held open between calls.
func (s *JSONFile) Close() error {
	return nil
}

func (s *JSONFile) load() ([]core.Note, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []core.NoteRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	notes := make([]core.Note, 0, len(records))
	for _, r := range records {
		notes = append(notes, r.Note())
	}
	return notes, nil
}

// write replaces the file atomically via a temp file in the same directory.
func (s *JSONFile) write(notes []core.Note) error {
	records := make([]core.NoteRecord, 0, len(notes))
	for _, n := range notes {
		records = append(records, n.Record())
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling notes: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".notes-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("writing file %s: %w", s.path, err)
	}
	return nil
}
