package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/notepipe/core"

	_ "modernc.org/sqlite"
)

// SQLite stores notes in a single-table SQLite database.
type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	// modernc.org/sqlite registers itself as "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("applying %q: %w", p, err)
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS notes (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		updated_unixms INTEGER NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating notes table: %w", err)
	}
	return &SQLite{db: db, now: time.Now}, nil
}

// List returns all notes ordered by id.
func (s *SQLite) List(ctx context.Context) ([]core.Note, error) {
	return s.list(ctx, s.db)
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func (s *SQLite) list(ctx context.Context, q queryer) ([]core.Note, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, title, content, updated_unixms FROM notes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []core.Note
	for rows.Next() {
		var r core.NoteRecord
		if err := rows.Scan(&r.ID, &r.Title, &r.Content, &r.Updated); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		notes = append(notes, r.Note())
	}
	return notes, rows.Err()
}

// Get returns the note with the given id.
func (s *SQLite) Get(ctx context.Context, id int64) (core.Note, error) {
	var r core.NoteRecord
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, content, updated_unixms FROM notes WHERE id = ?`, id,
	).Scan(&r.ID, &r.Title, &r.Content, &r.Updated)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Note{}, notFound(id)
	}
	if err != nil {
		return core.Note{}, fmt.Errorf("getting note %d: %w", id, err)
	}
	return r.Note(), nil
}

// Save creates or updates a note inside one transaction.
func (s *SQLite) Save(ctx context.Context, note core.Note) (core.Note, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Note{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	existing, err := s.list(ctx, tx)
	if err != nil {
		return core.Note{}, err
	}
	saved, err := Prepare(existing, note, s.now().UTC().Truncate(time.Millisecond))
	if err != nil {
		return core.Note{}, err
	}

	r := saved.Record()
	if _, err := tx.ExecContext(ctx, `INSERT INTO notes (id, title, content, updated_unixms)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			updated_unixms = excluded.updated_unixms`,
		r.ID, r.Title, r.Content, r.Updated,
	); err != nil {
		return core.Note{}, fmt.Errorf("saving note %d: %w", r.ID, err)
	}
	if err := tx.Commit(); err != nil {
		return core.Note{}, fmt.Errorf("committing note %d: %w", r.ID, err)
	}
	return saved, nil
}

// Delete removes the note with the given id.
func (s *SQLite) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting note %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting note %d: %w", id, err)
	}
	if n == 0 {
		return notFound(id)
	}
	return nil
}

// DeleteAll removes every note.
func (s *SQLite) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return fmt.Errorf("deleting all notes: %w", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
