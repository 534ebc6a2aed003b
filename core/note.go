package core

import "time"

// NoteRecord is the JSON shape of a note on disk and over the wire.
// Updated is in Unix milliseconds.
type NoteRecord struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Updated int64  `json:"updated"`
}

// Record converts the note to its JSON shape.
func (n Note) Record() NoteRecord {
	var updated int64
	if !n.Updated.IsZero() {
		updated = n.Updated.UnixMilli()
	}
	return NoteRecord{ID: n.ID, Title: n.Title, Content: n.Content, Updated: updated}
}

// Note converts a JSON record back to a Note.
func (r NoteRecord) Note() Note {
	n := Note{ID: r.ID, Title: r.Title, Content: r.Content}
	if r.Updated != 0 {
		n.Updated = time.UnixMilli(r.Updated).UTC()
	}
	return n
}
