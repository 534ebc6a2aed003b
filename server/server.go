// Package server exposes the live preview and the note store over HTTP.
// It replaces the browser editor's DOM wiring: clients post the buffer on
// every change and display the returned fragment.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gaurav-prasanna/notepipe/core"
	"github.com/gaurav-prasanna/notepipe/core/export"
	"github.com/gaurav-prasanna/notepipe/core/output"
	"github.com/gaurav-prasanna/notepipe/core/toolbar"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// maxBodySize caps request bodies (note text, JSON payloads).
const maxBodySize = 1 << 20

// Server serves the preview and notes API.
type Server struct {
	previewer core.Previewer
	store     core.NoteStore
	log       logrus.FieldLogger
	router    chi.Router
}

// New creates a Server and registers its routes.
func New(previewer core.Previewer, store core.NoteStore, log logrus.FieldLogger) *Server {
	s := &Server{previewer: previewer, store: store, log: log}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/preview", s.handlePreview)
		r.Post("/toolbar", s.handleToolbar)

		r.Route("/notes", func(r chi.Router) {
			r.Get("/", s.handleListNotes)
			r.Post("/", s.handleSaveNote)
			r.Delete("/", s.handleDeleteAll)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetNote)
				r.Put("/", s.handleSaveNote)
				r.Delete("/", s.handleDeleteNote)
				r.Get("/preview", s.handleNotePreview)
				r.Get("/export/{format}", s.handleExport)
			})
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", addr).Info("preview server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info("shutting down preview server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start),
		}).Debug("request")
	})
}

// --- handlers ---

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("reading body: %w", err))
		return
	}
	writeHTML(w, s.previewer.Render(string(body)))
}

type toolbarRequest struct {
	Text   string `json:"text"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Action string `json:"action"`
}

type toolbarResponse struct {
	Text    string `json:"text"`
	Caret   int    `json:"caret"`
	Preview string `json:"preview"`
}

func (s *Server) handleToolbar(w http.ResponseWriter, r *http.Request) {
	var req toolbarRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	action, err := toolbar.ParseAction(req.Action)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	text, caret := toolbar.Apply(req.Text, req.Start, req.End, action)
	writeJSON(w, http.StatusOK, toolbarResponse{Text: text, Caret: caret, Preview: s.previewer.Render(text)})
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.store.List(r.Context())
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	records := make([]core.NoteRecord, 0, len(notes))
	for _, n := range notes {
		records = append(records, n.Record())
	}
	writeJSON(w, http.StatusOK, records)
}

type saveRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// handleSaveNote serves both POST /notes (create) and PUT /notes/{id}.
func (s *Server) handleSaveNote(w http.ResponseWriter, r *http.Request) {
	var note core.Note
	if chi.URLParam(r, "id") != "" {
		id, ok := s.noteID(w, r)
		if !ok {
			return
		}
		note.ID = id
	}

	var req saveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	note.Title, note.Content = req.Title, req.Content

	saved, err := s.store.Save(r.Context(), note)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.log.WithFields(logrus.Fields{"id": saved.ID, "title": saved.Title}).Info("note saved")

	status := http.StatusOK
	if note.ID == 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, saved.Record())
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, note.Record())
}

func (s *Server) handleNotePreview(w http.ResponseWriter, r *http.Request) {
	note, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeHTML(w, s.previewer.Render(note.Content))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := s.noteID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.log.WithField("id", id).Info("note deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAll(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAll(r.Context()); err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	s.log.Warn("all notes deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	note, ok := s.lookup(w, r)
	if !ok {
		return
	}
	exporter, err := export.ForFormat(chi.URLParam(r, "format"), s.previewer)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	data, err := exporter.Export(note)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}

	name := output.Filename(note.Title, exporter.Extension())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Type", contentType(exporter.Extension()))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// --- helpers ---

func (s *Server) noteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("invalid note id %q", raw))
		return 0, false
	}
	return id, true
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (core.Note, bool) {
	id, ok := s.noteID(w, r)
	if !ok {
		return core.Note{}, false
	}
	note, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeStoreError(w, r, err)
		return core.Note{}, false
	}
	return note, true
}

func (s *Server) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		s.writeError(w, r, http.StatusNotFound, err)
	case errors.Is(err, core.ErrNothingToSave), errors.Is(err, core.ErrEmptyNote):
		s.writeError(w, r, http.StatusBadRequest, err)
	default:
		s.writeError(w, r, http.StatusInternalServerError, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	entry := s.log.WithFields(logrus.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"status":     status,
	}).WithError(err)
	if status >= http.StatusInternalServerError {
		entry.Error("request failed")
	} else {
		entry.Debug("request rejected")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeHTML(w http.ResponseWriter, fragment string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, fragment)
}

func contentType(ext string) string {
	switch ext {
	case ".md":
		return "text/markdown; charset=utf-8"
	case ".html":
		return "text/html; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
