package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/notepipe/core"
	"github.com/gaurav-prasanna/notepipe/core/preview"
	"github.com/gaurav-prasanna/notepipe/core/store"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *test.Hook) {
	t.Helper()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	st := store.NewJSONFile(filepath.Join(t.TempDir(), "notes.json"))
	srv := httptest.NewServer(New(preview.New(), st, log))
	t.Cleanup(srv.Close)
	return srv, hook
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(data)
}

func TestPreview(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/preview", "- a\n- b")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "<ul><li>a</li><li>b</li></ul>", readBody(t, resp))

	resp = do(t, http.MethodPost, srv.URL+"/api/preview", "")
	assert.Equal(t, preview.Placeholder, readBody(t, resp))
}

func TestToolbar(t *testing.T) {
	srv, _ := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/api/toolbar", `{"text":"make loud","start":5,"end":9,"action":"bold"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got toolbarResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "make **loud**", got.Text)
	assert.Equal(t, 13, got.Caret)
	assert.Equal(t, "make <strong>loud</strong>", got.Preview)

	resp = do(t, http.MethodPost, srv.URL+"/api/toolbar", `{"action":"blink"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNotesCRUD(t *testing.T) {
	srv, _ := newTestServer(t)
	notes := srv.URL + "/api/notes"

	resp := do(t, http.MethodPost, notes, `{"title":"","content":"# Hello\n"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created core.NoteRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "Untitled Note 1", created.Title)
	assert.Equal(t, "# Hello", created.Content)
	noteURL := fmt.Sprintf("%s/%d", notes, created.ID)

	resp = do(t, http.MethodPut, noteURL, `{"title":"Greeting","content":"**hi**"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, noteURL, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got core.NoteRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "Greeting", got.Title)

	resp = do(t, http.MethodGet, noteURL+"/preview", "")
	assert.Equal(t, "<strong>hi</strong>", readBody(t, resp))

	resp = do(t, http.MethodGet, notes, "")
	var list []core.NoteRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)

	resp = do(t, http.MethodDelete, noteURL, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = do(t, http.MethodGet, noteURL, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveNothing(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/api/notes", `{"title":" ","content":""}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "nothing to save")
}

func TestBadID(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodGet, srv.URL+"/api/notes/abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExport(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := do(t, http.MethodPost, srv.URL+"/api/notes", `{"title":"Trip plan","content":"- pack"}`)
	var created core.NoteRecord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	base := fmt.Sprintf("%s/api/notes/%d/export/", srv.URL, created.ID)

	resp = do(t, http.MethodGet, base+"md", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, `attachment; filename="Trip plan.md"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "- pack", readBody(t, resp))

	resp = do(t, http.MethodGet, base+"html", "")
	assert.Contains(t, readBody(t, resp), "<ul><li>pack</li></ul>")

	resp = do(t, http.MethodGet, base+"pdf", "")
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = do(t, http.MethodGet, base+"docx", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDeleteAll(t *testing.T) {
	srv, hook := newTestServer(t)
	do(t, http.MethodPost, srv.URL+"/api/notes", `{"title":"a"}`)
	do(t, http.MethodPost, srv.URL+"/api/notes", `{"title":"b"}`)

	resp := do(t, http.MethodDelete, srv.URL+"/api/notes", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/notes", "")
	assert.Equal(t, "[]\n", readBody(t, resp))

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "all notes deleted" {
			warned = true
		}
	}
	assert.True(t, warned)
}
