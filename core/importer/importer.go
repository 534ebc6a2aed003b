// Package importer turns files and web pages into notes.
// Markdown and text files are taken verbatim; HTML files and URLs go
// through extract -> normalize: fetch, strip noise, convert to Markdown.
package importer

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/notepipe/core"
	"github.com/gaurav-prasanna/notepipe/core/extract"
)

// mdSuffix is stripped from uploaded file names to form the title.
var mdSuffix = regexp.MustCompile(`(?i)\.md$`)

// Importer builds notes from local files and URLs.
type Importer struct {
	fetcher    core.Fetcher
	extractor  core.Extractor
	normalizer core.Normalizer
}

// New creates an Importer from its pipeline stages.
func New(fetcher core.Fetcher, extractor core.Extractor, normalizer core.Normalizer) *Importer {
	return &Importer{fetcher: fetcher, extractor: extractor, normalizer: normalizer}
}

// Import loads source, a file path or http(s) URL, as an unsaved note.
// A non-empty title overrides the derived one.
func (im *Importer) Import(ctx context.Context, source, title string) (core.Note, error) {
	var (
		note core.Note
		err  error
	)
	if isURL(source) {
		note, err = im.importURL(ctx, source)
	} else {
		note, err = im.importFile(source)
	}
	if err != nil {
		return core.Note{}, err
	}
	if t := strings.TrimSpace(title); t != "" {
		note.Title = t
	}
	return note, nil
}

func (im *Importer) importFile(path string) (core.Note, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Note{}, fmt.Errorf("reading %s: %w", path, err)
	}
	base := filepath.Base(path)

	switch strings.ToLower(filepath.Ext(base)) {
	case ".html", ".htm":
		note, err := im.fromHTML(string(data))
		if err != nil {
			return core.Note{}, fmt.Errorf("importing %s: %w", path, err)
		}
		if note.Title == "" {
			note.Title = strings.TrimSuffix(base, filepath.Ext(base))
		}
		return note, nil
	default:
		return core.Note{
			Title:   mdSuffix.ReplaceAllString(base, ""),
			Content: string(data),
		}, nil
	}
}

func (im *Importer) importURL(ctx context.Context, rawURL string) (core.Note, error) {
	if isBinaryAsset(rawURL) {
		return core.Note{}, fmt.Errorf("%s is not a web page", rawURL)
	}
	rawURL = normalizeURL(rawURL)
	result, err := im.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return core.Note{}, fmt.Errorf("fetch: %w", err)
	}
	note, err := im.fromHTML(result.HTML)
	if err != nil {
		return core.Note{}, err
	}
	if note.Title == "" {
		if u, err := url.Parse(rawURL); err == nil {
			note.Title = u.Host
		}
	}
	return note, nil
}

func (im *Importer) fromHTML(html string) (core.Note, error) {
	content, err := im.extractor.Extract(html)
	if err != nil {
		return core.Note{}, fmt.Errorf("extract: %w", err)
	}
	markdown, err := im.normalizer.Normalize(content)
	if err != nil {
		return core.Note{}, fmt.Errorf("normalize: %w", err)
	}
	return core.Note{Title: extract.Title(html), Content: markdown}, nil
}
