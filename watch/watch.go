// Package watch re-renders a Markdown file whenever it changes on disk,
// the file-based counterpart of the editor's render-on-keystroke preview.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gaurav-prasanna/notepipe/core"
	"github.com/gaurav-prasanna/notepipe/core/export"
	"github.com/sirupsen/logrus"
)

// Options configure a Watcher.
type Options struct {
	// Debounce collapses bursts of events (editors often write a file in
	// several steps) into one render.
	Debounce time.Duration
	// Standalone wraps the fragment in a full HTML document.
	Standalone bool
}

// Watcher renders Src to Dst on every change.
type Watcher struct {
	previewer core.Previewer
	log       logrus.FieldLogger
	opts      Options
}

// New creates a Watcher.
func New(previewer core.Previewer, log logrus.FieldLogger, opts Options) *Watcher {
	return &Watcher{previewer: previewer, log: log, opts: opts}
}

// Run renders src to dst once, then again after every change, until ctx
// is cancelled. The parent directory is watched so that editors which
// save by renaming a temp file over src are picked up.
func (w *Watcher) Run(ctx context.Context, src, dst string) error {
	src, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", src, err)
	}
	if err := w.Render(src, dst); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()
	if err := fsw.Add(filepath.Dir(src)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(src), err)
	}
	w.log.WithFields(logrus.Fields{"src": src, "dst": dst}).Info("watching for changes")

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != src {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(w.opts.Debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("watcher error")
		case <-timer.C:
			if err := w.Render(src, dst); err != nil {
				// Keep watching: the file may be mid-save.
				w.log.WithError(err).Warn("render failed")
			}
		}
	}
}

// Render converts src once and writes the result to dst.
func (w *Watcher) Render(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	out := []byte(w.previewer.Render(string(data)))
	if w.opts.Standalone {
		title := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		out, err = export.Page(title, string(out))
		if err != nil {
			return err
		}
	}
	if err := os.WriteFile(dst, out, 0644); err != nil {
		return fmt.Errorf("writing file %s: %w", dst, err)
	}
	w.log.WithFields(logrus.Fields{"dst": dst, "bytes": len(out)}).Debug("rendered")
	return nil
}
