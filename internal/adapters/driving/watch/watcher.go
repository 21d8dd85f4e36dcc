// Package watch drives document ingestion from a drop folder.
// Files created or modified in the watched directory are uploaded
// through the document service.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/askpaper/askpaper-cli/internal/core/ports/driving"
	"github.com/askpaper/askpaper-cli/internal/logger"
)

// debounceWindow suppresses duplicate uploads when a single save
// produces both a Create and a Write event.
const debounceWindow = 2 * time.Second

// Watcher uploads files dropped into a directory.
type Watcher struct {
	dir       string
	documents driving.DocumentService
	fsw       *fsnotify.Watcher

	mu       sync.Mutex
	lastSeen map[string]time.Time
}

// New creates a watcher for the given directory.
func New(dir string, documents driving.DocumentService) (*Watcher, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("watch dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch dir: %s is not a directory", dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:       dir,
		documents: documents,
		fsw:       fsw,
		lastSeen:  make(map[string]time.Time),
	}, nil
}

// Run processes filesystem events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	logger.Info("Watching %s for documents", w.dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// handleEvent uploads the file behind a create or write event.
func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil || info.IsDir() {
		return
	}

	if !w.mark(event.Name) {
		return
	}

	content, err := os.ReadFile(event.Name)
	if err != nil {
		logger.Warn("Failed to read %s: %v", event.Name, err)
		return
	}

	id, err := w.documents.Upload(ctx, name, content)
	if err != nil {
		logger.Warn("Upload of %s rejected: %v", name, err)
		return
	}
	logger.Info("Uploaded %s as document %s", name, id)
}

// mark records the path and reports whether it is outside the
// debounce window.
func (w *Watcher) mark(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	if last, ok := w.lastSeen[path]; ok && now.Sub(last) < debounceWindow {
		return false
	}
	w.lastSeen[path] = now
	return true
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
