// Package file loads notebook documents from disk and watches them for
// changes. Serialization is delegated to encoding/json; the on-disk layout
// is whatever the document's producer wrote.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/nbtest/pkg/domain"
)

// Loader implements ports.NotebookLoader for a single .ipynb file.
type Loader struct {
	path     string
	debounce time.Duration
}

// LoaderOption configures the loader.
type LoaderOption func(*Loader)

// WithDebounce sets the quiet period applied to change notifications.
// Editors often write a file several times in quick succession.
func WithDebounce(d time.Duration) LoaderOption {
	return func(l *Loader) {
		l.debounce = d
	}
}

// NewLoader creates a loader for the given notebook path.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{
		path:     path,
		debounce: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the notebook path.
func (l *Loader) Path() string {
	return l.path
}

// Load reads and decodes the document. Each call returns a fresh copy.
func (l *Loader) Load() (*domain.Notebook, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read notebook: %w", err)
	}

	var nb domain.Notebook
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("decode notebook %s: %w", filepath.Base(l.path), err)
	}
	return &nb, nil
}

// Watch implements ports.Watchable.
// It signals the returned channel whenever the notebook file changes on disk.
// The watcher shuts down when ctx is canceled.
func (l *Loader) Watch(ctx context.Context) (<-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory: editors replace files via rename, which drops
	// a watch registered on the file itself.
	dir := filepath.Dir(l.path)
	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	changes := make(chan struct{}, 1)
	target := filepath.Clean(l.path)

	go func() {
		defer watcher.Close()
		defer close(changes)

		var timer *time.Timer
		defer func() {
			if timer != nil {
				timer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				// Debounce rapid successive writes into one signal.
				if timer != nil {
					timer.Stop()
				}
				timer = time.AfterFunc(l.debounce, func() {
					select {
					case changes <- struct{}{}:
					default:
					}
				})
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return changes, nil
}
