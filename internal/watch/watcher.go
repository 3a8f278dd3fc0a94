// Package watch reports changes inside a template directory tree
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultExclude skips hidden files and editor leftovers
var DefaultExclude = []string{".*", "*~", "*.swp"}

// Watcher watches a directory tree and calls onChange for every relevant event
type Watcher struct {
	watcher  *fsnotify.Watcher
	exclude  []string
	onChange func(path string, op fsnotify.Op)
	logger   zerolog.Logger
}

// New creates a watcher. A nil exclude means DefaultExclude.
func New(exclude []string, onChange func(path string, op fsnotify.Op), logger zerolog.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if exclude == nil {
		exclude = DefaultExclude
	}

	return &Watcher{
		watcher:  w,
		exclude:  exclude,
		onChange: onChange,
		logger:   logger,
	}, nil
}

// AddDirectory recursively adds a directory to the watcher
func (w *Watcher) AddDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if path != dir && w.excluded(path) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// fsnotify watches directories, files are reported through their parent
		if info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", path, err)
			}
		}

		return nil
	})
}

// Start blocks until ctx is done, dispatching change events
func (w *Watcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if w.excluded(event.Name) {
				continue
			}

			// New directories, e.g. a new template set, are picked up as they appear
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.AddDirectory(event.Name); err != nil {
						w.logger.Warn().Err(err).Str("path", event.Name).Msg("failed to watch new directory")
					}
				}
			}

			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.onChange(event.Name, event.Op)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				w.logger.Warn().Err(err).Msg("watcher error")
			}
		}
	}
}

func (w *Watcher) excluded(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range w.exclude {
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}
	return false
}

// Close stops the watcher
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
