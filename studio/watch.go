package studio

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces editor save bursts (write + rename chains)
// into one change notification per path.
const debounceDelay = 250 * time.Millisecond

// Watch monitors dir and calls onChange with the path of every created
// or written file, debounced per path. It blocks until ctx is done or
// the watcher fails. Chmod events and editor temp files are ignored.
func (s *Studio) Watch(ctx context.Context, dir string, onChange func(path string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("studio: create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("studio: watch %s: %w", dir, err)
	}
	s.log.Info("watching", "dir", dir)

	var mu sync.Mutex
	timers := make(map[string]*time.Timer)
	defer func() {
		mu.Lock()
		defer mu.Unlock()
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if isTempFile(event.Name) {
				continue
			}
			path := event.Name
			s.log.Debug("fs event", "op", event.Op.String(), "path", path)

			mu.Lock()
			if t, exists := timers[path]; exists {
				t.Reset(debounceDelay)
			} else {
				timers[path] = time.AfterFunc(debounceDelay, func() {
					mu.Lock()
					delete(timers, path)
					mu.Unlock()
					if ctx.Err() == nil {
						onChange(path)
					}
				})
			}
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watcher error", "err", err)
		}
	}
}

// isTempFile reports editor scratch files that should never trigger a
// render.
func isTempFile(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") ||
		strings.HasSuffix(base, "~") ||
		strings.HasSuffix(base, ".swp") ||
		strings.HasSuffix(base, ".tmp")
}
