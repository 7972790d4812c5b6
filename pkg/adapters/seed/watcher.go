package seed

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 50 * time.Millisecond

// ChangeFunc receives the records of a seed file that was written.
type ChangeFunc func(collection string, records Records)

// Watch re-parses seed files below dir whenever they are created or written
// and passes their contents to fn. Removing a seed file leaves collections
// untouched. Errors (unparsable files, watcher failures) go to onError when
// set, otherwise to the logger. Watching stops when ctx is done.
func (l *Loader) Watch(ctx context.Context, dir string, fn ChangeFunc, onError func(error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := addRecursive(watcher, dir); err != nil {
		_ = watcher.Close()
		return err
	}

	w := &seedWatcher{
		loader:   l,
		dir:      dir,
		watcher:  watcher,
		onChange: fn,
		onError:  onError,
		timers:   make(map[string]*time.Timer),
	}

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.report(fmt.Errorf("seed watcher panic: %w", err))
	}))
	return nil
}

type seedWatcher struct {
	loader   *Loader
	dir      string
	watcher  *fsnotify.Watcher
	onChange ChangeFunc
	onError  func(error)

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func (w *seedWatcher) run(ctx context.Context) error {
	defer w.watcher.Close()
	defer w.stopTimers()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.report(err)
		}
	}
}

func (w *seedWatcher) handle(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	if event.Has(fsnotify.Create) && isDir(event.Name) {
		if err := addRecursive(w.watcher, event.Name); err != nil {
			w.report(err)
		}
		return
	}

	rel, err := filepath.Rel(w.dir, event.Name)
	if err != nil || !w.loader.Matches(rel) {
		return
	}

	if w.loader.logger != nil {
		w.loader.logger.Debug("seed file changed", "path", event.Name)
	}
	w.debounce(ctx, event.Name)
}

// debounce coalesces bursts of writes to the same file (editors often
// truncate then write) into a single reload.
func (w *seedWatcher) debounce(ctx context.Context, file string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[file]; ok {
		t.Stop()
	}
	w.timers[file] = time.AfterFunc(debounceDelay, func() {
		w.mu.Lock()
		delete(w.timers, file)
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		collection, records, err := w.loader.LoadFile(file)
		if err != nil {
			w.report(err)
			return
		}
		w.onChange(collection, records)
	})
}

func (w *seedWatcher) stopTimers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for file, t := range w.timers {
		t.Stop()
		delete(w.timers, file)
	}
}

func (w *seedWatcher) report(err error) {
	if w.onError != nil {
		w.onError(err)
		return
	}
	if w.loader.logger != nil {
		w.loader.logger.Error("seed watcher error", "error", err)
	}
}

func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := watcher.Add(p); err != nil {
				return fmt.Errorf("failed to watch %s: %w", p, err)
			}
		}
		return nil
	})
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
