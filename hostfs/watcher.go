package hostfs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/LegacyCodeHQ/vfsgraph/vfs"
)

// Watcher applies disk changes under root to a store, one event at a time.
// The store is only touched from the goroutine running Run.
type Watcher struct {
	store   *vfs.Store
	root    string
	opts    *options
	watcher *fsnotify.Watcher
}

// NewWatcher watches every directory under root that Load would walk.
func NewWatcher(store *vfs.Store, root string, opts ...Option) (*Watcher, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{store: store, root: root, opts: newOptions(opts), watcher: fsWatcher}
	if err := w.addWatchDirs(root, fsWatcher.Add); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch directories: %w", err)
	}
	return w, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Run applies events until ctx is done or the watcher is closed. changed is
// called with the store paths modified since the last call, once no event has
// arrived for the debounce interval, and once more for anything still pending
// when Run returns.
func (w *Watcher) Run(ctx context.Context, changed func(storePaths []string)) error {
	return w.run(ctx, w.watcher.Events, w.watcher.Errors, changed)
}

func (w *Watcher) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, changed func(storePaths []string)) error {
	var pending []string
	timer := time.NewTimer(w.opts.debounce)
	stopTimer(timer)

	flush := func() {
		if len(pending) > 0 && changed != nil {
			changed(pending)
		}
		pending = nil
	}

	for {
		select {
		case <-ctx.Done():
			stopTimer(timer)
			flush()
			return nil

		case event, ok := <-events:
			if !ok {
				flush()
				return nil
			}
			storePath, applied := w.apply(event)
			if !applied {
				continue
			}
			if !slices.Contains(pending, storePath) {
				pending = append(pending, storePath)
			}
			if w.opts.debounce <= 0 {
				flush()
				continue
			}
			stopTimer(timer)
			timer.Reset(w.opts.debounce)

		case <-timer.C:
			flush()

		case err, ok := <-errs:
			if !ok {
				flush()
				return nil
			}
			w.opts.logger.Warn("watcher error", "error", err)
		}
	}
}

func stopTimer(t *time.Timer) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}

// apply mirrors one fsnotify event into the store.
func (w *Watcher) apply(event fsnotify.Event) (string, bool) {
	storePath, err := StorePath(w.root, event.Name)
	if err != nil || storePath == "/" || w.skipped(storePath) {
		return "", false
	}

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		// fsnotify reports the destination of a rename as a separate Create.
		return storePath, w.store.DeleteEntry(storePath)

	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		info, err := os.Stat(event.Name)
		if err != nil {
			return "", false
		}
		if info.IsDir() {
			return storePath, w.addDirectory(event.Name, storePath)
		}
		return storePath, w.writeFile(event.Name, storePath)
	}
	return "", false
}

func (w *Watcher) skipped(storePath string) bool {
	for _, part := range strings.Split(storePath, "/") {
		if w.opts.skippedDirs[part] {
			return true
		}
	}
	return w.store.IsExcluded(storePath)
}

func (w *Watcher) writeFile(fsPath, storePath string) bool {
	if !w.opts.wantsFile(filepath.Base(fsPath)) {
		return false
	}
	content, err := os.ReadFile(fsPath)
	if err != nil {
		w.opts.logger.Warn("failed to read file", "path", fsPath, "error", err)
		return false
	}

	if file, ok := w.store.File(storePath); ok {
		if file.Content == string(content) {
			return false
		}
		_, ok = w.store.UpdateFile(storePath, string(content))
		return ok
	}
	if !w.ensureFolders(vfs.ParentPath(storePath)) {
		return false
	}
	_, ok := w.store.AddFile(storePath, string(content))
	return ok
}

func (w *Watcher) addDirectory(fsPath, storePath string) bool {
	if !w.ensureFolders(storePath) {
		return false
	}
	if _, err := loadDir(w.store, w.root, fsPath, w.opts); err != nil {
		w.opts.logger.Warn("failed to load directory", "path", fsPath, "error", err)
	}
	if err := w.addWatchDirs(fsPath, w.watcher.Add); err != nil {
		w.opts.logger.Warn("failed to watch directory", "path", fsPath, "error", err)
	}
	return true
}

// ensureFolders creates storePath and any missing ancestors.
func (w *Watcher) ensureFolders(storePath string) bool {
	if w.store.IsFolder(storePath) {
		return true
	}
	if !w.ensureFolders(vfs.ParentPath(storePath)) {
		return false
	}
	_, ok := w.store.AddFolder(storePath)
	return ok
}

func (w *Watcher) addWatchDirs(dir string, add func(string) error) error {
	return filepath.WalkDir(dir, func(fsPath string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if fsPath != w.root && w.opts.skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := add(fsPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
}
