// Package hostfs mirrors a directory on disk into a vfs.Store.
package hostfs

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/LegacyCodeHQ/vfsgraph/vfs"
)

// ErrNotDirectory is returned when the project root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// DefaultSkippedDirs are directory names never walked or watched.
var DefaultSkippedDirs = []string{
	".git",
	"node_modules",
	".dart_tool",
	"build",
	"dist",
	"__pycache__",
	".gradle",
	".idea",
	".vscode",
}

// DefaultDebounce is how long the Watcher waits for more events before reporting.
const DefaultDebounce = 300 * time.Millisecond

type options struct {
	debounce    time.Duration
	skippedDirs map[string]bool
	extensions  map[string]bool
	logger      *slog.Logger
}

// Option configures Load and NewWatcher.
type Option func(*options)

// WithSkippedDirs replaces DefaultSkippedDirs.
func WithSkippedDirs(names ...string) Option {
	return func(o *options) {
		o.skippedDirs = toSet(names)
	}
}

// WithExtensions limits mirrored files to the given extensions. All files are
// mirrored when no extension is given.
func WithExtensions(extensions ...string) Option {
	return func(o *options) {
		o.extensions = toSet(extensions)
	}
}

// WithDebounce sets the quiet period before the Watcher reports changes. Zero
// reports after every event.
func WithDebounce(d time.Duration) Option {
	return func(o *options) {
		o.debounce = d
	}
}

// WithLogger sets the logger for files that could not be read.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		debounce:    DefaultDebounce,
		skippedDirs: toSet(DefaultSkippedDirs),
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func (o *options) wantsFile(name string) bool {
	return len(o.extensions) == 0 || o.extensions[path.Ext(name)]
}

// Load walks root and adds its folders and files to store. Store paths are
// relative to root with a leading "/". It returns the number of files added.
func Load(store *vfs.Store, root string, opts ...Option) (int, error) {
	info, err := os.Stat(root)
	if err != nil {
		return 0, fmt.Errorf("failed to open project root: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	return loadDir(store, root, root, newOptions(opts))
}

func loadDir(store *vfs.Store, root, dir string, o *options) (int, error) {
	loaded := 0
	err := filepath.WalkDir(dir, func(fsPath string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}

		storePath, err := StorePath(root, fsPath)
		if err != nil {
			return err
		}

		if d.IsDir() {
			if fsPath != root && (o.skippedDirs[d.Name()] || store.IsExcluded(storePath)) {
				return filepath.SkipDir
			}
			if _, ok := store.AddFolder(storePath); !ok {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !o.wantsFile(d.Name()) || store.IsExcluded(storePath) {
			return nil
		}
		content, err := os.ReadFile(fsPath)
		if err != nil {
			o.logger.Warn("failed to read file", "path", fsPath, "error", err)
			return nil
		}
		if _, ok := store.AddFile(storePath, string(content)); ok {
			loaded++
		}
		return nil
	})
	if err != nil {
		return loaded, fmt.Errorf("failed to load %s: %w", dir, err)
	}
	return loaded, nil
}

// StorePath maps a path under root to its store path.
func StorePath(root, fsPath string) (string, error) {
	rel, err := filepath.Rel(root, fsPath)
	if err != nil {
		return "", fmt.Errorf("failed to relate %s to %s: %w", fsPath, root, err)
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return "", fmt.Errorf("%s is outside %s", fsPath, root)
	}
	if rel == "." {
		return "/", nil
	}
	return "/" + rel, nil
}

// HostPath maps a store path back to its location under root.
func HostPath(root, storePath string) string {
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(storePath, "/")))
}
