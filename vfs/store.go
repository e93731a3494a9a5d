package vfs

import (
	"log/slog"
	"sort"
	"strings"
)

// DefaultExcludedNames lists path segments that may never be created in the tree.
var DefaultExcludedNames = []string{".env", ".gitignore", ".ssh", "node_modules"}

// Store is an in-memory file tree keyed by absolute path.
//
// A Store is not safe for concurrent use; the host serializes calls on one goroutine.
type Store struct {
	entries  map[string]*node
	clock    uint64
	excluded map[string]bool
	logger   *slog.Logger

	listeners      []subscription
	nextListenerID int
	dispatching    bool
	pending        []ChangeEvent
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for structural warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithExcludedNames replaces the reserved path segment list.
func WithExcludedNames(names ...string) Option {
	return func(s *Store) {
		s.excluded = make(map[string]bool, len(names))
		for _, name := range names {
			if name = strings.TrimSpace(name); name != "" {
				s.excluded[name] = true
			}
		}
	}
}

// NewStore returns a store containing only the root folder.
func NewStore(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]*node),
		logger:  slog.Default(),
	}
	WithExcludedNames(DefaultExcludedNames...)(s)
	for _, opt := range opts {
		opt(s)
	}

	s.entries["/"] = &node{
		meta: Meta{Path: "/", Name: "", Stamp: s.tick()},
		kind: KindFolder,
	}
	return s
}

func (s *Store) tick() uint64 {
	s.clock++
	return s.clock
}

// IsExcluded reports whether any segment of p is a reserved name.
func (s *Store) IsExcluded(p string) bool {
	for _, part := range strings.Split(p, "/") {
		if s.excluded[part] {
			return true
		}
	}
	return false
}

// AddFile creates a file. If a file already exists at p, the call is treated as UpdateFile.
func (s *Store) AddFile(p, content string) (File, bool) {
	p, ok := CleanPath(p)
	if !ok || p == "/" {
		s.logger.Warn("invalid file path", "path", p)
		return File{}, false
	}
	if s.IsExcluded(p) {
		s.logger.Warn("attempted to add excluded file", "path", p)
		return File{}, false
	}
	if existing, ok := s.entries[p]; ok {
		if existing.kind != KindFile {
			s.logger.Warn("path is occupied by a folder", "path", p)
			return File{}, false
		}
		s.logger.Warn("file already exists, updating instead", "path", p)
		return s.UpdateFile(p, content)
	}

	parent, ok := s.parentFolder(p)
	if !ok {
		return File{}, false
	}

	n := &node{
		meta:    Meta{Path: p, Name: baseName(p), Stamp: s.tick()},
		kind:    KindFile,
		content: content,
	}
	s.entries[p] = n
	parent.children = append(parent.children, n.meta.Name)

	s.emit(ChangeEvent{Type: EventCreate, Path: p, Content: content})
	return n.snapshot().(File), true
}

// AddFolder creates a folder. An existing folder at p is returned unchanged without an event.
func (s *Store) AddFolder(p string) (Folder, bool) {
	p, ok := CleanPath(p)
	if !ok {
		s.logger.Warn("invalid folder path", "path", p)
		return Folder{}, false
	}
	if s.IsExcluded(p) {
		s.logger.Warn("attempted to add excluded folder", "path", p)
		return Folder{}, false
	}
	if existing, ok := s.entries[p]; ok {
		if existing.kind != KindFolder {
			s.logger.Warn("path is occupied by a file", "path", p)
			return Folder{}, false
		}
		return existing.snapshot().(Folder), true
	}

	parent, ok := s.parentFolder(p)
	if !ok {
		return Folder{}, false
	}

	n := &node{
		meta: Meta{Path: p, Name: baseName(p), Stamp: s.tick()},
		kind: KindFolder,
	}
	s.entries[p] = n
	parent.children = append(parent.children, n.meta.Name)

	s.emit(ChangeEvent{Type: EventCreate, Path: p})
	return n.snapshot().(Folder), true
}

// UpdateFile replaces the content of an existing file.
func (s *Store) UpdateFile(p, content string) (File, bool) {
	p, _ = CleanPath(p)
	n, ok := s.entries[p]
	if !ok || n.kind != KindFile {
		s.logger.Warn("file not found for update", "path", p)
		return File{}, false
	}

	n.content = content
	n.meta.Stamp = s.tick()

	s.emit(ChangeEvent{Type: EventUpdate, Path: p, Content: content})
	return n.snapshot().(File), true
}

// DeleteEntry removes the entry at p and, for folders, every descendant.
// It returns false when nothing exists at p.
func (s *Store) DeleteEntry(p string) bool {
	p, _ = CleanPath(p)
	if p == "/" {
		s.logger.Warn("the root folder cannot be deleted")
		return false
	}
	n, ok := s.entries[p]
	if !ok {
		s.logger.Warn("entry not found for deletion", "path", p)
		return false
	}

	if parent, ok := s.entries[ParentPath(p)]; ok && parent.kind == KindFolder {
		parent.removeChild(n.meta.Name)
	}

	if n.kind == KindFolder {
		for key := range s.entries {
			if IsWithin(key, p) {
				delete(s.entries, key)
			}
		}
	}
	delete(s.entries, p)

	s.emit(ChangeEvent{Type: EventDelete, Path: p})
	return true
}

// RenameEntry moves the entry at oldPath, together with any descendants, to newPath.
// The move is applied completely before the single rename event is emitted.
func (s *Store) RenameEntry(oldPath, newPath string) (Entry, bool) {
	oldPath, okOld := CleanPath(oldPath)
	newPath, okNew := CleanPath(newPath)
	if !okOld || !okNew || oldPath == "/" || newPath == "/" {
		s.logger.Warn("invalid rename", "path", oldPath, "newPath", newPath)
		return nil, false
	}
	if s.IsExcluded(newPath) {
		s.logger.Warn("attempted to rename to an excluded path", "newPath", newPath)
		return nil, false
	}
	if _, exists := s.entries[newPath]; exists {
		s.logger.Warn("rename destination already exists", "newPath", newPath)
		return nil, false
	}
	n, ok := s.entries[oldPath]
	if !ok {
		s.logger.Warn("entry not found for rename", "path", oldPath)
		return nil, false
	}
	if n.kind == KindFolder && IsWithin(newPath, oldPath) {
		s.logger.Warn("cannot move a folder into itself", "path", oldPath, "newPath", newPath)
		return nil, false
	}
	newParent, ok := s.parentFolder(newPath)
	if !ok {
		return nil, false
	}

	if oldParent, ok := s.entries[ParentPath(oldPath)]; ok && oldParent.kind == KindFolder {
		oldParent.removeChild(n.meta.Name)
	}
	newName := baseName(newPath)
	newParent.children = append(newParent.children, newName)

	stamp := s.tick()
	delete(s.entries, oldPath)
	n.meta.Path = newPath
	n.meta.Name = newName
	n.meta.Stamp = stamp
	s.entries[newPath] = n

	if n.kind == KindFolder {
		var descendants []string
		for key := range s.entries {
			if IsWithin(key, oldPath) {
				descendants = append(descendants, key)
			}
		}
		for _, key := range descendants {
			child := s.entries[key]
			delete(s.entries, key)
			child.meta.Path = newPath + strings.TrimPrefix(key, oldPath)
			child.meta.Stamp = stamp
			s.entries[child.meta.Path] = child
		}
	}

	s.emit(ChangeEvent{Type: EventRename, Path: oldPath, NewPath: newPath})
	return n.snapshot(), true
}

func (s *Store) parentFolder(p string) (*node, bool) {
	parent, ok := s.entries[ParentPath(p)]
	if !ok || parent.kind != KindFolder {
		s.logger.Warn("parent folder not found", "path", p, "parent", ParentPath(p))
		return nil, false
	}
	return parent, true
}

// Entry returns a snapshot of the entry at p.
func (s *Store) Entry(p string) (Entry, bool) {
	p, _ = CleanPath(p)
	n, ok := s.entries[p]
	if !ok {
		return nil, false
	}
	return n.snapshot(), true
}

// File returns the file at p.
func (s *Store) File(p string) (File, bool) {
	p, _ = CleanPath(p)
	n, ok := s.entries[p]
	if !ok || n.kind != KindFile {
		return File{}, false
	}
	return n.snapshot().(File), true
}

// Folder returns the folder at p.
func (s *Store) Folder(p string) (Folder, bool) {
	p, _ = CleanPath(p)
	n, ok := s.entries[p]
	if !ok || n.kind != KindFolder {
		return Folder{}, false
	}
	return n.snapshot().(Folder), true
}

// IsFile reports whether a file exists at p.
func (s *Store) IsFile(p string) bool {
	n, ok := s.entries[p]
	return ok && n.kind == KindFile
}

// IsFolder reports whether a folder exists at p.
func (s *Store) IsFolder(p string) bool {
	n, ok := s.entries[p]
	return ok && n.kind == KindFolder
}

// Entries returns snapshots of every entry, sorted by path.
func (s *Store) Entries() []Entry {
	paths := make([]string, 0, len(s.entries))
	for p := range s.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	result := make([]Entry, 0, len(paths))
	for _, p := range paths {
		result = append(result, s.entries[p].snapshot())
	}
	return result
}

// FilePaths returns the paths of all files, sorted.
func (s *Store) FilePaths() []string {
	paths := make([]string, 0, len(s.entries))
	for p, n := range s.entries {
		if n.kind == KindFile {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of entries, including the root.
func (s *Store) Len() int {
	return len(s.entries)
}
