package vfs

import (
	"path"
	"slices"
	"strings"
)

// Kind distinguishes files from folders.
type Kind int

const (
	KindFile Kind = iota
	KindFolder
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindFolder:
		return "folder"
	default:
		return "unknown"
	}
}

// Meta holds the fields shared by every entry.
type Meta struct {
	Path string
	Name string
	// Stamp is bumped from the store's logical clock on every mutation of the entry.
	Stamp uint64
}

// Entry is either a File or a Folder. Callers switch on the concrete type.
type Entry interface {
	Info() Meta
	Kind() Kind
	isEntry()
}

// File is a snapshot of a file entry.
type File struct {
	Meta
	Content string
}

func (f File) Info() Meta { return f.Meta }
func (File) Kind() Kind   { return KindFile }
func (File) isEntry()     {}

// Folder is a snapshot of a folder entry. Children holds child names in insertion order.
type Folder struct {
	Meta
	Children []string
}

func (f Folder) Info() Meta { return f.Meta }
func (Folder) Kind() Kind   { return KindFolder }
func (Folder) isEntry()     {}

// node is the store's mutable representation; snapshots are handed out to callers.
type node struct {
	meta     Meta
	kind     Kind
	content  string
	children []string
}

func (n *node) snapshot() Entry {
	switch n.kind {
	case KindFile:
		return File{Meta: n.meta, Content: n.content}
	case KindFolder:
		return Folder{Meta: n.meta, Children: slices.Clone(n.children)}
	default:
		panic("vfs: unknown entry kind")
	}
}

func (n *node) removeChild(name string) {
	n.children = slices.DeleteFunc(n.children, func(child string) bool {
		return child == name
	})
}

// CleanPath normalizes p to an absolute, slash-separated path. It returns false for empty input.
func CleanPath(p string) (string, bool) {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	if p == "" {
		return "", false
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p), true
}

// ParentPath returns the folder containing p. The root is its own parent.
func ParentPath(p string) string {
	return path.Dir(p)
}

// IsWithin reports whether p is a strict descendant of folder.
func IsWithin(p, folder string) bool {
	if folder == "/" {
		return p != "/"
	}
	return strings.HasPrefix(p, folder+"/")
}

func baseName(p string) string {
	if p == "/" {
		return ""
	}
	return path.Base(p)
}
