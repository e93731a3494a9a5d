package vfs

import (
	"path"

	"github.com/google/uuid"
)

// Node is the host's view of a tree item, identified by a stable ID rather than a path.
type Node struct {
	ID       string
	Name     string
	Folder   bool
	Content  string
	Children []Node
}

// Bridge maps host node IDs onto store paths and keeps the mapping consistent
// across renames and deletes.
type Bridge struct {
	store    *Store
	idToPath map[string]string
	pathToID map[string]string
}

// NewBridge returns a bridge over store with no mapped nodes.
func NewBridge(store *Store) *Bridge {
	return &Bridge{
		store:    store,
		idToPath: make(map[string]string),
		pathToID: make(map[string]string),
	}
}

// Store returns the underlying store.
func (b *Bridge) Store() *Store {
	return b.store
}

// Sync replaces the whole tree with nodes. Nodes without an ID are assigned one.
func (b *Bridge) Sync(nodes []Node) {
	clear(b.idToPath)
	clear(b.pathToID)

	if root, ok := b.store.Folder("/"); ok {
		for _, name := range root.Children {
			b.store.DeleteEntry(path.Join("/", name))
		}
	}

	b.addNodes("/", nodes)
}

func (b *Bridge) addNodes(parentPath string, nodes []Node) {
	for _, n := range nodes {
		p := path.Join(parentPath, n.Name)
		id := n.ID
		if id == "" {
			id = uuid.NewString()
		}

		var ok bool
		if n.Folder {
			_, ok = b.store.AddFolder(p)
		} else {
			_, ok = b.store.AddFile(p, n.Content)
		}
		if !ok {
			continue
		}

		b.track(id, p)
		if n.Folder {
			b.addNodes(p, n.Children)
		}
	}
}

// CreateFile adds a file under the folder identified by parentID (the root when empty)
// and returns the new node's ID.
func (b *Bridge) CreateFile(parentID, name, content string) (string, bool) {
	p, ok := b.childPath(parentID, name)
	if !ok {
		return "", false
	}
	if _, ok := b.store.AddFile(p, content); !ok {
		return "", false
	}
	if id, ok := b.pathToID[p]; ok {
		return id, true
	}
	id := uuid.NewString()
	b.track(id, p)
	return id, true
}

// CreateFolder adds a folder under the folder identified by parentID and returns its ID.
func (b *Bridge) CreateFolder(parentID, name string) (string, bool) {
	p, ok := b.childPath(parentID, name)
	if !ok {
		return "", false
	}
	if _, ok := b.store.AddFolder(p); !ok {
		return "", false
	}
	if id, ok := b.pathToID[p]; ok {
		return id, true
	}
	id := uuid.NewString()
	b.track(id, p)
	return id, true
}

// UpdateFileContent replaces the content of the file identified by id.
func (b *Bridge) UpdateFileContent(id, content string) bool {
	p, ok := b.idToPath[id]
	if !ok {
		return false
	}
	_, ok = b.store.UpdateFile(p, content)
	return ok
}

// RenameNode renames the node in place, keeping it in the same folder.
func (b *Bridge) RenameNode(id, newName string) bool {
	oldPath, ok := b.idToPath[id]
	if !ok {
		return false
	}
	newPath := path.Join(ParentPath(oldPath), newName)

	if _, ok := b.store.RenameEntry(oldPath, newPath); !ok {
		return false
	}

	b.untrackPath(oldPath)
	b.track(id, newPath)
	for childID, childPath := range b.idToPath {
		if IsWithin(childPath, oldPath) {
			moved := newPath + childPath[len(oldPath):]
			delete(b.pathToID, childPath)
			b.idToPath[childID] = moved
			b.pathToID[moved] = childID
		}
	}
	return true
}

// DeleteNode removes the node and forgets the IDs of its descendants.
func (b *Bridge) DeleteNode(id string) bool {
	p, ok := b.idToPath[id]
	if !ok {
		return false
	}
	if !b.store.DeleteEntry(p) {
		return false
	}

	b.untrackPath(p)
	for childID, childPath := range b.idToPath {
		if IsWithin(childPath, p) {
			delete(b.idToPath, childID)
			delete(b.pathToID, childPath)
		}
	}
	return true
}

// FileContent returns the content of the file identified by id.
func (b *Bridge) FileContent(id string) (string, bool) {
	p, ok := b.idToPath[id]
	if !ok {
		return "", false
	}
	f, ok := b.store.File(p)
	if !ok {
		return "", false
	}
	return f.Content, true
}

// PathByID returns the store path for a node ID.
func (b *Bridge) PathByID(id string) (string, bool) {
	p, ok := b.idToPath[id]
	return p, ok
}

// IDByPath returns the node ID for a store path.
func (b *Bridge) IDByPath(p string) (string, bool) {
	id, ok := b.pathToID[p]
	return id, ok
}

func (b *Bridge) childPath(parentID, name string) (string, bool) {
	parentPath := "/"
	if parentID != "" {
		p, ok := b.idToPath[parentID]
		if !ok {
			return "", false
		}
		parentPath = p
	}
	return path.Join(parentPath, name), true
}

func (b *Bridge) track(id, p string) {
	b.idToPath[id] = p
	b.pathToID[p] = id
}

func (b *Bridge) untrackPath(p string) {
	if id, ok := b.pathToID[p]; ok {
		delete(b.pathToID, p)
		delete(b.idToPath, id)
	}
}
