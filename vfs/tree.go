package vfs

import "path"

// TreeNode is a nested view of an entry and its descendants.
type TreeNode struct {
	Entry    Entry
	Children []*TreeNode
}

// Tree builds the nested view rooted at p, following each folder's child order.
func (s *Store) Tree(p string) (*TreeNode, bool) {
	p, _ = CleanPath(p)
	n, ok := s.entries[p]
	if !ok {
		return nil, false
	}
	return s.buildTree(n), true
}

func (s *Store) buildTree(n *node) *TreeNode {
	tn := &TreeNode{Entry: n.snapshot()}
	if n.kind != KindFolder {
		return tn
	}

	for _, name := range n.children {
		child, ok := s.entries[path.Join(n.meta.Path, name)]
		if !ok {
			continue
		}
		tn.Children = append(tn.Children, s.buildTree(child))
	}
	return tn
}

// Walk visits the node and its descendants depth first. Returning false from fn
// skips the children of that node.
func (t *TreeNode) Walk(fn func(*TreeNode) bool) {
	if t == nil || !fn(t) {
		return
	}
	for _, child := range t.Children {
		child.Walk(fn)
	}
}
