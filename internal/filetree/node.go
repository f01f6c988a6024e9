package filetree

import (
	"path"
	"sort"
	"strings"
)

// Node represents a file or directory in the tree, keyed by its
// root-relative slash path.
type Node struct {
	Path     string
	IsDir    bool
	Expanded bool
	Children []*Node
}

func NewNode(p string, isDir bool) *Node {
	return &Node{Path: p, IsDir: isDir}
}

// Name is the final path segment.
func (n *Node) Name() string {
	return path.Base(n.Path)
}

// Insert adds target (a path relative to the tree root) below n, creating
// intermediate directories as needed. Inserting an existing path is a no-op.
func (n *Node) Insert(target string) {
	n.insert(splitPath(target))
}

func (n *Node) insert(segments []string) {
	if len(segments) == 0 {
		return
	}

	childPath := joinPath(n.Path, segments[0])
	rest := segments[1:]

	child := n.child(childPath)
	if child == nil {
		child = NewNode(childPath, len(rest) > 0)
		n.Children = append(n.Children, child)
	} else if len(rest) > 0 {
		// a path seen first as a file may later turn out to be a directory
		child.IsDir = true
	}

	child.insert(rest)
	n.sortChildren()
}

func (n *Node) child(p string) *Node {
	for _, c := range n.Children {
		if c.Path == p {
			return c
		}
	}
	return nil
}

// sortChildren orders directories before files, then by name.
func (n *Node) sortChildren() {
	sort.SliceStable(n.Children, func(i, j int) bool {
		a, b := n.Children[i], n.Children[j]
		if a.IsDir != b.IsDir {
			return a.IsDir
		}
		return a.Name() < b.Name()
	})
}

// Find returns the node whose path is target, descending only into children
// that are target itself or one of its ancestors.
func (n *Node) Find(target string) *Node {
	if n.Path == target {
		return n
	}
	for _, c := range n.Children {
		if !contains(c.Path, target) {
			continue
		}
		if found := c.Find(target); found != nil {
			return found
		}
	}
	return nil
}

// contains reports whether target is dir or nested below it.
func contains(dir, target string) bool {
	if dir == target {
		return true
	}
	return strings.HasPrefix(target, dir+"/")
}

func splitPath(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s == "" || s == "." {
			continue
		}
		segments = append(segments, s)
	}
	return segments
}

func joinPath(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}
