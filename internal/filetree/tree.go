// Package filetree turns a flat list of repository-relative paths into a
// navigable tree and projects it into the rows a list view renders.
//
// A Tree owns its root node, the current projection and a single optional
// selection index. Every exported method leaves the three consistent: when
// the projection is empty nothing is selected, otherwise the selection is a
// valid row index. None of the operations fail; inputs that make no sense for
// the current state are no-ops. A Tree is not safe for concurrent use.
package filetree

import "path"

// Row is one visible entry of the projection.
type Row struct {
	Path     string
	Depth    int
	IsDir    bool
	Expanded bool
}

// Name is the final path segment of the row.
func (r Row) Name() string {
	return path.Base(r.Path)
}

type Options struct {
	// PreserveExpansion re-expands directories that were expanded before a
	// Rebuild and still exist after it.
	PreserveExpansion bool
}

type Tree struct {
	root     *Node
	rows     []Row
	selected int
	opts     Options
}

func New(opts Options) *Tree {
	root := NewNode("", true)
	root.Expanded = true
	return &Tree{root: root, selected: -1, opts: opts}
}

// Root returns the synthetic root node. Its own row is never projected.
func (t *Tree) Root() *Node {
	return t.root
}

// Rebuild replaces the whole tree with fresh nodes for paths.
func (t *Tree) Rebuild(paths []string) {
	var expanded []string
	if t.opts.PreserveExpansion {
		expanded = expandedPaths(t.root)
	}
	prevPath, prevIdx, had := t.selection()

	t.root.Children = nil
	for _, p := range paths {
		t.root.Insert(p)
	}
	for _, p := range expanded {
		if n := t.root.Find(p); n != nil && n != t.root && n.IsDir {
			n.Expanded = true
		}
	}

	t.project()
	if !had {
		t.Select(0)
		return
	}
	t.reconcile(prevPath, prevIdx)
}

// Rows returns the current projection. The slice must not be modified.
func (t *Tree) Rows() []Row {
	return t.rows
}

func (t *Tree) Len() int {
	return len(t.rows)
}

// Selected returns the selected row index, or false when nothing is selected.
func (t *Tree) Selected() (int, bool) {
	if t.selected < 0 {
		return 0, false
	}
	return t.selected, true
}

func (t *Tree) SelectedRow() (Row, bool) {
	if t.selected < 0 {
		return Row{}, false
	}
	return t.rows[t.selected], true
}

// Select moves the selection to i, clamped to the projection bounds.
func (t *Tree) Select(i int) {
	switch {
	case len(t.rows) == 0:
		t.selected = -1
	case i < 0:
		t.selected = 0
	case i >= len(t.rows):
		t.selected = len(t.rows) - 1
	default:
		t.selected = i
	}
}

// SelectPath selects the row for p if it is visible.
func (t *Tree) SelectPath(target string) bool {
	i := t.indexOf(target)
	if i < 0 {
		return false
	}
	t.selected = i
	return true
}

func (t *Tree) Next() {
	switch {
	case len(t.rows) == 0:
		t.selected = -1
	case t.selected < 0:
		t.selected = 0
	default:
		t.selected = (t.selected + 1) % len(t.rows)
	}
}

func (t *Tree) Previous() {
	switch {
	case len(t.rows) == 0:
		t.selected = -1
	case t.selected < 0:
		t.selected = 0
	case t.selected == 0:
		t.selected = len(t.rows) - 1
	default:
		t.selected--
	}
}

// ToggleExpand flips the expansion of the selected directory.
func (t *Tree) ToggleExpand() {
	row, ok := t.SelectedRow()
	if !ok || !row.IsDir {
		return
	}
	n := t.Find(row.Path)
	if n == nil {
		return
	}
	n.Expanded = !n.Expanded
	t.refresh()
}

// CollapseOrSelectParent collapses the selected directory if it is expanded.
// Otherwise it moves the selection to the nearest preceding row with a
// smaller depth, if there is one.
func (t *Tree) CollapseOrSelectParent() {
	row, ok := t.SelectedRow()
	if !ok {
		return
	}
	if row.IsDir {
		if n := t.Find(row.Path); n != nil && n.Expanded {
			n.Expanded = false
			t.refresh()
			return
		}
	}
	for i := t.selected - 1; i >= 0; i-- {
		if t.rows[i].Depth < row.Depth {
			t.selected = i
			return
		}
	}
}

// Expand expands the directory at p without a rebuild. It reports whether a
// directory was found.
func (t *Tree) Expand(p string) bool {
	return t.setExpanded(p, true)
}

// Collapse collapses the directory at p without a rebuild.
func (t *Tree) Collapse(p string) bool {
	return t.setExpanded(p, false)
}

func (t *Tree) setExpanded(p string, expanded bool) bool {
	n := t.Find(p)
	if n == nil || n == t.root || !n.IsDir {
		return false
	}
	if n.Expanded != expanded {
		n.Expanded = expanded
		t.refresh()
	}
	return true
}

// Find looks up the node for p.
func (t *Tree) Find(p string) *Node {
	return t.root.Find(p)
}

// refresh re-projects and keeps the selection on the same path when it is
// still visible, clamping the old index otherwise.
func (t *Tree) refresh() {
	prevPath, prevIdx, had := t.selection()
	t.project()
	if !had {
		t.selected = -1
		return
	}
	t.reconcile(prevPath, prevIdx)
}

func (t *Tree) reconcile(prevPath string, prevIdx int) {
	if i := t.indexOf(prevPath); i >= 0 {
		t.selected = i
		return
	}
	t.Select(prevIdx)
}

func (t *Tree) selection() (string, int, bool) {
	row, ok := t.SelectedRow()
	if !ok {
		return "", -1, false
	}
	return row.Path, t.selected, true
}

func (t *Tree) indexOf(p string) int {
	for i, r := range t.rows {
		if r.Path == p {
			return i
		}
	}
	return -1
}

// project recomputes the visible rows from scratch.
func (t *Tree) project() {
	rows := make([]Row, 0, len(t.rows))
	for _, c := range t.root.Children {
		rows = flatten(c, 0, rows)
	}
	t.rows = rows
}

func flatten(n *Node, depth int, rows []Row) []Row {
	rows = append(rows, Row{Path: n.Path, Depth: depth, IsDir: n.IsDir, Expanded: n.Expanded})
	if n.Expanded {
		for _, c := range n.Children {
			rows = flatten(c, depth+1, rows)
		}
	}
	return rows
}

func expandedPaths(n *Node) []string {
	var out []string
	for _, c := range n.Children {
		if c.Expanded {
			out = append(out, c.Path)
		}
		out = append(out, expandedPaths(c)...)
	}
	return out
}
