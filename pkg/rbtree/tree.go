package rbtree

import (
	"slices"

	"github.com/emirpasic/gods/maps/treemap"
)

// None is the structural link value meaning "no node".
const None = -1

// Node is one entry of the tree arena.
//
// Index never changes once the node has been appended. GraphNodeID points back
// at the canvas node the entry was built from, or is None for nodes created by
// insertion.
type Node struct {
	Index       int  `json:"index"`
	GraphNodeID int  `json:"graph_node_id"`
	Label       int  `json:"label"`
	Black       bool `json:"black"`

	// Semantic links: labels of the linked nodes, nil when absent.
	ParentLabel *int `json:"parent_label,omitempty"`
	LeftLabel   *int `json:"left_label,omitempty"`
	RightLabel  *int `json:"right_label,omitempty"`

	// Structural links: arena indices, None when absent.
	Parent int `json:"parent"`
	Left   int `json:"left"`
	Right  int `json:"right"`
}

// IsRed reports whether the node is colored red.
func (n Node) IsRed() bool { return !n.Black }

// Tree is an arena of nodes plus the index of the root.
//
// The zero value is not usable; use [New] or [FromNodes].
type Tree struct {
	Nodes []Node `json:"nodes"`
	Root  int    `json:"root"`

	labels *treemap.Map // label -> index, first match wins
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{Root: None, labels: treemap.NewWithIntComparator()}
}

// FromNodes wraps an existing arena. The label index is rebuilt from the
// nodes; when two nodes share a label the one with the lower index wins.
func FromNodes(nodes []Node, root int) *Tree {
	t := &Tree{Nodes: nodes, Root: root}
	t.Reindex()
	return t
}

// Reindex rebuilds the label index from the arena. It must be called after
// Nodes has been replaced or decoded from JSON.
func (t *Tree) Reindex() {
	t.labels = treemap.NewWithIntComparator()
	for i := range t.Nodes {
		if _, found := t.labels.Get(t.Nodes[i].Label); !found {
			t.labels.Put(t.Nodes[i].Label, i)
		}
	}
}

// Append adds a node with no links and returns its index.
// The caller is responsible for linking it.
func (t *Tree) Append(graphNodeID, label int, black bool) int {
	if t.labels == nil {
		t.Reindex()
	}
	idx := len(t.Nodes)
	t.Nodes = append(t.Nodes, Node{
		Index:       idx,
		GraphNodeID: graphNodeID,
		Label:       label,
		Black:       black,
		Parent:      None,
		Left:        None,
		Right:       None,
	})
	if _, found := t.labels.Get(label); !found {
		t.labels.Put(label, idx)
	}
	return idx
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.Nodes) }

// IsEmpty reports whether the tree has no root.
func (t *Tree) IsEmpty() bool { return t.Root == None }

// Lookup returns the index of the first node carrying label.
func (t *Tree) Lookup(label int) (int, bool) {
	if t.labels == nil {
		t.Reindex()
	}
	v, found := t.labels.Get(label)
	if !found {
		return None, false
	}
	return v.(int), true
}

// Contains reports whether any node carries label.
func (t *Tree) Contains(label int) bool {
	_, ok := t.Lookup(label)
	return ok
}

// Labels returns every distinct label in ascending order.
func (t *Tree) Labels() []int {
	if t.labels == nil {
		t.Reindex()
	}
	out := make([]int, 0, t.labels.Size())
	for _, k := range t.labels.Keys() {
		out = append(out, k.(int))
	}
	return out
}

// Node returns a pointer to the entry at idx, or nil for None or an
// out-of-range index.
func (t *Tree) Node(idx int) *Node {
	if idx < 0 || idx >= len(t.Nodes) {
		return nil
	}
	return &t.Nodes[idx]
}

// IsBlack reports the color of idx. Missing nodes count as black.
func (t *Tree) IsBlack(idx int) bool {
	n := t.Node(idx)
	return n == nil || n.Black
}

// IsRed reports whether idx exists and is red.
func (t *Tree) IsRed(idx int) bool {
	n := t.Node(idx)
	return n != nil && !n.Black
}

// SetLeft links child as the left child of parent on both the structural and
// the semantic side. Either index may be None.
func (t *Tree) SetLeft(parent, child int) {
	if p := t.Node(parent); p != nil {
		p.Left = child
		p.LeftLabel = t.labelOf(child)
	}
	t.setParent(child, parent)
}

// SetRight links child as the right child of parent.
func (t *Tree) SetRight(parent, child int) {
	if p := t.Node(parent); p != nil {
		p.Right = child
		p.RightLabel = t.labelOf(child)
	}
	t.setParent(child, parent)
}

func (t *Tree) setParent(child, parent int) {
	if c := t.Node(child); c != nil {
		c.Parent = parent
		c.ParentLabel = t.labelOf(parent)
	}
}

// labelOf returns a fresh pointer to the label at idx, or nil.
func (t *Tree) labelOf(idx int) *int {
	n := t.Node(idx)
	if n == nil {
		return nil
	}
	l := n.Label
	return &l
}

// InOrder returns the arena indices reachable from the root in in-order
// sequence.
func (t *Tree) InOrder() []int {
	var out []int
	var walk func(idx int)
	walk = func(idx int) {
		n := t.Node(idx)
		if n == nil {
			return
		}
		walk(n.Left)
		out = append(out, idx)
		walk(n.Right)
	}
	walk(t.Root)
	return out
}

// InOrderLabels returns the labels reachable from the root in in-order
// sequence. For a valid binary search tree this is strictly ascending.
func (t *Tree) InOrderLabels() []int {
	idx := t.InOrder()
	out := make([]int, len(idx))
	for i, n := range idx {
		out[i] = t.Nodes[n].Label
	}
	return out
}

// Height returns the number of nodes on the longest root-to-leaf path.
func (t *Tree) Height() int {
	var h func(idx int) int
	h = func(idx int) int {
		n := t.Node(idx)
		if n == nil {
			return 0
		}
		return 1 + max(h(n.Left), h(n.Right))
	}
	return h(t.Root)
}

// Clone returns a deep copy that shares no memory with t.
func (t *Tree) Clone() *Tree {
	nodes := make([]Node, len(t.Nodes))
	for i, n := range t.Nodes {
		n.ParentLabel = clonePtr(n.ParentLabel)
		n.LeftLabel = clonePtr(n.LeftLabel)
		n.RightLabel = clonePtr(n.RightLabel)
		nodes[i] = n
	}
	return FromNodes(nodes, t.Root)
}

// Equal reports whether two trees have the same root and identical entries,
// comparing semantic links by value.
func (t *Tree) Equal(o *Tree) bool {
	if t.Root != o.Root || len(t.Nodes) != len(o.Nodes) {
		return false
	}
	return slices.EqualFunc(t.Nodes, o.Nodes, func(a, b Node) bool {
		return a.Index == b.Index &&
			a.GraphNodeID == b.GraphNodeID &&
			a.Label == b.Label &&
			a.Black == b.Black &&
			a.Parent == b.Parent && a.Left == b.Left && a.Right == b.Right &&
			eqPtr(a.ParentLabel, b.ParentLabel) &&
			eqPtr(a.LeftLabel, b.LeftLabel) &&
			eqPtr(a.RightLabel, b.RightLabel)
	})
}

func clonePtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func eqPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
