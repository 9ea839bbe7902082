package verify

import (
	"math"

	"github.com/matzehuels/rbcheck/pkg/rbtree"
)

// link resolves the structural links of every tree node from its semantic
// links. A label that did not make it into the array resolves to None.
func link(t *rbtree.Tree) {
	resolve := func(label *int) int {
		if label == nil {
			return rbtree.None
		}
		if idx, ok := t.Lookup(*label); ok {
			return idx
		}
		return rbtree.None
	}
	for i := range t.Nodes {
		n := &t.Nodes[i]
		n.Left = resolve(n.LeftLabel)
		n.Right = resolve(n.RightLabel)
		n.Parent = resolve(n.ParentLabel)
	}
}

// checkOrder verifies the search-tree order and the red rule below idx.
// Both subtrees are always visited; the flags in st are authoritative, the
// return value only summarizes them.
func checkOrder(t *rbtree.Tree, st *State, idx, lo, hi int) bool {
	if st.Failed() {
		return false
	}
	if idx == rbtree.None {
		return true
	}
	n := t.Nodes[idx]
	if n.Label < lo || n.Label > hi {
		st.BadOrder = true
		return false
	}
	if n.IsRed() && (t.IsRed(n.Left) || t.IsRed(n.Right)) {
		st.RedHasRedChildren = true
		return false
	}
	// Nothing orders below MinInt or above MaxInt, and the child bounds
	// would wrap.
	if (n.Label == math.MinInt && n.Left != rbtree.None) || (n.Label == math.MaxInt && n.Right != rbtree.None) {
		st.BadOrder = true
		return false
	}
	leftOK := checkOrder(t, st, n.Left, lo, n.Label-1)
	rightOK := checkOrder(t, st, n.Right, n.Label+1, hi)
	return leftOK && rightOK
}

// blackHeight returns the number of black nodes on every path below idx,
// including idx itself, or -1 when two paths disagree.
func blackHeight(t *rbtree.Tree, idx int) int {
	if idx == rbtree.None {
		return 0
	}
	n := t.Nodes[idx]
	l := blackHeight(t, n.Left)
	r := blackHeight(t, n.Right)
	if l == -1 || r == -1 || l != r {
		return -1
	}
	if n.Black {
		return l + 1
	}
	return l
}

func fullRange() (int, int) { return math.MinInt, math.MaxInt }
