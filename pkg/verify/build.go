package verify

import (
	"github.com/matzehuels/rbcheck/pkg/canvas"
	"github.com/matzehuels/rbcheck/pkg/rbtree"
)

// builder converts the graph reachable from the root into a flat tree array.
// Nodes are appended in depth-first order, left subtree before right.
type builder struct {
	c    *canvas.Canvas
	st   *State
	tree *rbtree.Tree
}

// build visits curr, reached from parent (canvas.NoRoot for the root).
func (b *builder) build(curr, parent int) {
	if b.st.Failed() {
		return
	}
	node, ok := b.c.Node(curr)
	if !ok {
		return
	}
	label, ok := b.c.Label(curr)
	if !ok {
		b.st.MissingLabel = true
		return
	}

	children := b.childCandidates(node, parent)
	if len(children) > 2 {
		b.st.ExceedsMaxEdgeCount = true
		return
	}

	left, right := canvas.NoRoot, canvas.NoRoot
	var leftLabel, rightLabel *int
	for _, child := range children {
		cl, ok := b.c.Label(child)
		if !ok {
			b.st.MissingLabel = true
			return
		}
		if cl == label {
			b.st.SameLabel = true
			return
		}
		if cl < label {
			if left != canvas.NoRoot {
				b.st.BadOrder = true
				return
			}
			left, leftLabel = child, &cl
		} else {
			if right != canvas.NoRoot {
				b.st.BadOrder = true
				return
			}
			right, rightLabel = child, &cl
		}
	}

	if b.tree.Contains(label) {
		b.st.SameLabel = true
		b.st.HasCycle = true
		return
	}

	idx := b.tree.Append(curr, label, node.Black)
	n := &b.tree.Nodes[idx]
	n.LeftLabel, n.RightLabel = leftLabel, rightLabel
	if parent != canvas.NoRoot {
		if pl, ok := b.c.Label(parent); ok {
			n.ParentLabel = &pl
		}
	}
	b.st.NumVisited++

	if left != canvas.NoRoot {
		b.build(left, curr)
	}
	if right != canvas.NoRoot {
		b.build(right, curr)
	}
}

// childCandidates returns the distinct neighbours of node that can be
// children. Self-loops are skipped and exactly one edge leading back to
// parent is excluded; any further parent-direction edge stays a candidate.
func (b *builder) childCandidates(node *canvas.Node, parent int) []int {
	var out []int
	seen := make(map[int]bool, len(node.Edges))
	parentSkipped := false
	for _, eid := range node.Edges {
		e, ok := b.c.Edge(eid)
		if !ok || e.IsSelfLoop() {
			continue
		}
		other := e.Other(node.ID)
		if other == parent && !parentSkipped {
			parentSkipped = true
			continue
		}
		if seen[other] {
			continue
		}
		seen[other] = true
		out = append(out, other)
	}
	return out
}
