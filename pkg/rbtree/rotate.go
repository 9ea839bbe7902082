package rbtree

// Rotate performs a single rotation at idx and reports whether it happened.
//
// With right=true the left child of idx is promoted into idx's position and
// idx becomes its right child; with right=false the right child is promoted.
// The promoted child's inner subtree moves across to idx.
//
// Right rotation:
//
//	    Y            X
//	  X   C  =>    A   Y
//	A   B            B   C
//
// Left rotation:
//
//	  X              Y
//	A   Y    =>    X   C
//	  B   C      A   B
//
// Only link fields change; every entry keeps its arena index. When idx was the
// root the promoted child becomes the new [Tree.Root]. Rotating a missing node,
// or towards a missing child, is a no-op that returns false.
func (t *Tree) Rotate(idx int, right bool) bool {
	n := t.Node(idx)
	if n == nil {
		return false
	}

	child := n.Right
	if right {
		child = n.Left
	}
	if child == None {
		return false
	}
	parent := n.Parent

	// Move the inner subtree.
	if right {
		t.SetLeft(idx, t.Nodes[child].Right)
	} else {
		t.SetRight(idx, t.Nodes[child].Left)
	}

	// Hang the promoted child where idx used to be.
	switch {
	case parent == None:
		t.Root = child
		t.setParent(child, None)
	case t.Nodes[parent].Left == idx:
		t.SetLeft(parent, child)
	default:
		t.SetRight(parent, child)
	}

	if right {
		t.SetRight(child, idx)
	} else {
		t.SetLeft(child, idx)
	}
	return true
}

// RotateLeft promotes the right child of idx.
func (t *Tree) RotateLeft(idx int) bool { return t.Rotate(idx, false) }

// RotateRight promotes the left child of idx.
func (t *Tree) RotateRight(idx int) bool { return t.Rotate(idx, true) }
