package rbtree

import (
	"slices"
	"testing"
)

// threeChain builds 10 -> 5 -> 2 along left links, rooted at index 0.
func threeChain() *Tree {
	t := New()
	a := t.Append(0, 10, true)
	b := t.Append(1, 5, false)
	c := t.Append(2, 2, false)
	t.Root = a
	t.SetLeft(a, b)
	t.SetLeft(b, c)
	return t
}

func TestRotate_RightAtRoot(t *testing.T) {
	tr := threeChain()

	if !tr.RotateRight(0) {
		t.Fatal("RotateRight(0) = false, want true")
	}
	if tr.Root != 1 {
		t.Errorf("Root = %d, want 1", tr.Root)
	}
	mid := tr.Nodes[1]
	if mid.Parent != None || mid.ParentLabel != nil {
		t.Errorf("new root parent = %d/%v, want none", mid.Parent, mid.ParentLabel)
	}
	if mid.Left != 2 || mid.Right != 0 {
		t.Errorf("new root children = (%d,%d), want (2,0)", mid.Left, mid.Right)
	}
	if *mid.LeftLabel != 2 || *mid.RightLabel != 10 {
		t.Errorf("new root child labels = (%d,%d), want (2,10)", *mid.LeftLabel, *mid.RightLabel)
	}
	old := tr.Nodes[0]
	if old.Parent != 1 || *old.ParentLabel != 5 {
		t.Errorf("old root parent = %d/%d, want 1/5", old.Parent, *old.ParentLabel)
	}
	if old.Left != None || old.LeftLabel != nil {
		t.Errorf("old root left = %d/%v, want none", old.Left, old.LeftLabel)
	}
}

func TestRotate_KeepsIndicesAndOrder(t *testing.T) {
	tr := New()
	for _, l := range []int{50, 30, 70, 20, 40, 60, 80} {
		if _, err := tr.Insert(l); err != nil {
			t.Fatalf("Insert(%d): %v", l, err)
		}
	}
	before := tr.InOrderLabels()
	labelsByIndex := make([]int, tr.Len())
	for i, n := range tr.Nodes {
		labelsByIndex[i] = n.Label
	}

	for _, right := range []bool{true, false, false, true} {
		tr.Rotate(tr.Root, right)
		if got := tr.InOrderLabels(); !slices.Equal(got, before) {
			t.Fatalf("in-order after rotation = %v, want %v", got, before)
		}
		for i, n := range tr.Nodes {
			if n.Index != i || n.Label != labelsByIndex[i] {
				t.Fatalf("node %d moved: index=%d label=%d", i, n.Index, n.Label)
			}
		}
		assertLinksConsistent(t, tr)
	}
}

func TestRotate_Inner(t *testing.T) {
	// 10 with right child 20, which has left child 15.
	tr := New()
	a := tr.Append(0, 10, true)
	b := tr.Append(1, 20, false)
	c := tr.Append(2, 15, false)
	tr.Root = a
	tr.SetRight(a, b)
	tr.SetLeft(b, c)

	tr.RotateLeft(a)

	if tr.Root != b {
		t.Fatalf("Root = %d, want %d", tr.Root, b)
	}
	if tr.Nodes[a].Right != c || *tr.Nodes[a].RightLabel != 15 {
		t.Errorf("inner subtree not moved: right=%d", tr.Nodes[a].Right)
	}
	if tr.Nodes[c].Parent != a || *tr.Nodes[c].ParentLabel != 10 {
		t.Errorf("inner subtree parent = %d, want %d", tr.Nodes[c].Parent, a)
	}
	assertLinksConsistent(t, tr)
}

func TestRotate_NoOp(t *testing.T) {
	tr := threeChain()
	snapshot := tr.Clone()

	if tr.RotateLeft(0) {
		t.Error("RotateLeft without right child returned true")
	}
	if tr.Rotate(None, true) {
		t.Error("Rotate(None) returned true")
	}
	if tr.Rotate(99, true) {
		t.Error("Rotate(99) returned true")
	}
	if !tr.Equal(snapshot) {
		t.Error("no-op rotation mutated the tree")
	}
}

// assertLinksConsistent checks that structural and semantic links agree and
// that every child points back at its parent.
func assertLinksConsistent(t *testing.T, tr *Tree) {
	t.Helper()
	roots := 0
	for i, n := range tr.Nodes {
		if n.Parent == None {
			roots++
		}
		check := func(name string, idx int, label *int) {
			if idx == None {
				if label != nil {
					t.Errorf("node %d: %s index none but label %d", i, name, *label)
				}
				return
			}
			if label == nil || *label != tr.Nodes[idx].Label {
				t.Errorf("node %d: %s label mismatch for index %d", i, name, idx)
			}
		}
		check("parent", n.Parent, n.ParentLabel)
		check("left", n.Left, n.LeftLabel)
		check("right", n.Right, n.RightLabel)
		if n.Left != None && tr.Nodes[n.Left].Parent != i {
			t.Errorf("node %d: left child %d has parent %d", i, n.Left, tr.Nodes[n.Left].Parent)
		}
		if n.Right != None && tr.Nodes[n.Right].Parent != i {
			t.Errorf("node %d: right child %d has parent %d", i, n.Right, tr.Nodes[n.Right].Parent)
		}
	}
	if len(tr.Nodes) > 0 && roots != 1 {
		t.Errorf("found %d parentless nodes, want 1", roots)
	}
	if len(tr.Nodes) > 0 && tr.Nodes[tr.Root].Parent != None {
		t.Errorf("root %d has parent %d", tr.Root, tr.Nodes[tr.Root].Parent)
	}
}
