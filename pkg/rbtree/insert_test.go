package rbtree

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/emirpasic/gods/trees/redblacktree"

	errs "github.com/matzehuels/rbcheck/pkg/errors"
)

func build(t *testing.T, labels ...int) *Tree {
	t.Helper()
	tr := New()
	for _, l := range labels {
		if _, err := tr.Insert(l); err != nil {
			t.Fatalf("Insert(%d): %v", l, err)
		}
	}
	return tr
}

func TestInsert_Logs(t *testing.T) {
	tests := []struct {
		name  string
		setup []int
		label int
		want  []string
	}{
		{
			name:  "EmptyTree",
			label: 10,
			want:  []string{"root"},
		},
		{
			name:  "LeftOfRoot",
			setup: []int{10},
			label: 5,
			want:  []string{"left", "place"},
		},
		{
			name:  "SplitAtRoot",
			setup: []int{10, 5, 15},
			label: 20,
			want:  []string{"blackroot", "right", "right", "place"},
		},
		{
			name:  "StraightLine",
			setup: []int{10, 5, 15, 20},
			label: 25,
			want:  []string{"right", "right", "right", "place", "rotategrandparleft"},
		},
		{
			name:  "StraightLineMirrored",
			setup: []int{10, 5, 15, 3},
			label: 1,
			want:  []string{"left", "left", "left", "place", "rotategrandparright"},
		},
		{
			name:  "KinkLeftRight",
			setup: []int{10, 5},
			label: 7,
			want:  []string{"left", "right", "place", "rotateparleft", "rotategrandparright"},
		},
		{
			name:  "KinkRightLeft",
			setup: []int{10, 15},
			label: 12,
			want:  []string{"right", "left", "place", "rotateparright", "rotategrandparleft"},
		},
		{
			name:  "RecolorBelowRoot",
			setup: []int{10, 5, 15, 20, 25},
			label: 30,
			want:  []string{"right", "recolor", "right", "right", "place"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := build(t, tt.setup...)
			got, err := tr.Insert(tt.label)
			if err != nil {
				t.Fatalf("Insert(%d) error: %v", tt.label, err)
			}
			if !slices.Equal(got.Strings(), tt.want) {
				t.Errorf("Insert(%d) log = %v, want %v", tt.label, got.Strings(), tt.want)
			}
			checkRB(t, tr)
		})
	}
}

func TestInsert_KinkPromotesNewNode(t *testing.T) {
	tr := build(t, 10, 5, 7)

	if tr.Root != 2 {
		t.Fatalf("Root = %d, want 2 (the inserted node)", tr.Root)
	}
	root := tr.Nodes[tr.Root]
	if root.Label != 7 || !root.Black {
		t.Errorf("root = %d black=%v, want 7 black", root.Label, root.Black)
	}
	if tr.Nodes[0].Black || tr.Nodes[1].Black {
		t.Error("former grandparent and parent should both be red")
	}
	if root.GraphNodeID != None {
		t.Errorf("inserted node GraphNodeID = %d, want None", root.GraphNodeID)
	}
}

func TestInsert_Duplicate(t *testing.T) {
	tr := build(t, 10, 5, 15, 20)
	before := tr.Clone()

	got, err := tr.Insert(15)

	if !slices.Equal(got.Strings(), []string{"fail"}) {
		t.Errorf("log = %v, want [fail]", got.Strings())
	}
	if !errs.Is(err, errs.ErrCodeDuplicateLabel) {
		t.Errorf("error = %v, want DUPLICATE_LABEL", err)
	}
	if !tr.Equal(before) {
		t.Error("duplicate insertion mutated the tree")
	}
}

func TestInsert_Sequences(t *testing.T) {
	const n = 200
	ascending := make([]int, n)
	for i := range ascending {
		ascending[i] = i
	}
	descending := slices.Clone(ascending)
	slices.Reverse(descending)
	shuffled := slices.Clone(ascending)
	r := rand.New(rand.NewSource(42))
	r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	tests := []struct {
		name  string
		input []int
	}{
		{"Single", []int{1}},
		{"Ascending", ascending},
		{"Descending", descending},
		{"Shuffled", shuffled},
		{"Negative", []int{-5, -10, -1, -7, -3, 0, -20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			ref := redblacktree.NewWithIntComparator()
			for _, l := range tt.input {
				if _, err := tr.Insert(l); err != nil {
					t.Fatalf("Insert(%d): %v", l, err)
				}
				ref.Put(l, struct{}{})
				checkRB(t, tr)
			}

			want := make([]int, 0, ref.Size())
			for _, k := range ref.Keys() {
				want = append(want, k.(int))
			}
			if got := tr.InOrderLabels(); !slices.Equal(got, want) {
				t.Errorf("in-order labels differ from reference tree")
			}
			if got := tr.Labels(); !slices.Equal(got, want) {
				t.Errorf("Labels() differ from reference tree")
			}
			for i, node := range tr.Nodes {
				if node.Index != i {
					t.Fatalf("node at %d has Index %d", i, node.Index)
				}
			}
		})
	}
}

func TestTrace(t *testing.T) {
	tr := build(t, 10, 5)

	steps, err := tr.Trace(7)
	if err != nil {
		t.Fatalf("Trace error: %v", err)
	}

	var got []string
	for _, s := range steps {
		got = append(got, string(s.Action))
	}
	want := []string{"left", "right", "place", "rotateparleft", "rotategrandparright"}
	if !slices.Equal(got, want) {
		t.Fatalf("trace actions = %v, want %v", got, want)
	}

	// The snapshot after "place" still has 10 at the root.
	if steps[2].Tree.Root != 0 {
		t.Errorf("snapshot after place: root = %d, want 0", steps[2].Tree.Root)
	}
	if !steps[len(steps)-1].Tree.Equal(tr) {
		t.Error("final snapshot differs from the tree")
	}
	if steps[2].Node != 2 {
		t.Errorf("place step node = %d, want 2", steps[2].Node)
	}
}

func TestPositions(t *testing.T) {
	tr := build(t, 10, 5, 15)
	pos := tr.Positions()

	want := map[int]Position{
		0: {Column: 1, Depth: 0},
		1: {Column: 0, Depth: 1},
		2: {Column: 2, Depth: 1},
	}
	for idx, p := range want {
		if pos[idx] != p {
			t.Errorf("Positions()[%d] = %+v, want %+v", idx, pos[idx], p)
		}
	}
	if tr.Height() != 2 {
		t.Errorf("Height() = %d, want 2", tr.Height())
	}
}

// checkRB asserts every Red-Black invariant plus link consistency.
func checkRB(t *testing.T, tr *Tree) {
	t.Helper()
	assertLinksConsistent(t, tr)
	if tr.IsEmpty() {
		return
	}
	if !tr.Nodes[tr.Root].Black {
		t.Fatalf("root %d is red", tr.Nodes[tr.Root].Label)
	}
	labels := tr.InOrderLabels()
	if !slices.IsSorted(labels) || len(labels) != tr.Len() {
		t.Fatalf("in-order labels not a sorted permutation: %v", labels)
	}

	var height func(idx int) int
	height = func(idx int) int {
		if idx == None {
			return 0
		}
		n := tr.Nodes[idx]
		if !n.Black && (tr.IsRed(n.Left) || tr.IsRed(n.Right)) {
			t.Fatalf("red node %d has a red child", n.Label)
		}
		l, r := height(n.Left), height(n.Right)
		if l != r {
			t.Fatalf("black height mismatch under %d: %d vs %d", n.Label, l, r)
		}
		if n.Black {
			return l + 1
		}
		return l
	}
	height(tr.Root)
}
