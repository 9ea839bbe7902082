package rbtree

import (
	errs "github.com/matzehuels/rbcheck/pkg/errors"
)

// Action is one entry of an insertion log.
type Action string

// Insertion log tags. External consumers replay these to animate an insertion,
// so the string values are part of the public contract.
const (
	ActionRoot                Action = "root"
	ActionPlace               Action = "place"
	ActionLeft                Action = "left"
	ActionRight               Action = "right"
	ActionRecolor             Action = "recolor"
	ActionBlackRoot           Action = "blackroot"
	ActionFail                Action = "fail"
	ActionRotateParLeft       Action = "rotateparleft"
	ActionRotateParRight      Action = "rotateparright"
	ActionRotateGrandparLeft  Action = "rotategrandparleft"
	ActionRotateGrandparRight Action = "rotategrandparright"
)

// IsRotation reports whether the action restructured the tree.
func (a Action) IsRotation() bool {
	switch a {
	case ActionRotateParLeft, ActionRotateParRight, ActionRotateGrandparLeft, ActionRotateGrandparRight:
		return true
	}
	return false
}

// Actions is an ordered insertion log.
type Actions []Action

// Strings returns the log as plain strings.
func (a Actions) Strings() []string {
	out := make([]string, len(a))
	for i, act := range a {
		out[i] = string(act)
	}
	return out
}

// Step is one recorded insertion decision together with the arena index it
// concerns and a snapshot of the tree taken right after it was applied.
type Step struct {
	Action Action `json:"action"`
	Node   int    `json:"node"`
	Tree   *Tree  `json:"tree,omitempty"`
}

// Insert adds label using top-down Red-Black insertion and returns the log of
// every decision taken.
//
// A label that is already present yields the log ["fail"] and an error with
// code DUPLICATE_LABEL; the tree is left untouched in that case.
func (t *Tree) Insert(label int) (Actions, error) {
	return t.insert(label, nil)
}

// Trace behaves like [Tree.Insert] but also returns a snapshot of the tree
// after every step, for step-by-step replay.
func (t *Tree) Trace(label int) ([]Step, error) {
	var steps []Step
	_, err := t.insert(label, func(a Action, idx int) {
		steps = append(steps, Step{Action: a, Node: idx, Tree: t.Clone()})
	})
	return steps, err
}

type inserter struct {
	t       *Tree
	label   int
	log     Actions
	observe func(Action, int)
}

func (t *Tree) insert(label int, observe func(Action, int)) (Actions, error) {
	in := &inserter{t: t, label: label, observe: observe}
	if idx, dup := t.Lookup(label); dup {
		in.record(ActionFail, idx)
		return in.log, errs.New(errs.ErrCodeDuplicateLabel, "label %d is already in the tree", label)
	}
	in.insert(t.Root, None)
	return in.log, nil
}

func (in *inserter) record(a Action, idx int) {
	in.log = append(in.log, a)
	if in.observe != nil {
		in.observe(a, idx)
	}
}

func (in *inserter) insert(node, parent int) {
	t := in.t
	if node == None {
		in.place(parent)
		return
	}
	if t.Nodes[node].Label == in.label {
		in.record(ActionFail, node)
		return
	}

	// Split a 4-node on the way down.
	left, right := t.Nodes[node].Left, t.Nodes[node].Right
	if t.Nodes[node].Black && t.IsRed(left) && t.IsRed(right) {
		t.Nodes[left].Black = true
		t.Nodes[right].Black = true
		if node == t.Root {
			in.record(ActionBlackRoot, node)
		} else {
			t.Nodes[node].Black = false
			in.record(ActionRecolor, node)
			in.fix(node)
		}
	}

	// fix may have moved node; read its links again.
	if in.label < t.Nodes[node].Label {
		in.record(ActionLeft, node)
		in.insert(t.Nodes[node].Left, node)
		return
	}
	in.record(ActionRight, node)
	in.insert(t.Nodes[node].Right, node)
}

func (in *inserter) place(parent int) {
	t := in.t
	idx := t.Append(None, in.label, parent == None)
	if parent == None {
		t.Root = idx
		in.record(ActionRoot, idx)
		return
	}
	if in.label < t.Nodes[parent].Label {
		t.SetLeft(parent, idx)
	} else {
		t.SetRight(parent, idx)
	}
	in.record(ActionPlace, idx)
	in.fix(idx)
}

// fix resolves a red-red violation between x and its parent, if there is one.
func (in *inserter) fix(x int) {
	t := in.t
	p := t.Nodes[x].Parent
	if p == None || t.Nodes[p].Black {
		return
	}
	g := t.Nodes[p].Parent
	if g == None {
		return
	}

	parentIsLeft := t.Nodes[g].Left == p
	nodeIsLeft := t.Nodes[p].Left == x
	if parentIsLeft != nodeIsLeft {
		// Kink: straighten it so x takes the parent's place.
		t.Rotate(p, nodeIsLeft)
		if nodeIsLeft {
			in.record(ActionRotateParRight, p)
		} else {
			in.record(ActionRotateParLeft, p)
		}
	}

	top := t.Nodes[g].Right
	if parentIsLeft {
		top = t.Nodes[g].Left
	}
	t.Rotate(g, parentIsLeft)
	t.Nodes[g].Black = false
	t.Nodes[top].Black = true
	if parentIsLeft {
		in.record(ActionRotateGrandparRight, g)
	} else {
		in.record(ActionRotateGrandparLeft, g)
	}
}
