// Package rbtree provides the index-addressed Red-Black tree used by the
// verifier and the insertion simulator.
//
// # Overview
//
// A [Tree] is an arena: a slice of [Node] values whose position in the slice
// ([Node.Index]) is the node's identity for the lifetime of a verification or
// insertion run. Structural links (Parent, Left, Right) are slice indices with
// [None] as the "no node" sentinel, and every structural link is mirrored by a
// semantic link (ParentLabel, LeftLabel, RightLabel) carrying the label of the
// node it points to.
//
// Downstream layout and animation code holds on to tree indices across a
// sequence of rotations, so nothing in this package ever moves or reallocates
// an existing entry: [Tree.Rotate] and [Tree.Insert] only rewrite link fields
// and colors, and new nodes are appended.
//
// # Insertion
//
// [Tree.Insert] performs textbook top-down insertion. Every decision it makes
// is recorded as an [Action] in the returned [Actions] log:
//
//	t := rbtree.New()
//	for _, l := range []int{10, 5, 15, 20} {
//	    log, _ := t.Insert(l)
//	    fmt.Println(log)
//	}
//
// Inserting a label that is already present returns the log ["fail"] and a
// DUPLICATE_LABEL error without touching the tree.
//
// # Concurrency
//
// Tree instances are not safe for concurrent use. A tree is owned by exactly
// one run; callers that need to share one must Clone it.
package rbtree
