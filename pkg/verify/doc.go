// Package verify decides whether a canvas, rooted at a chosen node, forms a
// valid Red-Black tree.
//
// # Pipeline
//
// [Verify] runs a fixed sequence of stages and stops at the first one that
// fails:
//
//  1. Root: the root must exist and be black.
//  2. Structure: a depth-first builder turns the graph into a tree array,
//     rejecting nodes with more than two children, repeated labels, cycles,
//     unlabeled nodes and two children on the same side.
//  3. Order: every label lies inside the interval inherited from its
//     ancestors, and no red node has a red child.
//  4. Connectivity: every live canvas node was reached from the root.
//  5. Black height: every root-to-leaf path crosses the same number of black
//     nodes.
//
// An empty canvas is valid.
//
// # Diagnostics
//
// Failures are data, never panics. [Result.Reason] carries the coarse tag shown
// to users; [Result.Stage] and the flags in [Result.State] tell the failure
// causes apart. The tree array is always linked before the checks run, so a
// failing Result still exposes the partially built structure.
//
// A repeated label reached through a back edge sets both SameLabel and
// HasCycle, because the builder cannot tell a cycle from a duplicate without
// extra bookkeeping. A repeated label between a node and its child sets only
// SameLabel.
package verify
