// Package canvas provides the graph store behind the drawing canvas: an
// arbitrary undirected multigraph of labeled, colored nodes.
//
// # Overview
//
// Users draw whatever they like: nodes without labels, self-loops, parallel
// edges, disconnected components. The canvas stores all of it faithfully and
// leaves judging the shape to package verify.
//
// Nodes and edges live in sparse arrays. An identifier is the array position
// of its slot, and removing an entity leaves a tombstone in that slot instead
// of shifting its neighbours, so identifiers held by the UI stay valid across
// deletions:
//
//	c := canvas.New()
//	a := c.AddNode(true)  // 0
//	b := c.AddNode(false) // 1
//	_ = c.RemoveNode(a)   // slot 0 is now a tombstone
//	c.AddNode(true)       // 2, never 0
//
// # Labels
//
// A node has no label until the user types one. [Canvas.Label] reports the
// label together with whether it is set; [Canvas.SetLabel] and
// [Canvas.ClearLabel] edit it.
//
// # Concurrency
//
// Canvas instances are not safe for concurrent use. The verifier treats a
// canvas as read-only for the duration of a run; callers must not mutate it
// concurrently with verification.
package canvas
