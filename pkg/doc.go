// Package pkg provides the core libraries for rbcheck.
//
// # Overview
//
// rbcheck takes a graph drawn by hand (nodes with a color and an optional
// integer label, joined by undirected edges) and decides whether it is a
// valid Red-Black tree. A verified tree can then take one more label through
// top-down insertion, with every decision logged for replay.
//
// # Architecture
//
// The typical data flow:
//
//	canvas snapshot (.json / .toml)
//	         ↓
//	    [io] package (decode)
//	         ↓
//	    [canvas] package (editable graph)
//	         ↓
//	    [verify] package (build tree, check order, connectivity, black height)
//	         ↓
//	    [rbtree] package (linked tree, insertion, rotations)
//	         ↓
//	    [render/nodelink] package (DOT, SVG, PNG)
//
// # Quick Start
//
//	c, _ := io.Import("drawing.json")
//	res := verify.Verify(c, c.Root())
//	if !res.OK() {
//	    fmt.Println(res.Reason, res.State.Flags())
//	    return
//	}
//	actions, _, err := verify.Insert(ctx, res.Tree, 42)
//
// # Main Packages
//
// [canvas] - Editable graph with stable node and edge ids, tombstones for
// deleted entries, an optional label per node and a selected root.
//
// [verify] - The verification protocol. Produces a [verify.Result] with the
// reason, the failing stage, every raised flag and the linked tree.
//
// [rbtree] - Arena-backed Red-Black tree with semantic and structural links,
// rotations and insertion with an action log.
//
// [io] - JSON and TOML canvas snapshots, plus tree encoding.
//
// [render/nodelink] - Graphviz rendering of canvases and trees.
//
// ## Infrastructure
//
// [cache] - Last known good trees and rendered diagrams (file, Redis).
//
// [store] - Named canvas documents (memory, file, MongoDB).
//
// [api] - HTTP API over chi.
//
// [observability] - Hooks for logging and metrics.
//
// [errors] - Structured error codes shared by the CLI and the API.
//
// [canvas]: github.com/matzehuels/rbcheck/pkg/canvas
// [verify]: github.com/matzehuels/rbcheck/pkg/verify
// [verify.Result]: github.com/matzehuels/rbcheck/pkg/verify.Result
// [rbtree]: github.com/matzehuels/rbcheck/pkg/rbtree
// [io]: github.com/matzehuels/rbcheck/pkg/io
// [render/nodelink]: github.com/matzehuels/rbcheck/pkg/render/nodelink
// [cache]: github.com/matzehuels/rbcheck/pkg/cache
// [store]: github.com/matzehuels/rbcheck/pkg/store
// [api]: github.com/matzehuels/rbcheck/pkg/api
// [observability]: github.com/matzehuels/rbcheck/pkg/observability
// [errors]: github.com/matzehuels/rbcheck/pkg/errors
package pkg
