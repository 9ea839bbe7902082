// Package nodelink renders canvases and Red-Black trees as node-link
// diagrams.
//
// # Usage
//
// Convert a tree or a canvas to DOT, then render it:
//
//	dot := nodelink.TreeToDOT(tree, nodelink.DefaultOptions())
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Nodes are filled with their color. Trees are drawn top-down with invisible
// placeholders for missing children, so left and right stay visually
// distinct. Canvases are drawn as undirected graphs, self-loops and parallel
// edges included, with the root marked by a double outline.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG and
// PNG rendering. No external Graphviz installation is required.
package nodelink
