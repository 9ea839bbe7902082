package canvas

import (
	"errors"
	"slices"

	"github.com/matzehuels/rbcheck/pkg/rbtree"
)

var (
	// ErrUnknownNode is returned when a node id is out of range or refers to
	// a removed node.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownEdge is returned when an edge id is out of range or refers to
	// a removed edge.
	ErrUnknownEdge = errors.New("unknown edge")
)

// NoRoot is the Root value of a canvas without a designated root.
const NoRoot = -1

// Node is a vertex drawn on the canvas.
type Node struct {
	ID    int   // Slot index, stable for the node's lifetime
	Black bool  // Color flag; false means red
	Edges []int // Incident edge ids in the order they were linked
}

// Edge is an undirected connection between two nodes. Start == End denotes a
// self-loop.
type Edge struct {
	ID    int
	Start int
	End   int
}

// IsSelfLoop reports whether the edge connects a node to itself.
func (e Edge) IsSelfLoop() bool { return e.Start == e.End }

// Other returns the endpoint of e opposite to id.
func (e Edge) Other(id int) int {
	if e.Start == id {
		return e.End
	}
	return e.Start
}

// Canvas is the graph store. The zero value is not usable; use [New].
type Canvas struct {
	nodes  []*Node // nil slot = tombstone
	edges  []*Edge // nil slot = tombstone
	labels map[int]int
	root   int
}

// New creates an empty canvas with no root.
func New() *Canvas {
	return &Canvas{labels: make(map[int]int), root: NoRoot}
}

// AddNode appends a node and returns its id.
func (c *Canvas) AddNode(black bool) int {
	id := len(c.nodes)
	c.nodes = append(c.nodes, &Node{ID: id, Black: black})
	return id
}

// AddLabeledNode appends a node with a label and returns its id.
func (c *Canvas) AddLabeledNode(label int, black bool) int {
	id := c.AddNode(black)
	c.labels[id] = label
	return id
}

// RemoveNode tombstones the node and every edge incident to it. When the node
// was the root, the canvas is left without a root.
func (c *Canvas) RemoveNode(id int) error {
	n, ok := c.Node(id)
	if !ok {
		return ErrUnknownNode
	}
	for _, eid := range slices.Clone(n.Edges) {
		_ = c.Unlink(eid)
	}
	c.nodes[id] = nil
	delete(c.labels, id)
	if c.root == id {
		c.root = NoRoot
	}
	return nil
}

// Link adds an edge between two live nodes and returns its id.
// Self-loops and parallel edges are accepted. A self-loop is recorded once in
// its node's edge list.
func (c *Canvas) Link(a, b int) (int, error) {
	na, ok := c.Node(a)
	if !ok {
		return 0, ErrUnknownNode
	}
	nb, ok := c.Node(b)
	if !ok {
		return 0, ErrUnknownNode
	}
	id := len(c.edges)
	c.edges = append(c.edges, &Edge{ID: id, Start: a, End: b})
	na.Edges = append(na.Edges, id)
	if a != b {
		nb.Edges = append(nb.Edges, id)
	}
	return id, nil
}

// Unlink tombstones an edge and removes it from both endpoints' edge lists.
func (c *Canvas) Unlink(id int) error {
	e, ok := c.Edge(id)
	if !ok {
		return ErrUnknownEdge
	}
	for _, end := range []int{e.Start, e.End} {
		if n, ok := c.Node(end); ok {
			n.Edges = slices.DeleteFunc(n.Edges, func(x int) bool { return x == id })
		}
	}
	c.edges[id] = nil
	return nil
}

// SetBlack sets the color of a node.
func (c *Canvas) SetBlack(id int, black bool) error {
	n, ok := c.Node(id)
	if !ok {
		return ErrUnknownNode
	}
	n.Black = black
	return nil
}

// ToggleColor flips a node between red and black.
func (c *Canvas) ToggleColor(id int) error {
	n, ok := c.Node(id)
	if !ok {
		return ErrUnknownNode
	}
	n.Black = !n.Black
	return nil
}

// SetLabel sets the label of a node.
func (c *Canvas) SetLabel(id, label int) error {
	if _, ok := c.Node(id); !ok {
		return ErrUnknownNode
	}
	c.labels[id] = label
	return nil
}

// ClearLabel removes the label of a node.
func (c *Canvas) ClearLabel(id int) error {
	if _, ok := c.Node(id); !ok {
		return ErrUnknownNode
	}
	delete(c.labels, id)
	return nil
}

// Label returns the label of a node and whether one is set.
func (c *Canvas) Label(id int) (int, bool) {
	l, ok := c.labels[id]
	return l, ok
}

// SetRoot designates the root node used by verification.
func (c *Canvas) SetRoot(id int) error {
	if _, ok := c.Node(id); !ok {
		return ErrUnknownNode
	}
	c.root = id
	return nil
}

// Root returns the designated root id, or [NoRoot].
func (c *Canvas) Root() int { return c.root }

// Node returns the live node with the given id.
// The returned pointer refers to the stored node.
func (c *Canvas) Node(id int) (*Node, bool) {
	if id < 0 || id >= len(c.nodes) || c.nodes[id] == nil {
		return nil, false
	}
	return c.nodes[id], true
}

// Edge returns the live edge with the given id.
func (c *Canvas) Edge(id int) (*Edge, bool) {
	if id < 0 || id >= len(c.edges) || c.edges[id] == nil {
		return nil, false
	}
	return c.edges[id], true
}

// Nodes returns all live nodes in id order.
func (c *Canvas) Nodes() []*Node {
	out := make([]*Node, 0, len(c.nodes))
	for _, n := range c.nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns all live edges in id order.
func (c *Canvas) Edges() []*Edge {
	out := make([]*Edge, 0, len(c.edges))
	for _, e := range c.edges {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// LiveNodeCount returns the number of nodes that have not been removed.
func (c *Canvas) LiveNodeCount() int {
	n := 0
	for _, node := range c.nodes {
		if node != nil {
			n++
		}
	}
	return n
}

// NodeSlots returns the length of the node array, tombstones included.
func (c *Canvas) NodeSlots() int { return len(c.nodes) }

// EdgeSlots returns the length of the edge array, tombstones included.
func (c *Canvas) EdgeSlots() int { return len(c.edges) }

// Restore rebuilds a canvas from raw slots, tombstones included. It is the
// inverse of reading Nodes/Edges with their ids and is used by decoders.
// Edge lists on nodes are rebuilt from the edges in id order.
func Restore(nodeSlots, edgeSlots int, nodes []Node, edges []Edge, labels map[int]int, root int) (*Canvas, error) {
	if nodeSlots < 0 {
		return nil, ErrUnknownNode
	}
	if edgeSlots < 0 {
		return nil, ErrUnknownEdge
	}
	c := &Canvas{
		nodes:  make([]*Node, nodeSlots),
		edges:  make([]*Edge, edgeSlots),
		labels: make(map[int]int),
		root:   NoRoot,
	}
	for _, n := range nodes {
		if n.ID < 0 || n.ID >= nodeSlots || c.nodes[n.ID] != nil {
			return nil, ErrUnknownNode
		}
		c.nodes[n.ID] = &Node{ID: n.ID, Black: n.Black}
	}
	slices.SortFunc(edges, func(a, b Edge) int { return a.ID - b.ID })
	for _, e := range edges {
		if e.ID < 0 || e.ID >= edgeSlots || c.edges[e.ID] != nil {
			return nil, ErrUnknownEdge
		}
		na, okA := c.Node(e.Start)
		nb, okB := c.Node(e.End)
		if !okA || !okB {
			return nil, ErrUnknownNode
		}
		c.edges[e.ID] = &Edge{ID: e.ID, Start: e.Start, End: e.End}
		na.Edges = append(na.Edges, e.ID)
		if e.Start != e.End {
			nb.Edges = append(nb.Edges, e.ID)
		}
	}
	for id, l := range labels {
		if err := c.SetLabel(id, l); err != nil {
			return nil, err
		}
	}
	if root != NoRoot {
		if err := c.SetRoot(root); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// FromTree draws a tree onto a fresh canvas: one node per tree entry (node id
// = arena index), one edge per parent/child link, root set to the tree root.
// Edges are added in arena order, left link before right link.
func FromTree(t *rbtree.Tree) *Canvas {
	c := New()
	for _, n := range t.Nodes {
		c.AddLabeledNode(n.Label, n.Black)
	}
	for _, n := range t.Nodes {
		if n.Left != rbtree.None {
			_, _ = c.Link(n.Index, n.Left)
		}
		if n.Right != rbtree.None {
			_, _ = c.Link(n.Index, n.Right)
		}
	}
	if !t.IsEmpty() {
		c.root = t.Root
	}
	return c
}
