package io

import (
	"fmt"
	"slices"

	"github.com/matzehuels/rbcheck/pkg/canvas"
	errs "github.com/matzehuels/rbcheck/pkg/errors"
)

// MaxSlots bounds the node and edge arrays of a decoded snapshot, tombstones
// included. Ids and slot counts come from user input and size allocations.
const MaxSlots = 1 << 16

// snapshot is the on-disk form of a canvas, shared by JSON and TOML.
type snapshot struct {
	Root      *int   `json:"root,omitempty" toml:"root,omitempty"`
	NodeSlots int    `json:"node_slots,omitempty" toml:"node_slots,omitempty"`
	EdgeSlots int    `json:"edge_slots,omitempty" toml:"edge_slots,omitempty"`
	Nodes     []node `json:"nodes" toml:"nodes"`
	Edges     []edge `json:"edges" toml:"edges"`
}

type node struct {
	ID    int  `json:"id" toml:"id"`
	Label *int `json:"label,omitempty" toml:"label,omitempty"`
	Black bool `json:"black" toml:"black"`
}

type edge struct {
	ID   int `json:"id" toml:"id"`
	From int `json:"from" toml:"from"`
	To   int `json:"to" toml:"to"`
}

func fromCanvas(c *canvas.Canvas) snapshot {
	s := snapshot{
		NodeSlots: c.NodeSlots(),
		EdgeSlots: c.EdgeSlots(),
		Nodes:     []node{},
		Edges:     []edge{},
	}
	if r := c.Root(); r != canvas.NoRoot {
		s.Root = &r
	}
	for _, n := range c.Nodes() {
		nd := node{ID: n.ID, Black: n.Black}
		if l, ok := c.Label(n.ID); ok {
			nd.Label = &l
		}
		s.Nodes = append(s.Nodes, nd)
	}
	for _, e := range c.Edges() {
		s.Edges = append(s.Edges, edge{ID: e.ID, From: e.Start, To: e.End})
	}
	return s
}

func (s snapshot) toCanvas() (*canvas.Canvas, error) {
	nodeSlots, edgeSlots := s.NodeSlots, s.EdgeSlots
	if nodeSlots < 0 || edgeSlots < 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "negative slot count")
	}
	nodes := make([]canvas.Node, 0, len(s.Nodes))
	labels := make(map[int]int)
	for _, n := range s.Nodes {
		if n.ID < 0 {
			return nil, fmt.Errorf("node %d: negative id", n.ID)
		}
		if n.ID >= MaxSlots {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "node %d: id exceeds %d slots", n.ID, MaxSlots)
		}
		nodeSlots = max(nodeSlots, n.ID+1)
		nodes = append(nodes, canvas.Node{ID: n.ID, Black: n.Black})
		if n.Label != nil {
			labels[n.ID] = *n.Label
		}
	}
	edges := make([]canvas.Edge, 0, len(s.Edges))
	for _, e := range s.Edges {
		if e.ID < 0 {
			return nil, fmt.Errorf("edge %d: negative id", e.ID)
		}
		if e.ID >= MaxSlots {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "edge %d: id exceeds %d slots", e.ID, MaxSlots)
		}
		edgeSlots = max(edgeSlots, e.ID+1)
		edges = append(edges, canvas.Edge{ID: e.ID, Start: e.From, End: e.To})
	}
	if s.NodeSlots > MaxSlots || s.EdgeSlots > MaxSlots {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "snapshot exceeds %d slots", MaxSlots)
	}
	slices.SortFunc(nodes, func(a, b canvas.Node) int { return a.ID - b.ID })

	root := canvas.NoRoot
	if s.Root != nil {
		root = *s.Root
	}
	c, err := canvas.Restore(nodeSlots, edgeSlots, nodes, edges, labels, root)
	if err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	return c, nil
}
