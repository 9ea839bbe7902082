package rbtree

// Position is a layout hint for one tree node: Column is the node's rank in
// in-order sequence and Depth its distance from the root.
type Position struct {
	Column int `json:"column"`
	Depth  int `json:"depth"`
}

// Positions returns a layout hint for every node reachable from the root,
// keyed by arena index. Because indices are stable, callers can diff the
// result before and after an insertion to animate node movement.
func (t *Tree) Positions() map[int]Position {
	pos := make(map[int]Position, len(t.Nodes))
	col := 0
	var walk func(idx, depth int)
	walk = func(idx, depth int) {
		n := t.Node(idx)
		if n == nil {
			return
		}
		walk(n.Left, depth+1)
		pos[idx] = Position{Column: col, Depth: depth}
		col++
		walk(n.Right, depth+1)
	}
	walk(t.Root, 0)
	return pos
}
