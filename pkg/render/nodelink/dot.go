package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/rbcheck/pkg/canvas"
	"github.com/matzehuels/rbcheck/pkg/rbtree"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed adds the arena index and canvas node id to tree labels, and
	// the node id to canvas labels.
	Detailed bool

	// Highlight is the tree index drawn with a thick outline, or
	// [rbtree.None]. Step viewers use it to mark the node an action touched.
	Highlight int
}

// DefaultOptions returns options with no highlighted node.
func DefaultOptions() Options {
	return Options{Highlight: rbtree.None}
}

const header = `  bgcolor="transparent";
  node [shape=circle, style=filled, fontsize=18, fontname="Helvetica", width=0.6, fixedsize=true];
  ranksep=0.4;
  nodesep=0.3;
`

// TreeToDOT converts a linked tree to Graphviz DOT, drawn top-down from the
// root. A missing child is kept as an invisible placeholder so a lone right
// child still leans right.
func TreeToDOT(t *rbtree.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph T {\n")
	buf.WriteString(header)
	buf.WriteString("  edge [arrowhead=none];\n\n")

	order := t.InOrder()
	for _, idx := range order {
		n := t.Nodes[idx]
		label := strconv.Itoa(n.Label)
		if opts.Detailed {
			label = fmt.Sprintf("%d\n#%d", n.Label, n.Index)
		}
		attrs := colorAttrs(n.Black)
		attrs = append(attrs, fmt.Sprintf("label=%q", label))
		if idx == opts.Highlight {
			attrs = append(attrs, "penwidth=4", "color=gold")
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", idx, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, idx := range order {
		n := t.Nodes[idx]
		if n.Left == rbtree.None && n.Right == rbtree.None {
			continue
		}
		for side, child := range [2]int{n.Left, n.Right} {
			if child != rbtree.None {
				fmt.Fprintf(&buf, "  n%d -> n%d;\n", idx, child)
				continue
			}
			fmt.Fprintf(&buf, "  nil%d_%d [style=invis, label=\"\"];\n", idx, side)
			fmt.Fprintf(&buf, "  n%d -> nil%d_%d [style=invis];\n", idx, idx, side)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// CanvasToDOT converts a canvas to an undirected Graphviz graph. Unlabeled
// nodes show a question mark; the root has a double outline.
func CanvasToDOT(c *canvas.Canvas, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString(header)
	buf.WriteString("\n")

	for _, n := range c.Nodes() {
		label := "?"
		if l, ok := c.Label(n.ID); ok {
			label = strconv.Itoa(l)
		}
		if opts.Detailed {
			label = fmt.Sprintf("%s\nid %d", label, n.ID)
		}
		attrs := colorAttrs(n.Black)
		attrs = append(attrs, fmt.Sprintf("label=%q", label))
		if n.ID == c.Root() {
			attrs = append(attrs, "shape=doublecircle")
		}
		fmt.Fprintf(&buf, "  c%d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range c.Edges() {
		fmt.Fprintf(&buf, "  c%d -- c%d;\n", e.Start, e.End)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func colorAttrs(black bool) []string {
	if black {
		return []string{"fillcolor=black", "fontcolor=white"}
	}
	return []string{"fillcolor=red", "fontcolor=white"}
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
