package nodelink

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/matzehuels/rbcheck/pkg/canvas"
	"github.com/matzehuels/rbcheck/pkg/rbtree"
)

func sampleTree(t *testing.T) *rbtree.Tree {
	t.Helper()
	tr := rbtree.New()
	for _, l := range []int{10, 5, 15, 20} {
		if _, err := tr.Insert(l); err != nil {
			t.Fatal(err)
		}
	}
	return tr
}

func TestTreeToDOT(t *testing.T) {
	tr := sampleTree(t)
	dot := TreeToDOT(tr, DefaultOptions())

	if !strings.HasPrefix(dot, "digraph T {") {
		t.Error("TreeToDOT() output missing digraph declaration")
	}
	for _, want := range []string{`label="10"`, `label="20"`, "fillcolor=red", "fillcolor=black"} {
		if !strings.Contains(dot, want) {
			t.Errorf("TreeToDOT() output missing %s", want)
		}
	}
	idx15, _ := tr.Lookup(15)
	idx20, _ := tr.Lookup(20)
	if !strings.Contains(dot, "n"+strconv.Itoa(idx15)+" -> n"+strconv.Itoa(idx20)) {
		t.Errorf("TreeToDOT() output missing edge 15 -> 20:\n%s", dot)
	}
	// 15 has no left child, so a placeholder keeps 20 on the right.
	if !strings.Contains(dot, "nil"+strconv.Itoa(idx15)+"_0 [style=invis") {
		t.Errorf("TreeToDOT() output missing left placeholder for 15:\n%s", dot)
	}
	if strings.Contains(dot, "penwidth") {
		t.Error("no node should be highlighted by default")
	}
}

func TestTreeToDOT_DetailedAndHighlight(t *testing.T) {
	tr := sampleTree(t)
	dot := TreeToDOT(tr, Options{Detailed: true, Highlight: tr.Root})

	if !strings.Contains(dot, `label="10\n#0"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
	if strings.Count(dot, "penwidth=4") != 1 {
		t.Errorf("want exactly one highlighted node:\n%s", dot)
	}
}

func TestCanvasToDOT(t *testing.T) {
	c := canvas.New()
	a := c.AddLabeledNode(10, true)
	b := c.AddNode(false)
	_, _ = c.Link(a, b)
	_, _ = c.Link(b, b)
	_ = c.SetRoot(a)

	dot := CanvasToDOT(c, DefaultOptions())
	for _, want := range []string{"graph G {", `label="?"`, "c0 -- c1;", "c1 -- c1;", "shape=doublecircle"} {
		if !strings.Contains(dot, want) {
			t.Errorf("CanvasToDOT() output missing %s:\n%s", want, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), TreeToDOT(sampleTree(t), DefaultOptions()))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
