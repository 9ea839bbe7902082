package nodelink_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/rbcheck/pkg/rbtree"
	"github.com/matzehuels/rbcheck/pkg/render/nodelink"
)

func ExampleTreeToDOT() {
	tr := rbtree.New()
	_, _ = tr.Insert(2)
	_, _ = tr.Insert(1)
	_, _ = tr.Insert(3)

	dot := nodelink.TreeToDOT(tr, nodelink.DefaultOptions())
	for _, line := range strings.Split(dot, "\n") {
		if strings.Contains(line, "->") {
			fmt.Println(strings.TrimSpace(line))
		}
	}
	// Output:
	// n0 -> n1;
	// n0 -> n2;
}
