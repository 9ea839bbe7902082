package verify_test

import (
	"fmt"

	"github.com/matzehuels/rbcheck/pkg/canvas"
	"github.com/matzehuels/rbcheck/pkg/verify"
)

func ExampleVerify() {
	c := canvas.New()
	root := c.AddLabeledNode(10, true)
	left := c.AddLabeledNode(5, true)
	right := c.AddLabeledNode(15, true)
	_, _ = c.Link(root, left)
	_, _ = c.Link(root, right)

	res := verify.Verify(c, root)
	fmt.Println(res.Reason, res.BlackHeight)
	fmt.Println(res.Tree.InOrderLabels())
	// Output:
	// valid 2
	// [5 10 15]
}

func ExampleVerify_failure() {
	c := canvas.New()
	a := c.AddLabeledNode(7, true)
	b := c.AddLabeledNode(7, true)
	_, _ = c.Link(a, b)

	res := verify.Verify(c, a)
	fmt.Println(res.Reason, res.Stage, res.State.Flags())
	fmt.Println(res.Err())
	// Output:
	// not_a_valid_tree structure [sameLabel]
	// NOT_A_VALID_TREE: graph is not a valid red-black tree
}
