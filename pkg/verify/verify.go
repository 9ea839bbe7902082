package verify

import (
	"context"
	"time"

	"github.com/matzehuels/rbcheck/pkg/canvas"
	errs "github.com/matzehuels/rbcheck/pkg/errors"
	"github.com/matzehuels/rbcheck/pkg/observability"
	"github.com/matzehuels/rbcheck/pkg/rbtree"
)

// Reason is the coarse outcome tag of a verification run.
type Reason string

const (
	EmptyTreeValid       Reason = "empty_tree_valid"
	Valid                Reason = "valid"
	NoRoot               Reason = "no_root"
	RootNotBlack         Reason = "root_not_black"
	NotAValidTree        Reason = "not_a_valid_tree"
	BlackHeightViolation Reason = "black_height_violation"
)

// Stage identifies the pipeline stage that rejected the canvas.
type Stage string

const (
	StageNone         Stage = ""
	StageRoot         Stage = "root"
	StageStructure    Stage = "structure"
	StageOrder        Stage = "order"
	StageConnectivity Stage = "connectivity"
	StageBlackHeight  Stage = "black_height"
)

// Result is the outcome of a verification run.
type Result struct {
	Reason Reason `json:"reason"`
	Stage  Stage  `json:"stage,omitempty"`
	State  State  `json:"state"`

	// Tree is the linked tree array. On success its root is at index 0;
	// on failure it holds whatever the builder reached.
	Tree *rbtree.Tree `json:"tree"`

	// BlackHeight is the number of black nodes on every root-to-leaf path
	// of a valid tree.
	BlackHeight int `json:"black_height"`
}

// OK reports whether the canvas is a valid Red-Black tree.
func (r Result) OK() bool {
	return r.Reason == Valid || r.Reason == EmptyTreeValid
}

// Message returns the human-readable message for the result's reason.
func (r Result) Message() string {
	switch r.Reason {
	case EmptyTreeValid:
		return "empty tree is valid"
	case Valid:
		return "valid red-black tree"
	case NoRoot:
		return "no root selected"
	case RootNotBlack:
		return "root must be black"
	case NotAValidTree:
		return "graph is not a valid red-black tree"
	case BlackHeightViolation:
		return "black height differs between paths"
	}
	return string(r.Reason)
}

// Err converts a failing result into a structured error. It returns nil for
// successful results.
func (r Result) Err() error {
	var code errs.Code
	switch r.Reason {
	case EmptyTreeValid, Valid:
		return nil
	case NoRoot:
		code = errs.ErrCodeNoRoot
	case RootNotBlack:
		code = errs.ErrCodeRootNotBlack
	case BlackHeightViolation:
		code = errs.ErrCodeBlackHeightViolation
	default:
		code = errs.ErrCodeNotAValidTree
	}
	return errs.New(code, "%s", r.Message())
}

// Verify checks whether the canvas rooted at rootID is a valid Red-Black
// tree. The canvas is only read.
func Verify(c *canvas.Canvas, rootID int) Result {
	return VerifyContext(context.Background(), c, rootID)
}

// VerifyContext is [Verify] with a context passed to observability hooks.
func VerifyContext(ctx context.Context, c *canvas.Canvas, rootID int) Result {
	start := time.Now()
	live := c.LiveNodeCount()
	observability.Engine().OnVerifyStart(ctx, live)

	res := run(c, rootID, live)

	observability.Engine().OnVerifyComplete(ctx, string(res.Reason), string(res.Stage), res.State.NumVisited, time.Since(start))
	return res
}

func run(c *canvas.Canvas, rootID, live int) Result {
	res := Result{Tree: rbtree.New()}
	if live == 0 {
		res.Reason = EmptyTreeValid
		res.State.BlackHeightGood = true
		return res
	}

	root, ok := c.Node(rootID)
	if !ok {
		return fail(res, NoRoot, StageRoot)
	}
	if !root.Black {
		return fail(res, RootNotBlack, StageRoot)
	}

	b := &builder{c: c, st: &res.State, tree: res.Tree}
	b.build(rootID, canvas.NoRoot)
	if res.Tree.Len() > 0 {
		res.Tree.Root = 0
	}
	link(res.Tree)
	if res.State.Failed() {
		return fail(res, NotAValidTree, StageStructure)
	}

	lo, hi := fullRange()
	if !checkOrder(res.Tree, &res.State, res.Tree.Root, lo, hi) {
		return fail(res, NotAValidTree, StageOrder)
	}

	if res.Tree.Len() != live {
		res.State.Disconnected = true
		return fail(res, NotAValidTree, StageConnectivity)
	}

	h := blackHeight(res.Tree, res.Tree.Root)
	if h == -1 {
		return fail(res, BlackHeightViolation, StageBlackHeight)
	}
	res.State.BlackHeightGood = true
	res.BlackHeight = h
	res.Reason = Valid
	return res
}

func fail(res Result, reason Reason, stage Stage) Result {
	res.Reason = reason
	res.Stage = stage
	return res
}

// CheckTree re-proves the Red-Black invariants on an already linked tree,
// typically after an insertion. Structure and connectivity hold by
// construction and are not checked.
func CheckTree(t *rbtree.Tree) Result {
	res := Result{Tree: t}
	if t.IsEmpty() {
		res.Reason = EmptyTreeValid
		res.State.BlackHeightGood = true
		return res
	}
	if !t.IsBlack(t.Root) {
		return fail(res, RootNotBlack, StageRoot)
	}
	res.State.NumVisited = len(t.InOrder())
	lo, hi := fullRange()
	if !checkOrder(t, &res.State, t.Root, lo, hi) {
		return fail(res, NotAValidTree, StageOrder)
	}
	h := blackHeight(t, t.Root)
	if h == -1 {
		return fail(res, BlackHeightViolation, StageBlackHeight)
	}
	res.State.BlackHeightGood = true
	res.BlackHeight = h
	res.Reason = Valid
	return res
}

// Insert adds label to a verified tree and re-proves the invariants on the
// result. On a duplicate label the tree is unchanged, the log is ["fail"] and
// the error carries code DUPLICATE_LABEL.
func Insert(ctx context.Context, t *rbtree.Tree, label int) (rbtree.Actions, Result, error) {
	start := time.Now()
	actions, err := t.Insert(label)
	observability.Engine().OnInsertComplete(ctx, label, actions.Strings(), time.Since(start), err)
	if err != nil {
		return actions, Result{}, err
	}
	res := CheckTree(t)
	if !res.OK() {
		return actions, res, errs.Wrap(errs.ErrCodeInternal, res.Err(), "insert %d broke the tree", label)
	}
	return actions, res, nil
}
