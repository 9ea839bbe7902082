package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rbcheck/pkg/cache"
	"github.com/matzehuels/rbcheck/pkg/canvas"
	"github.com/matzehuels/rbcheck/pkg/io"
	"github.com/matzehuels/rbcheck/pkg/rbtree"
	"github.com/matzehuels/rbcheck/pkg/verify"
)

// verifyOpts holds the command-line flags for the verify command.
type verifyOpts struct {
	root    int  // root node id; -1 means the snapshot's root
	jsonOut bool // print the result as JSON
	flags   bool // print the full flag table
	tree    bool // draw the linked tree
	noCache bool // skip the tree cache
}

// verifyCommand creates the verify command.
func (c *CLI) verifyCommand() *cobra.Command {
	opts := verifyOpts{root: canvas.NoRoot}

	cmd := &cobra.Command{
		Use:   "verify <snapshot>",
		Short: "Check whether a canvas is a valid red-black tree",
		Long: `Verify reads a canvas snapshot (.json or .toml) and checks, in order, the
root, the tree structure, the search order, connectivity and the black height.
The first failing stage is reported together with every flag it raised.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVerify(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.root, "root", "r", opts.root, "root node id (default: the snapshot's root)")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&opts.flags, "flags", false, "print every verification flag")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "draw the verified tree")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the tree cache")

	return cmd
}

func (c *CLI) runVerify(ctx context.Context, path string, opts verifyOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	cv, err := io.Import(path)
	if err != nil {
		return err
	}
	root := resolveRoot(cv, opts.root)

	tc := c.newCache(ctx, opts.noCache)
	defer tc.Close()

	res, cached, err := cache.Verified(ctx, tc, cache.NewDefaultKeyer(), cv, root)
	if err != nil {
		return err
	}
	logger.Debug("verified", "path", path, "root", root, "cached", cached)

	if opts.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return res.Err()
	}

	printResult(res)
	printStats(cv.LiveNodeCount(), len(cv.Edges()), cached)
	if opts.flags {
		printNewline()
		fmt.Println(flagTable(res.State))
	}
	if opts.tree && res.OK() {
		printNewline()
		fmt.Println(drawTree(res.Tree, rbtree.None))
	}
	prog.done(fmt.Sprintf("Verified %d nodes", res.State.NumVisited))
	return res.Err()
}

// resolveRoot returns flagRoot when it was given, else the snapshot's root.
func resolveRoot(cv *canvas.Canvas, flagRoot int) int {
	if flagRoot != canvas.NoRoot {
		return flagRoot
	}
	return cv.Root()
}

// verifiedTree verifies the canvas at path and returns the linked tree, or
// the verification error.
func (c *CLI) verifiedTree(ctx context.Context, path string, root int, noCache bool) (*canvas.Canvas, verify.Result, error) {
	cv, err := io.Import(path)
	if err != nil {
		return nil, verify.Result{}, err
	}
	tc := c.newCache(ctx, noCache)
	defer tc.Close()

	res, _, err := cache.Verified(ctx, tc, cache.NewDefaultKeyer(), cv, resolveRoot(cv, root))
	if err != nil {
		return nil, res, err
	}
	if !res.OK() {
		return cv, res, res.Err()
	}
	return cv, res, nil
}
