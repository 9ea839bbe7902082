package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rbcheck/pkg/canvas"
	errs "github.com/matzehuels/rbcheck/pkg/errors"
	"github.com/matzehuels/rbcheck/pkg/io"
	"github.com/matzehuels/rbcheck/pkg/verify"
)

// insertOpts holds the command-line flags for the insert command.
type insertOpts struct {
	root    int    // root node id; -1 means the snapshot's root
	output  string // write the resulting canvas here
	step    bool   // step through the insertion interactively
	noCache bool   // skip the tree cache
}

// insertCommand creates the insert command.
func (c *CLI) insertCommand() *cobra.Command {
	opts := insertOpts{root: canvas.NoRoot}

	cmd := &cobra.Command{
		Use:   "insert <snapshot> <label>",
		Short: "Insert a label into a verified canvas",
		Long: `Insert verifies the canvas, inserts the label with top-down red-black
insertion and prints every decision taken. Use --step to replay the insertion
one action at a time, and --output to save the resulting tree as a canvas.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			label, err := errs.ParseLabel(args[1])
			if err != nil {
				return err
			}
			return c.runInsert(cmd.Context(), args[0], label, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.root, "root", "r", opts.root, "root node id (default: the snapshot's root)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the resulting canvas (.json or .toml)")
	cmd.Flags().BoolVar(&opts.step, "step", false, "step through the insertion interactively")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the tree cache")

	return cmd
}

func (c *CLI) runInsert(ctx context.Context, path string, label int, opts insertOpts) error {
	logger := loggerFromContext(ctx)

	_, res, err := c.verifiedTree(ctx, path, opts.root, opts.noCache)
	if err != nil {
		if res.Reason != "" {
			printResult(res)
		}
		return err
	}

	if opts.step {
		// A duplicate still yields the one-step log; the error is reported below.
		steps, _ := res.Tree.Clone().Trace(label)
		m := newStepModel(label, res.Tree, steps)
		if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
			return fmt.Errorf("step viewer: %w", err)
		}
	}

	t := res.Tree.Clone()
	actions, after, err := verify.Insert(ctx, t, label)
	if err != nil {
		printError("insert %d: %s", label, errs.UserMessage(err))
		printDetail("actions: %s", strings.Join(actions.Strings(), " "))
		return err
	}

	printSuccess("Inserted %s", StyleNumber.Render(fmt.Sprint(label)))
	printKeyValue("actions", strings.Join(actions.Strings(), " "))
	printKeyValue("black height", fmt.Sprint(after.BlackHeight))
	printNewline()
	mark, _ := t.Lookup(label)
	fmt.Println(drawTree(t, mark))

	if opts.output != "" {
		if err := io.Export(canvas.FromTree(t), opts.output); err != nil {
			return err
		}
		printFile(opts.output)
		logger.Debug("wrote canvas", "path", opts.output, "nodes", t.Len())
	}
	return nil
}
