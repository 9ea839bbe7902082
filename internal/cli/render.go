package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rbcheck/pkg/cache"
	"github.com/matzehuels/rbcheck/pkg/canvas"
	errs "github.com/matzehuels/rbcheck/pkg/errors"
	"github.com/matzehuels/rbcheck/pkg/io"
	"github.com/matzehuels/rbcheck/pkg/rbtree"
	"github.com/matzehuels/rbcheck/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string // output file path; derived from the input when empty
	format   string // svg, png or dot
	tree     bool   // render the verified tree instead of the raw canvas
	detailed bool   // show ids and indices in node labels
	root     int    // root node id for --tree; -1 means the snapshot's root
	noCache  bool   // skip the render and tree caches
}

// validFormats is the set of supported output formats.
var validFormats = map[string]bool{"svg": true, "png": true, "dot": true}

// validateFormat checks that the requested format is supported.
func validateFormat(format string) error {
	if !validFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'png', or 'dot')", format)
	}
	return nil
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{format: "svg", root: canvas.NoRoot}

	cmd := &cobra.Command{
		Use:   "render <snapshot>",
		Short: "Draw a canvas or its verified tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.format = strings.ToLower(opts.format)
			if err := validateFormat(opts.format); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format's extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg (default), png, dot")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "render the verified tree instead of the canvas")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node ids and tree indices")
	cmd.Flags().IntVarP(&opts.root, "root", "r", opts.root, "root node id for --tree (default: the snapshot's root)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not read or write the cache")

	return cmd
}

func (c *CLI) runRender(ctx context.Context, path string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	nopts := nodelink.DefaultOptions()
	nopts.Detailed = opts.detailed

	var dot string
	if opts.tree {
		_, res, err := c.verifiedTree(ctx, path, opts.root, opts.noCache)
		if err != nil {
			return err
		}
		dot = nodelink.TreeToDOT(res.Tree, nopts)
	} else {
		cv, err := io.Import(path)
		if err != nil {
			return err
		}
		dot = nodelink.CanvasToDOT(cv, nopts)
	}

	data, err := c.renderDOT(ctx, dot, opts)
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + "." + opts.format
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	prog.done("Rendered " + opts.format)
	printFile(out)
	return nil
}

// renderDOT converts dot to the requested format, going through the render
// cache for the Graphviz formats.
func (c *CLI) renderDOT(ctx context.Context, dot string, opts renderOpts) ([]byte, error) {
	if opts.format == "dot" {
		return []byte(dot), nil
	}

	rc := c.newCache(ctx, opts.noCache)
	defer rc.Close()

	key := cache.NewDefaultKeyer().RenderKey(cache.Hash([]byte(dot)), cache.RenderKeyOpts{
		Format:    opts.format,
		Detailed:  opts.detailed,
		Highlight: rbtree.None,
	})
	if data, hit, err := rc.Get(ctx, key); err == nil && hit {
		return data, nil
	}

	var (
		data []byte
		err  error
	)
	switch opts.format {
	case "png":
		data, err = nodelink.RenderPNG(ctx, dot)
	default:
		data, err = nodelink.RenderSVG(ctx, dot)
	}
	if err != nil {
		return nil, err
	}
	_ = rc.Set(ctx, key, data, cache.RenderTTL)
	return data, nil
}
