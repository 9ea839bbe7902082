package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rbcheck/pkg/canvas"
	errs "github.com/matzehuels/rbcheck/pkg/errors"
	"github.com/matzehuels/rbcheck/pkg/io"
)

// canvasCommand creates the canvas editing command group. Every subcommand
// reads the snapshot, applies one edit and writes it back in place.
func (c *CLI) canvasCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "canvas",
		Short: "Edit canvas snapshot files",
	}

	cmd.AddCommand(c.canvasNewCommand())
	cmd.AddCommand(c.canvasShowCommand())
	cmd.AddCommand(c.canvasAddCommand())
	cmd.AddCommand(c.canvasColorCommand())
	cmd.AddCommand(c.canvasLabelCommand())
	cmd.AddCommand(c.canvasUnlabelCommand())
	cmd.AddCommand(c.canvasDeleteCommand())
	cmd.AddCommand(c.canvasRootCommand())
	cmd.AddCommand(c.canvasLinkCommand())
	cmd.AddCommand(c.canvasUnlinkCommand())

	return cmd
}

// editCanvas applies fn to the snapshot at path and saves the result.
func editCanvas(path string, fn func(cv *canvas.Canvas) error) error {
	cv, err := io.Import(path)
	if err != nil {
		return err
	}
	if err := fn(cv); err != nil {
		return err
	}
	return io.Export(cv, path)
}

// parseID parses a node or edge id argument.
func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 0 {
		return 0, errs.New(errs.ErrCodeInvalidInput, "id must be a non-negative integer: %q", raw)
	}
	return id, nil
}

func (c *CLI) canvasNewCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "new <snapshot>",
		Short: "Create an empty canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); err == nil && !force {
				return errs.New(errs.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", args[0])
			}
			if err := io.Export(canvas.New(), args[0]); err != nil {
				return err
			}
			printSuccess("Created empty canvas")
			printFile(args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) canvasShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <snapshot>",
		Short: "List the nodes and edges of a canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cv, err := io.Import(args[0])
			if err != nil {
				return err
			}
			fmt.Println(canvasTable(cv))
			printStats(cv.LiveNodeCount(), len(cv.Edges()), false)
			return nil
		},
	}
}

// canvasTable renders one row per live node: id, label, color, root marker
// and incident edges.
func canvasTable(cv *canvas.Canvas) string {
	var rows [][]string
	for _, n := range cv.Nodes() {
		label := "-"
		if l, ok := cv.Label(n.ID); ok {
			label = strconv.Itoa(l)
		}
		color := "red"
		if n.Black {
			color = "black"
		}
		root := ""
		if n.ID == cv.Root() {
			root = "root"
		}
		var edges []string
		for _, eid := range n.Edges {
			if e, ok := cv.Edge(eid); ok {
				edges = append(edges, fmt.Sprintf("e%d→%d", e.ID, e.Other(n.ID)))
			}
		}
		rows = append(rows, []string{strconv.Itoa(n.ID), label, color, root, strings.Join(edges, " ")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Label", "Color", "", "Edges").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 2 && rows[row][2] == "red" {
				return lipgloss.NewStyle().Foreground(colorRed)
			}
			if col == 4 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})
	return t.Render()
}

func (c *CLI) canvasAddCommand() *cobra.Command {
	var (
		label string
		red   bool
	)
	cmd := &cobra.Command{
		Use:   "add <snapshot>",
		Short: "Add a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var id int
			err := editCanvas(args[0], func(cv *canvas.Canvas) error {
				if label == "" {
					id = cv.AddNode(!red)
					return nil
				}
				l, err := errs.ParseLabel(label)
				if err != nil {
					return err
				}
				id = cv.AddLabeledNode(l, !red)
				return nil
			})
			if err != nil {
				return err
			}
			printSuccess("Added node %s", StyleNumber.Render(strconv.Itoa(id)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&label, "label", "l", "", "node label")
	cmd.Flags().BoolVar(&red, "red", false, "color the node red (default black)")
	return cmd
}

func (c *CLI) canvasColorCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "color <snapshot> <id> [red|black|toggle]",
		Short:     "Change the color of a node",
		Args:      cobra.RangeArgs(2, 3),
		ValidArgs: []string{"red", "black", "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			mode := "toggle"
			if len(args) == 3 {
				mode = strings.ToLower(args[2])
			}
			return editCanvas(args[0], func(cv *canvas.Canvas) error {
				switch mode {
				case "red":
					return cv.SetBlack(id, false)
				case "black":
					return cv.SetBlack(id, true)
				case "toggle":
					return cv.ToggleColor(id)
				}
				return errs.New(errs.ErrCodeInvalidInput, "color must be red, black or toggle: %q", mode)
			})
		},
	}
}

func (c *CLI) canvasLabelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "label <snapshot> <id> <label>",
		Short: "Set the label of a node",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			label, err := errs.ParseLabel(args[2])
			if err != nil {
				return err
			}
			return editCanvas(args[0], func(cv *canvas.Canvas) error {
				return cv.SetLabel(id, label)
			})
		},
	}
}

func (c *CLI) canvasUnlabelCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unlabel <snapshot> <id>",
		Short: "Remove the label of a node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return editCanvas(args[0], func(cv *canvas.Canvas) error {
				return cv.ClearLabel(id)
			})
		},
	}
}

func (c *CLI) canvasDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <snapshot> <id>",
		Short: "Delete a node and its edges",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return editCanvas(args[0], func(cv *canvas.Canvas) error {
				return cv.RemoveNode(id)
			})
		},
	}
}

func (c *CLI) canvasRootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "root <snapshot> <id>",
		Short: "Select the root node",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return editCanvas(args[0], func(cv *canvas.Canvas) error {
				return cv.SetRoot(id)
			})
		},
	}
}

func (c *CLI) canvasLinkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "link <snapshot> <from> <to>",
		Short: "Connect two nodes with an edge",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseID(args[1])
			if err != nil {
				return err
			}
			b, err := parseID(args[2])
			if err != nil {
				return err
			}
			var eid int
			err = editCanvas(args[0], func(cv *canvas.Canvas) error {
				eid, err = cv.Link(a, b)
				return err
			})
			if err != nil {
				return err
			}
			printSuccess("Added edge %s", StyleNumber.Render(strconv.Itoa(eid)))
			return nil
		},
	}
}

func (c *CLI) canvasUnlinkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unlink <snapshot> <edge>",
		Short: "Remove an edge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			return editCanvas(args[0], func(cv *canvas.Canvas) error {
				return cv.Unlink(id)
			})
		},
	}
}
