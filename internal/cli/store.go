package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/rbcheck/pkg/errors"
	"github.com/matzehuels/rbcheck/pkg/io"
	"github.com/matzehuels/rbcheck/pkg/store"
)

// storeCommand creates the canvas store command group.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Save and fetch canvases by id",
		Long: `Store keeps canvases under generated ids, in ~/.config/rbcheck/canvases/ by
default or in MongoDB when mongo_uri (or RBCHECK_MONGO_URI) is configured.`,
	}

	cmd.AddCommand(c.storeSaveCommand())
	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeGetCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

func (c *CLI) storeSaveCommand() *cobra.Command {
	var name, id string
	cmd := &cobra.Command{
		Use:   "save <snapshot>",
		Short: "Save a canvas snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cv, err := io.Import(args[0])
			if err != nil {
				return err
			}
			s, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			var doc *store.Document
			if id != "" {
				doc, err = s.Get(ctx, id)
				if err != nil {
					return storeErr(err, id)
				}
				if err := doc.SetCanvas(cv); err != nil {
					return err
				}
				if name != "" {
					doc.Name = name
				}
			} else {
				if name == "" {
					name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				}
				doc, err = store.NewDocument(name, cv)
				if err != nil {
					return err
				}
			}
			if err := s.Put(ctx, doc); err != nil {
				return err
			}
			printSuccess("Saved %s", StyleHighlight.Render(doc.Name))
			printKeyValue("id", doc.ID)
			printNextStep("Fetch it with", fmt.Sprintf("%s store get %s -o %s", appName, doc.ID, filepath.Base(args[0])))
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name (default: file name)")
	cmd.Flags().StringVar(&id, "id", "", "replace the canvas stored under this id")
	return cmd
}

func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored canvases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			docs, err := s.List(ctx)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				printInfo("No stored canvases")
				return nil
			}
			fmt.Println(documentTable(docs, time.Now()))
			return nil
		},
	}
}

// documentTable renders stored documents, most recent first.
func documentTable(docs []*store.Document, now time.Time) string {
	rows := make([][]string, len(docs))
	for i, d := range docs {
		rows[i] = []string{d.ID, d.Name, formatRelativeTime(d.UpdatedAt, now)}
	}
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		}).
		Render()
}

// formatRelativeTime formats t relative to now ("3h ago").
func formatRelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

func (c *CLI) storeGetCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Fetch a stored canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			doc, err := s.Get(ctx, args[0])
			if err != nil {
				return storeErr(err, args[0])
			}
			cv, err := doc.Canvas()
			if err != nil {
				return err
			}
			if output == "" {
				data, err := io.Encode(cv, "json")
				if err != nil {
					return err
				}
				fmt.Println(string(data))
				return nil
			}
			if err := io.Export(cv, output); err != nil {
				return err
			}
			printSuccess("Fetched %s", StyleHighlight.Render(doc.Name))
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the snapshot here (.json or .toml) instead of stdout")
	return cmd
}

func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a stored canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Delete(ctx, args[0]); err != nil {
				return storeErr(err, args[0])
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

// storeErr turns store.ErrNotFound into a NOT_FOUND error naming id.
func storeErr(err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return errs.Wrap(errs.ErrCodeNotFound, err, "no canvas with id %s", id)
	}
	return err
}
