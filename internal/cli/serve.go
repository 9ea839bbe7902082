package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/rbcheck/pkg/api"
	"github.com/matzehuels/rbcheck/pkg/store"
)

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		memory  bool
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes verification, insertion and the canvas store over HTTP.
Canvases go to MongoDB when configured, otherwise to the file store; use
--memory for a throwaway in-process store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if addr == "" {
				addr = c.config.Addr
			}

			var s store.Store
			if memory {
				s = store.WithHooks(store.NewMemoryStore(), "memory")
			} else {
				var err error
				if s, err = c.newStore(ctx); err != nil {
					return err
				}
			}
			defer s.Close()

			tc := c.newCache(ctx, noCache)
			defer tc.Close()

			srv := api.New(api.Options{Store: s, Cache: tc, Logger: c.Logger})
			printSuccess("Listening on %s", StyleHighlight.Render("http://"+addr))
			if err := srv.ListenAndServe(ctx, addr); err != nil {
				return err
			}
			c.Logger.Info("server stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+defaultAddr+")")
	cmd.Flags().BoolVar(&memory, "memory", false, "keep canvases in memory only")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the tree and render cache")
	return cmd
}
