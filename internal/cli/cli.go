// Package cli implements the rbcheck command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/rbcheck/pkg/buildinfo"
	"github.com/matzehuels/rbcheck/pkg/cache"
	"github.com/matzehuels/rbcheck/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "rbcheck"

	// defaultAddr is the listen address for "rbcheck serve".
	defaultAddr = "127.0.0.1:8080"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "rbcheck verifies drawn graphs as red-black trees",
		Long: `rbcheck checks whether a hand-drawn graph of colored, labeled nodes is a
valid red-black tree, and simulates inserting a label into a verified tree
with a step-by-step log of every decision.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			registerLogHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/rbcheck/config.toml)")

	// cobra adds the completion command itself.
	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.insertCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.canvasCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.serveCommand())

	return root
}

// =============================================================================
// Backend Factories
// =============================================================================

// newCache opens the configured tree cache. Redis is used when a URL is
// configured; otherwise entries live in the XDG cache directory. A cache
// that cannot be opened degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if c.config.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, c.config.RedisURL, appName+":")
		if err == nil {
			return rc
		}
		c.Logger.Warn("redis unavailable, caching disabled", "err", err)
		return cache.NewNullCache()
	}
	dir := c.config.CacheDir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache unavailable", "dir", dir, "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// newStore opens the configured canvas store: MongoDB when a URI is
// configured, otherwise the file store.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	if c.config.MongoURI != "" {
		sp := newSpinnerWithContext(ctx, "Connecting to MongoDB...")
		sp.Start()
		ms, err := store.NewMongoStore(ctx, c.config.MongoURI, c.config.MongoDatabase)
		sp.Stop()
		if err != nil {
			return nil, err
		}
		return store.WithHooks(ms, "mongo"), nil
	}
	fs, err := store.NewFileStore(c.config.StoreDir)
	if err != nil {
		return nil, err
	}
	return store.WithHooks(fs, "file"), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/rbcheck/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/rbcheck/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
