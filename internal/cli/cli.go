// Package cli implements the treemachine command-line interface.
//
// # Commands
//
//   - resolve: resolve the candidates in a JSON document
//   - neo4j: resolve the candidate edges entering one node of a Neo4j graph
//   - serve: run the HTTP API
//   - cache: inspect and clear the result cache
//   - version: print build information
//
// All commands support --verbose (-v) for debug-level logging and
// --config for an explicit TOML configuration file.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/letolabs/treemachine/pkg/buildinfo"
	"github.com/letolabs/treemachine/pkg/config"
	"github.com/letolabs/treemachine/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "treemachine"

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
		Use:           appName,
		Short:         "Treemachine resolves ranked parent-child candidates into a tree",
		Long:          `Treemachine accepts candidate parent-child edges in rank order, rejects those whose descendant sets conflict with higher-ranked ones, and writes the resulting tree as Newick, JSON, or a Graphviz drawing.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/treemachine/config.toml)")

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.neo4jCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// versionCommand prints the build information.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads the --config file, or the default location if unset.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// cacheFlags are the cache-related flags shared by the resolving commands.
type cacheFlags struct {
	noCache bool
	refresh bool
	backend string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	f.registerBackend(cmd)
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "resolve again even if a cached result exists")
}

// registerBackend registers the flags selecting the cache only.
func (f *cacheFlags) registerBackend(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().StringVar(&f.backend, "cache-backend", "", "cache backend: "+strings.Join(config.Backends, ", ")+" (default from config)")
}

// apply overrides the configured backend with the flags.
func (f *cacheFlags) apply(cfg *config.Config) error {
	switch {
	case f.noCache:
		cfg.Cache.Backend = config.BackendNone
	case f.backend != "":
		cfg.Cache.Backend = f.backend
	}
	return cfg.Validate()
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg *config.Config) (*pipeline.Runner, error) {
	dir, err := cacheDir()
	if err != nil && cfg.Cache.Backend == config.BackendFile && cfg.Cache.Dir == "" {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		cfg.Cache.Backend = config.BackendNone
	}
	cc, err := cfg.OpenCache(ctx, dir)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	runner.TTL = cfg.Cache.TTL
	return runner, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/treemachine/).
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

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.DefaultFormat}
	}
	return strings.Split(s, ",")
}
