package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/letolabs/treemachine/pkg/pipeline"
	"github.com/letolabs/treemachine/pkg/source"
)

// neo4jCommand creates the neo4j command.
func (c *CLI) neo4jCommand() *cobra.Command {
	var (
		out          outputOpts
		cache        cacheFlags
		relType      string
		rankProperty string
	)

	cmd := &cobra.Command{
		Use:   "neo4j [parent-id]",
		Short: "Resolve the candidates entering a node of a Neo4j graph",
		Long: `Resolve the ranked candidate relationships entering one node of a Neo4j
graph. The connection is read from the [neo4j] section of the config file or
TREEMACHINE_NEO4J_* environment variables. Every node must carry its
descendant set in an "mrca" property.`,
		Example: `  treemachine neo4j 42
  treemachine neo4j 42 --rank-property priority -f newick,json -o tree`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parent, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid parent id %q: %w", args[0], err)
			}
			opts := out.pipelineOptions(cache.refresh)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if relType != "" {
				cfg.Neo4j.RelType = relType
			}
			if rankProperty != "" {
				cfg.Neo4j.RankProperty = rankProperty
			}
			if err := cache.apply(cfg); err != nil {
				return err
			}

			ctx := cmd.Context()
			spinner := newSpinnerWithContext(ctx, "Connecting to "+cfg.Neo4j.URI+"...")
			spinner.Start()
			driver, err := source.NewNeo4jDriver(ctx, cfg.Neo4j.Source())
			if err != nil {
				spinner.StopWithError("Connection failed")
				return err
			}
			spinner.Stop()

			src, err := source.NewNeo4jSource(driver, source.Neo4jOptions{
				Parent:       parent,
				RelType:      cfg.Neo4j.RelType,
				RankProperty: cfg.Neo4j.RankProperty,
				Logger:       c.Logger,
			})
			if err != nil {
				_ = driver.Close(ctx)
				return err
			}
			defer src.Close(ctx)

			return c.runResolve(ctx, cfg, src, opts, out.output, "node-"+args[0])
		},
	}

	out.register(cmd)
	cache.register(cmd)
	cmd.Flags().StringVar(&relType, "rel-type", "", "candidate relationship type (default from config)")
	cmd.Flags().StringVar(&rankProperty, "rank-property", "", "relationship property ordering candidates, lowest first (default from config)")
	return cmd
}
