package cli

import (
	"github.com/spf13/cobra"

	"github.com/letolabs/treemachine/pkg/api"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		cache cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the resolution HTTP API",
		Long: `Serve exposes POST /v1/resolve and GET /healthz. Results are cached in the
configured backend, so several instances can share a Redis or MongoDB cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := cache.apply(cfg); err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, cfg)
			if err != nil {
				return err
			}
			defer runner.Close()

			handler := api.NewServer(runner, c.Logger).Router()
			return api.ListenAndServe(ctx, addr, handler, c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cache.registerBackend(cmd)
	return cmd
}
