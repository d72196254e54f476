package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/crimewatch/internal/api"
)

// newServeCmd creates the serve command: the HTTP API over the record
// store and the processing pipeline.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the crimewatch HTTP API: stored records and statistics,
single-article processing, health and readiness checks, and
Prometheus metrics.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			handler := api.NewHandler(a.pipe, a.store, version, a.log)
			server := api.NewServer(handler, api.ServerConfig{
				Port:  a.cfg.Server.Port,
				Debug: a.cfg.Logging.Development,
			}, a.log)

			return server.Run(ctx)
		},
	}
}
