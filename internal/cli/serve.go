package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/silverhaven/eventscout/internal/pipeline"
	"github.com/silverhaven/eventscout/internal/server"
	"github.com/silverhaven/eventscout/internal/source"
	"github.com/silverhaven/eventscout/internal/store"
)

var serveAddr string

// serveCmd starts the HTTP trigger surface
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pipeline trigger and event reads over HTTP",
	Long: `Serve starts the HTTP server exposing:

  POST /api/v1/events/sync   trigger a pipeline run (bearer secret or ?key=)
  GET  /api/v1/events        upcoming events, ordered by date
  GET  /healthz              liveness
  GET  /metrics              Prometheus metrics

The sync endpoint fails closed: without EVENTSCOUT_CRON_SECRET or
EVENTSCOUT_MANUAL_KEY configured, no caller can trigger a run.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if cfg.Server.CronSecret == "" && cfg.Server.ManualKey == "" {
		fmt.Println("Warning: no trigger secret configured; sync endpoint will reject all callers")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := store.NewMongo(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}

	pl := pipeline.FromConfig(cfg, source.Default(), st)

	return server.New(cfg.Server, pl, st).Start()
}
