package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/silverhaven/eventscout/internal/metrics"
	"github.com/silverhaven/eventscout/internal/pipeline"
	"github.com/silverhaven/eventscout/internal/source"
	"github.com/silverhaven/eventscout/internal/store"
)

var (
	runTimeout time.Duration
	noDelay    bool
)

// runCmd triggers one pipeline run from the command line. Cron hosts that
// can reach the database directly use this instead of the HTTP trigger,
// so no shared secret travels over the network.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the event discovery pipeline once and exit",
	Long: `Run fetches every catalog source, extracts and normalizes events,
and upserts them into the store. Per-source failures are recorded in the
summary without stopping the batch.

Example:
  eventscout run
  eventscout run --timeout 10m --no-delay`,
	Args: cobra.NoArgs,
	RunE: runOnce,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().DurationVar(&runTimeout, "timeout", 15*time.Minute, "overall run timeout")
	runCmd.Flags().BoolVar(&noDelay, "no-delay", false, "disable pacing between sources")
}

func runOnce(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noDelay {
		cfg.Pipeline.SourceDelay = 0
	}

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	st, err := store.NewMongo(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer func() { _ = st.Close(context.Background()) }()

	metrics.RunsTotal.WithLabelValues("cli").Inc()

	summary := pipeline.FromConfig(cfg, source.Default(), st).Run(ctx)

	if cfg.Output.Verbose {
		for _, src := range summary.Sources {
			status := "ok"
			if src.Error != "" {
				status = src.Error
			}
			fmt.Fprintf(os.Stderr, "  %-40s found=%d upserted=%d %s\n",
				src.SourceName, src.Found, src.Upserted, status)
		}
	}

	fmt.Printf("Processed %d sources: %d events found, %d upserted, %d errors (%s)\n",
		summary.SourcesAttempted, summary.EventsFound, summary.EventsUpserted,
		summary.SourcesWithError, summary.Duration.Round(time.Millisecond))

	if summary.SourcesWithError == summary.SourcesAttempted && summary.SourcesAttempted > 0 {
		return fmt.Errorf("all %d sources failed", summary.SourcesAttempted)
	}
	return nil
}
