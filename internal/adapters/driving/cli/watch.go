package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prrelink/internal/adapters/driving/styles"
	"github.com/custodia-labs/prrelink/internal/adapters/driving/watch"
	"github.com/custodia-labs/prrelink/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch SOURCE [DESTINATION] --manifest FILE",
	Short: "Relink again whenever the manifest changes",
	Long: `Relink once, then watch the relocation manifest and relink again every
time the copy tool updates it. Runs until interrupted (Ctrl+C).

Bursts of changes are debounced and runs are throttled, so a copy tool that
rewrites its manifest after every file does not trigger a run per file.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringP("manifest", "f", "", "Relocation manifest to watch (required)")
	watchCmd.Flags().Bool("dry-run", false, "Run every stage except writing")
	watchCmd.Flags().Duration("debounce", 500*time.Millisecond, "Quiet period after a change before relinking")
	watchCmd.Flags().Duration("min-interval", 2*time.Second, "Minimum time between runs")
	_ = watchCmd.MarkFlagRequired("manifest")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if relinkService == nil {
		return errors.New("relink service not configured")
	}
	if manifestLoader == nil {
		return errors.New("manifest loader not configured")
	}

	manifestPath, _ := cmd.Flags().GetString("manifest")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	debounce, _ := cmd.Flags().GetDuration("debounce")
	minInterval, _ := cmd.Flags().GetDuration("min-interval")

	req := domain.RelinkRequest{SourcePath: args[0], DryRun: dryRun}
	if len(args) == 2 {
		req.DestinationPath = args[1]
	}

	cfg := watch.DefaultConfig(manifestPath, req)
	cfg.Debounce = debounce
	if minInterval > 0 {
		cfg.RunsPerSecond = 1 / minInterval.Seconds()
	} else {
		cfg.RunsPerSecond = 0
	}

	w, err := watch.New(relinkService, manifestLoader, cfg)
	if err != nil {
		return err
	}

	st := styles.DefaultStyles(cmd.OutOrStdout())
	w.OnRun(func(req domain.RelinkRequest, outcome *domain.RelinkOutcome) {
		stamp := time.Now().Format(time.TimeOnly)
		text := fmt.Sprintf("%d/%d updated", outcome.UpdatedCount, outcome.ReferenceCount)
		if !outcome.Success {
			text = "failed at " + outcome.Stage.String()
		}
		cmd.Printf("%s %s  %s\n", st.Muted.Render(stamp), st.Status(outcome.Success, text), req.Destination())
		for _, msg := range outcome.Errors {
			cmd.Println("  " + st.Error.Render(msg))
		}
	})

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", manifestPath)
	return w.Run(cmd.Context())
}
