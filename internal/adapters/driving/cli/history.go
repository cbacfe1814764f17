package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prrelink/internal/adapters/driving/styles"
	"github.com/custodia-labs/prrelink/internal/core/domain"
)

var historyCmd = &cobra.Command{
	Use:   "history [RUN_ID]",
	Short: "Show past relinking runs",
	Long: `List recent relinking runs, newest first, or show one run in full.

History is recorded when history.enabled is on (the default).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of runs to list (0 = all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if len(args) == 1 {
		run, err := historyService.Get(cmd.Context(), args[0])
		if errors.Is(err, domain.ErrNotFound) {
			run, err = findRunByPrefix(cmd, args[0])
		}
		if err != nil {
			if errors.Is(err, domain.ErrNotImplemented) {
				return errHistoryDisabled
			}
			return fmt.Errorf("failed to get run: %w", err)
		}
		printRun(cmd, run)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := historyService.List(cmd.Context(), limit)
	if err != nil {
		if errors.Is(err, domain.ErrNotImplemented) {
			return errHistoryDisabled
		}
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	st := styles.DefaultStyles(cmd.OutOrStdout())
	for i := range runs {
		run := &runs[i]
		status := st.Status(run.Outcome.Success, run.Outcome.Stage.String())
		cmd.Printf("%-8s  %s  %s  %d/%d updated  %s\n",
			shortID(run.ID),
			run.StartedAt.Local().Format(time.DateTime),
			status,
			run.Outcome.UpdatedCount,
			run.Outcome.ReferenceCount,
			run.SourcePath,
		)
	}
	return nil
}

// findRunByPrefix resolves the short IDs printed by the list view.
func findRunByPrefix(cmd *cobra.Command, prefix string) (*domain.RelinkRun, error) {
	runs, err := historyService.List(cmd.Context(), 0)
	if err != nil {
		return nil, err
	}

	var found *domain.RelinkRun
	for i := range runs {
		if !strings.HasPrefix(runs[i].ID, prefix) {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: run ID prefix %q is ambiguous", domain.ErrInvalidInput, prefix)
		}
		found = &runs[i]
	}
	if found == nil {
		return nil, fmt.Errorf("run %s: %w", prefix, domain.ErrNotFound)
	}
	return found, nil
}

var errHistoryDisabled = errors.New("run history is disabled; enable it with 'prrelink settings history on'")
