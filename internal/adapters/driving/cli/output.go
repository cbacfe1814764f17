package cli

import (
	"bufio"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prrelink/internal/adapters/driving/styles"
	"github.com/custodia-labs/prrelink/internal/core/domain"
)

// printOutcome writes a summary of a relink run.
func printOutcome(cmd *cobra.Command, req domain.RelinkRequest, outcome *domain.RelinkOutcome, showChanges bool) {
	st := styles.DefaultStyles(cmd.OutOrStdout())

	cmd.Println(st.Title.Render("Relink") + " " + st.Path.Render(req.SourcePath))
	if req.Destination() != req.SourcePath {
		cmd.Println("  " + st.Field("Output", st.Path.Render(req.Destination())))
	}

	if outcome.Success {
		cmd.Println("  " + st.Status(true, string(domain.StageDone)))
	} else {
		cmd.Println("  " + st.Status(false, "failed at "+outcome.Stage.String()))
	}

	cmd.Println("  " + st.Field("References", strconv.Itoa(outcome.ReferenceCount)))
	cmd.Println("  " + st.Field("Updated", strconv.Itoa(outcome.UpdatedCount)))
	cmd.Println("  " + st.Field("Unmatched", strconv.Itoa(outcome.UnmatchedCount)))
	if outcome.MalformedCount > 0 {
		cmd.Println("  " + st.Field("Malformed", st.Warning.Render(strconv.Itoa(outcome.MalformedCount))))
	}

	for _, note := range outcome.Notes {
		cmd.Println("  " + st.Muted.Render("note: "+note))
	}
	for _, msg := range outcome.Errors {
		cmd.Println("  " + st.Error.Render("error: "+msg))
	}

	if showChanges && len(outcome.Changes) > 0 {
		cmd.Println()
		cmd.Println(st.Subtitle.Render("Changes"))
		for _, c := range outcome.Changes {
			cmd.Printf("  %s %s\n", c.Element, st.Muted.Render(c.Locator.String()))
			cmd.Printf("    %s\n    -> %s\n", c.OldPath, st.Path.Render(c.NewPath))
		}
	}
}

// printRun writes the full record of a stored run.
func printRun(cmd *cobra.Command, run *domain.RelinkRun) {
	st := styles.DefaultStyles(cmd.OutOrStdout())

	cmd.Println(st.Title.Render("Run " + run.ID))
	cmd.Println("  " + st.Field("Started", run.StartedAt.Local().Format(time.RFC3339)))
	cmd.Println("  " + st.Field("Duration", run.Duration().Round(time.Millisecond).String()))
	if run.DryRun {
		cmd.Println("  " + st.Field("Mode", "dry run"))
	}

	req := domain.RelinkRequest{SourcePath: run.SourcePath, DestinationPath: run.DestinationPath}
	printOutcome(cmd, req, &run.Outcome, true)
}

// shortID trims a UUID to its first block for tables.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

// parseOnOff accepts the usual spellings of a boolean switch.
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1", "enable", "enabled":
		return true, nil
	case "off", "false", "no", "0", "disable", "disabled":
		return false, nil
	default:
		return false, fmt.Errorf("%w: expected on or off, got %q", domain.ErrInvalidInput, s)
	}
}

// onOff renders a boolean for settings output.
func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// sortedKinds returns kinds ordered by count, then name.
func sortedKinds(counts map[domain.MediaKind]int) []domain.MediaKind {
	kinds := make([]domain.MediaKind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		if counts[kinds[i]] != counts[kinds[j]] {
			return counts[kinds[i]] > counts[kinds[j]]
		}
		return kinds[i] < kinds[j]
	})
	return kinds
}
