package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prrelink/internal/adapters/driving/styles"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect PROJECT",
	Short: "List the media paths referenced by a project file",
	Long: `Read a project file and list every media path it references, without
modifying anything.

With --manifest or --map each path is shown with the destination it would be
rewritten to, which makes inspect a preview of relink.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	addRelocationFlags(inspectCmd)
	inspectCmd.Flags().Bool("summary", false, "Print counts only")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	if relinkService == nil {
		return errors.New("relink service not configured")
	}

	summary, _ := cmd.Flags().GetBool("summary")

	relocations, _, err := collectRelocations(cmd)
	if err != nil {
		return err
	}

	report, err := relinkService.Inspect(cmd.Context(), args[0], relocations)
	if err != nil {
		return fmt.Errorf("failed to inspect %s: %w", args[0], err)
	}

	st := styles.DefaultStyles(cmd.OutOrStdout())

	format := "plain XML"
	if report.Compressed {
		format = "gzip"
	}

	cmd.Println(st.Title.Render("Project") + " " + st.Path.Render(report.Path))
	cmd.Println("  " + st.Field("Format", format))
	cmd.Println("  " + st.Field("Root", report.RootElement))
	cmd.Println("  " + st.Field("References", strconv.Itoa(len(report.References))))

	counts := report.CountByKind()
	for _, kind := range sortedKinds(counts) {
		cmd.Printf("    %-6s %d\n", kind, counts[kind])
	}
	if report.MalformedCount > 0 {
		cmd.Println("  " + st.Field("Malformed", st.Warning.Render(strconv.Itoa(report.MalformedCount))))
	}
	if len(relocations) > 0 {
		cmd.Println("  " + st.Field("Matched", fmt.Sprintf("%d of %d", report.MatchedCount, len(report.References))))
	}
	for _, msg := range report.ValidationErrors {
		cmd.Println("  " + st.Warning.Render("invalid: "+msg))
	}

	if summary || len(report.References) == 0 {
		return nil
	}

	cmd.Println()
	for _, ref := range report.References {
		line := fmt.Sprintf("  [%s] %s %s  %s", ref.Kind, ref.Element, st.Muted.Render(ref.Locator.String()), ref.DecodedPath)
		if ref.Malformed {
			line += " " + st.Warning.Render("(malformed)")
		}
		cmd.Println(line)
		if ref.Destination != "" {
			cmd.Println("    -> " + st.Path.Render(ref.Destination))
		}
	}

	return nil
}
