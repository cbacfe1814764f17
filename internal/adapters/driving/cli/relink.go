package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/prrelink/internal/adapters/driven/manifest"
	"github.com/custodia-labs/prrelink/internal/core/domain"
)

// stdinIsTerminal reports whether prompts can be shown.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var relinkCmd = &cobra.Command{
	Use:   "relink SOURCE [DESTINATION]",
	Short: "Rewrite media paths in a project file",
	Long: `Rewrite the media paths of a project file using a relocation table.

The table comes from a manifest written by the copy tool (--manifest) and/or
individual old=new pairs (--map). Later entries win when the same original
path appears twice, so --map pairs override the manifest.

Without DESTINATION the source project is overwritten in place; an existing
file is first copied to <file>.bak unless backups are disabled in settings.

Examples:
  prrelink relink edit.prproj --manifest copied.json
  prrelink relink edit.prproj edit-relinked.prproj --map /Volumes/Old=/Volumes/New
  prrelink relink edit.prproj --manifest copied.csv --dry-run --changes`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRelink,
}

func init() {
	addRelocationFlags(relinkCmd)
	relinkCmd.Flags().Bool("dry-run", false, "Run every stage except writing")
	relinkCmd.Flags().BoolP("yes", "y", false, "Overwrite without asking")
	relinkCmd.Flags().Bool("changes", false, "List every rewritten path")
	rootCmd.AddCommand(relinkCmd)
}

// addRelocationFlags registers --manifest and --map on cmd.
func addRelocationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("manifest", "f", "", "Relocation manifest (.json, .yaml, .toml, .csv)")
	cmd.Flags().StringArrayP("map", "m", nil, "Relocation pair original=destination (repeatable)")
}

func runRelink(cmd *cobra.Command, args []string) error {
	if relinkService == nil {
		return errors.New("relink service not configured")
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	yes, _ := cmd.Flags().GetBool("yes")
	showChanges, _ := cmd.Flags().GetBool("changes")

	relocations, given, err := collectRelocations(cmd)
	if err != nil {
		return err
	}
	if !given {
		return fmt.Errorf("%w: no relocations given, use --manifest or --map", domain.ErrInvalidInput)
	}

	req := domain.RelinkRequest{
		SourcePath:  args[0],
		Relocations: relocations,
		DryRun:      dryRun,
	}
	if len(args) == 2 {
		req.DestinationPath = args[1]
	}

	if !dryRun && !yes {
		ok, err := confirmOverwrite(cmd, req.Destination())
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Aborted.")
			return nil
		}
	}

	outcome := relinkService.Relink(cmd.Context(), req)
	printOutcome(cmd, req, outcome, showChanges || verbose)

	if !outcome.Success {
		return fmt.Errorf("relink failed at %s stage", outcome.Stage)
	}
	return nil
}

// collectRelocations merges the manifest with --map pairs, manifest first.
// given reports whether any relocation source was supplied at all.
func collectRelocations(cmd *cobra.Command) (entries []domain.RelocationEntry, given bool, err error) {
	path, _ := cmd.Flags().GetString("manifest")
	pairs, _ := cmd.Flags().GetStringArray("map")

	if path != "" {
		if manifestLoader == nil {
			return nil, false, errors.New("manifest loader not configured")
		}
		loaded, err := manifestLoader.Load(cmd.Context(), path)
		if err != nil {
			return nil, false, err
		}
		entries = append(entries, loaded...)
		given = true
	}

	for _, pair := range pairs {
		entry, err := manifest.ParsePair(pair)
		if err != nil {
			return nil, false, err
		}
		entries = append(entries, entry)
		given = true
	}

	return entries, given, nil
}

// confirmOverwrite asks before replacing an existing file. Without a
// terminal there is nobody to ask and the write goes ahead.
func confirmOverwrite(cmd *cobra.Command, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if !stdinIsTerminal() {
		return true, nil
	}

	cmd.Printf("Overwrite %s? [y/N]: ", path)
	answer := strings.ToLower(readLine(bufio.NewReader(cmd.InOrStdin())))
	return answer == "y" || answer == "yes", nil
}
