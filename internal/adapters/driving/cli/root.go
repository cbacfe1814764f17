// Package cli implements the prrelink command line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prrelink/internal/core/domain"
	"github.com/custodia-labs/prrelink/internal/core/ports/driving"
	"github.com/custodia-labs/prrelink/internal/logger"
)

// version is set at build time through SetVersion.
var version = "dev"

// verbose enables debug logging for every command.
var verbose bool

// ManifestLoader reads relocation manifests for --manifest flags.
type ManifestLoader interface {
	Load(ctx context.Context, path string) ([]domain.RelocationEntry, error)
}

// Services holds the core services the commands drive.
type Services struct {
	Relink    driving.RelinkService
	History   driving.HistoryService
	Settings  driving.SettingsService
	Manifests ManifestLoader
}

// Services used by commands, injected by SetServices.
var (
	relinkService   driving.RelinkService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
	manifestLoader  ManifestLoader
)

var rootCmd = &cobra.Command{
	Use:   "prrelink",
	Short: "Relink media paths in NLE project files",
	Long: `prrelink rewrites the media file paths stored inside non-linear editing
project files (Premiere .prproj, FCP xmeml) after the media has been copied
to a new location.

Give it the project and the relocation table written by your copy tool:

  prrelink relink edit.prproj --manifest copied.json

Every path in the project that matches an original path in the table is
rewritten to the copied file. The output is validated before it is written,
and unmatched paths are left untouched.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// SetServices injects the services used by the commands.
func SetServices(s Services) {
	relinkService = s.Relink
	historyService = s.History
	settingsService = s.Settings
	manifestLoader = s.Manifests
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
