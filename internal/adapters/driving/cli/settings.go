package cli

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/prrelink/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure path matching, output format, backups, history and
metrics export.

Settings are stored in config.toml under the prrelink home directory
(~/.prrelink, or $PRRELINK_HOME) and apply to the next run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsCaseModeCmd = &cobra.Command{
	Use:   "case-mode [MODE]",
	Short: "Set path matching case mode",
	Long: `Set how letter case is treated when matching project paths against the
relocation table.

Available modes:
  auto   - Fold case on case-insensitive hosts and for Windows-style paths
  always - Always case-insensitive
  never  - Always case-sensitive

Without MODE you are asked to pick one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsCaseMode,
}

var settingsCompressionCmd = &cobra.Command{
	Use:   "compression [STRATEGY]",
	Short: "Set output compression",
	Long: `Set how relinked projects are written.

Available strategies:
  prefer_compressed - gzip, falling back to plain XML if compression fails
  plain_text_only   - plain XML (opens in the host application all the same)

Without STRATEGY you are asked to pick one.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsCompression,
}

var settingsBackupCmd = &cobra.Command{
	Use:   "backup on|off",
	Short: "Toggle .bak copies before overwriting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsBackup,
}

var settingsHistoryCmd = &cobra.Command{
	Use:   "history on|off",
	Short: "Toggle run history",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsHistory,
}

var settingsMetricsCmd = &cobra.Command{
	Use:   "metrics [PATH]",
	Short: "Set the Prometheus textfile export path",
	Long: `Set the file that run metrics are written to after every relink, in the
Prometheus text format (for node_exporter's textfile collector).

Run without PATH to disable the export.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsMetrics,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsCaseModeCmd)
	settingsCmd.AddCommand(settingsCompressionCmd)
	settingsCmd.AddCommand(settingsBackupCmd)
	settingsCmd.AddCommand(settingsHistoryCmd)
	settingsCmd.AddCommand(settingsMetricsCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Relink]")
	cmd.Printf("  Case mode: %s\n", settings.Relink.CaseMode.Description())
	cmd.Printf("  Compression: %s\n", settings.Relink.Compression.Description())
	cmd.Printf("  Backup: %s\n", onOff(settings.Relink.Backup))
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Enabled: %s\n", onOff(settings.History.Enabled))
	cmd.Println()

	cmd.Println("[Metrics]")
	if settings.Metrics.TextfilePath != "" {
		cmd.Printf("  Textfile: %s\n", settings.Metrics.TextfilePath)
	} else {
		cmd.Println("  Textfile: (disabled)")
	}

	return nil
}

func runSettingsCaseMode(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	modes := []domain.CaseMode{domain.CaseModeAuto, domain.CaseModeAlways, domain.CaseModeNever}

	var mode domain.CaseMode
	if len(args) == 1 {
		mode = domain.CaseMode(args[0])
	} else {
		cmd.Println("Select case mode:")
		for i, m := range modes {
			cmd.Printf("  %d. %s\n", i+1, m.Description())
		}
		cmd.Print("\nEnter choice [1]: ")
		input := readLine(bufio.NewReader(cmd.InOrStdin()))
		mode = modes[parseChoice(input, len(modes), 1)-1]
	}

	if err := settingsService.SetCaseMode(mode); err != nil {
		return fmt.Errorf("failed to set case mode: %w", err)
	}
	cmd.Printf("Case mode set to: %s\n", mode.Description())
	return nil
}

func runSettingsCompression(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	strategies := []domain.CompressionStrategy{domain.CompressionPreferCompressed, domain.CompressionPlainTextOnly}

	var strategy domain.CompressionStrategy
	if len(args) == 1 {
		strategy = domain.CompressionStrategy(args[0])
	} else {
		cmd.Println("Select compression:")
		for i, s := range strategies {
			cmd.Printf("  %d. %s\n", i+1, s.Description())
		}
		cmd.Print("\nEnter choice [1]: ")
		input := readLine(bufio.NewReader(cmd.InOrStdin()))
		strategy = strategies[parseChoice(input, len(strategies), 1)-1]
	}

	if err := settingsService.SetCompression(strategy); err != nil {
		return fmt.Errorf("failed to set compression: %w", err)
	}
	cmd.Printf("Compression set to: %s\n", strategy.Description())
	return nil
}

func runSettingsBackup(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	enabled, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetBackup(enabled); err != nil {
		return fmt.Errorf("failed to set backup: %w", err)
	}
	cmd.Printf("Backup: %s\n", onOff(enabled))
	return nil
}

func runSettingsHistory(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	enabled, err := parseOnOff(args[0])
	if err != nil {
		return err
	}
	if err := settingsService.SetHistoryEnabled(enabled); err != nil {
		return fmt.Errorf("failed to set history: %w", err)
	}
	cmd.Printf("History: %s\n", onOff(enabled))
	return nil
}

func runSettingsMetrics(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	if err := settingsService.SetMetricsTextfile(path); err != nil {
		return fmt.Errorf("failed to set metrics textfile: %w", err)
	}

	if path == "" {
		cmd.Println("Metrics export disabled.")
	} else {
		cmd.Printf("Metrics textfile: %s\n", path)
	}
	return nil
}
