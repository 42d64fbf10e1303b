package cmd

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/yeimages/resfinder/constants/lipgloss"
	"github.com/yeimages/resfinder/utils"
)

// resetCacheCmd represents the reset-cache command
var resetCacheCmd = &cobra.Command{
	Use:   "reset-cache",
	Short: "Reset the extraction cache of resfinder",
	Long: `The 'reset-cache' command removes all cached extraction results from the cache directory.
Use this command to clear a corrupted cache or to reclaim disk space. Results never depend on
the cache, so resetting it only makes the next scan slower.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Parse flags
		force, _ := cmd.Flags().GetBool("force")
		stats, _ := cmd.Flags().GetBool("stats")

		rootDependencies, err := handleRootCommand(cmd, "")
		if err != nil {
			return err
		}

		// Handle reset-cache command
		return handleResetCacheCommand(cmd, rootDependencies, force, stats)
	},
}

func init() {
	// Define command-specific flags
	resetCacheCmd.Flags().BoolP("force", "f", false, "Force cache reset without confirmation")
	resetCacheCmd.Flags().BoolP("stats", "s", false, "Show cache statistics instead of resetting")

	// Add the reset-cache command to the root command
	rootCmd.AddCommand(resetCacheCmd)
}

func handleResetCacheCommand(cmd *cobra.Command, rootDependencies *RootDependencies, force bool, showStats bool) error {
	out := cmd.OutOrStdout()
	cache := rootDependencies.Cache

	if cache == nil {
		fmt.Fprintln(out, lipgloss.Yellow.Render("Cache is disabled. No cache to reset."))
		return nil
	}

	// Show cache statistics if requested
	if showStats {
		fmt.Fprintln(out, lipgloss.Info.Render("Cache Statistics:"))
		usage, err := cache.Usage()
		if err != nil {
			fmt.Fprintln(out, lipgloss.Yellow.Render(fmt.Sprintf("Warning: Could not show statistics: %v", err)))
			return nil
		}
		fmt.Fprintf(out, "  Cache Directory: %s\n", usage.Dir)
		fmt.Fprintf(out, "  Cached Files: %d\n", usage.Files)
		fmt.Fprintf(out, "  Total Size: %s\n", formatBytes(usage.TotalSize))
		performance := cache.Performance()
		fmt.Fprintf(out, "  Hit Rate: %.1f%% of %d lookups\n", performance.HitRate(), performance.Lookups)

		// Only show stats, skip the actual reset
		return nil
	}

	// Confirm reset (if not forced)
	if !force {
		confirmed, err := utils.ConfirmPrompt(cmd.Context(), cmd.InOrStdin(), out, "Are you sure you want to reset the extraction cache?")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(out, lipgloss.Yellow.Render("Cache reset cancelled."))
			return nil
		}
	}

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true).WithWriter(os.Stderr)

	spinnerInstance, _ := spinner.Start("Resetting extraction cache...")
	err := cache.Clear()
	_ = spinnerInstance.Stop()

	if err != nil {
		return fmt.Errorf("error resetting cache: %w", err)
	}

	fmt.Fprintln(out, lipgloss.Green.Render("✓ Extraction cache has been successfully reset!"))
	return nil
}
