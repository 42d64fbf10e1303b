package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/yeimages/resfinder/constants/lipgloss"
	"github.com/yeimages/resfinder/resource_scanner"
	"golang.org/x/sync/errgroup"
)

// scanCmd: resfinder scan [path]
var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Report the resources nothing in the project refers to",
	Long: `The 'scan' subcommand catalogs every resource file and bundle under the project root,
collects the strings of all source files, and prints the resources whose name is never used.
Names referenced through format strings such as "icon_%d" count as used unless --similar=false.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		projectPath := ""
		if len(args) == 1 {
			projectPath = args[0]
		}
		rootDependencies, err := handleRootCommand(cmd, projectPath)
		if err != nil {
			return err
		}
		return handleScanCommand(cmd, rootDependencies)
	},
}

func init() {
	scanCmd.Flags().Bool("similar", true, "Count names referenced through format strings as used (overrides use_similar)")
	scanCmd.Flags().Bool("used", false, "Also list the used resources and how they are referenced")
	scanCmd.Flags().Bool("copy", false, "Copy the names of the unused resources to the clipboard")

	rootCmd.AddCommand(scanCmd)
}

// runScanners runs both scanners concurrently and waits for both results.
func runScanners(ctx context.Context, rootDependencies *RootDependencies) error {
	opts := rootDependencies.Config.ScanOptions()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := rootDependencies.Catalog.Run(gctx, opts); err != nil {
			return fmt.Errorf("resource scan failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := rootDependencies.Collector.Run(gctx, opts); err != nil {
			return fmt.Errorf("usage scan failed: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func handleScanCommand(cmd *cobra.Command, rootDependencies *RootDependencies) error {
	cfg := rootDependencies.Config
	useSimilar := cfg.UseSimilar
	if cmd.Flags().Changed("similar") {
		useSimilar, _ = cmd.Flags().GetBool("similar")
	}
	showUsed, _ := cmd.Flags().GetBool("used")
	copyNames, _ := cmd.Flags().GetBool("copy")

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100).WithRemoveWhenDone(true).WithWriter(os.Stderr)

	spinnerScan, _ := spinner.Start(fmt.Sprintf("Scanning %s...", cfg.ProjectPath))
	err := runScanners(cmd.Context(), rootDependencies)
	_ = spinnerScan.Stop()

	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, lipgloss.Yellow.Render("🔄 Scan interrupted."))
		}
		return err
	}

	if rootDependencies.Cache != nil {
		performance := rootDependencies.Cache.Performance()
		logger := rootDependencies.Logger
		logger.Debug("extraction cache", logger.Args(
			"requests", performance.Lookups,
			"hit_rate", fmt.Sprintf("%.1f%%", performance.HitRate()),
		))
	}

	entries := rootDependencies.Catalog.Entries()
	usage := rootDependencies.Collector.Usage()
	classified := resource_scanner.Classify(entries, usage, rootDependencies.Patterns, useSimilar)

	report := scanReport{
		ProjectPath:  cfg.ProjectPath,
		Resources:    len(entries),
		Strings:      usage.Len(),
		UnusedBytes:  classified.UnusedBytes,
		Unused:       classified.Unused,
		CatalogStats: rootDependencies.Catalog.Stats(),
		UsageStats:   rootDependencies.Collector.Stats(),
	}
	if showUsed {
		report.Used = classified.Used
	}

	if err := renderReport(cmd.OutOrStdout(), cfg.OutputFormat, report); err != nil {
		return err
	}

	if copyNames {
		names := make([]string, 0, len(classified.Unused))
		for _, entry := range classified.Unused {
			names = append(names, entry.Name)
		}
		if err := clipboard.WriteAll(strings.Join(names, "\n")); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		fmt.Fprintln(os.Stderr, lipgloss.Green.Render(fmt.Sprintf("✔️ Copied %d names to the clipboard.", len(names))))
	}

	return nil
}
