package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/yeimages/resfinder/constants/lipgloss"
	"github.com/yeimages/resfinder/resource_scanner/models"
)

// checkCmd: resfinder check <name>...
var checkCmd = &cobra.Command{
	Use:   "check <name>...",
	Short: "Tell whether the given resource names are used",
	Long: `The 'check' subcommand collects the strings of the project's source files and reports,
for each name, whether it is used exactly, used through a format string, or not used at all.
Names may carry a suffix or scale qualifier, e.g. 'icon@2x.png'.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd, "")
		if err != nil {
			return err
		}
		return handleCheckCommand(cmd, rootDependencies, args)
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkName classifies one name against the collected strings.
func checkName(rootDependencies *RootDependencies, name string) models.MatchKind {
	collector := rootDependencies.Collector
	if collector.ContainsResourceName(name) {
		return models.MatchExact
	}
	if collector.ContainsSimilarResourceName(name, rootDependencies.Patterns) {
		return models.MatchSimilar
	}
	return models.MatchNone
}

func handleCheckCommand(cmd *cobra.Command, rootDependencies *RootDependencies, names []string) error {
	if err := rootDependencies.Collector.Run(cmd.Context(), rootDependencies.Config.ScanOptions()); err != nil {
		return fmt.Errorf("usage scan failed: %w", err)
	}

	data := pterm.TableData{{"Name", "Usage"}}
	for _, name := range names {
		var usage string
		switch checkName(rootDependencies, name) {
		case models.MatchExact:
			usage = lipgloss.Green.Render("used")
		case models.MatchSimilar:
			usage = lipgloss.Yellow.Render("used through a format string")
		default:
			usage = lipgloss.Red.Render("not used")
		}
		data = append(data, []string{name, usage})
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}
