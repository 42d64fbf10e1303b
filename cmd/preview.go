package cmd

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yeimages/resfinder/constants/lipgloss"
	"github.com/yeimages/resfinder/resource_scanner/models"
	"github.com/yeimages/resfinder/utils"
)

// previewCmd: resfinder preview <name>
var previewCmd = &cobra.Command{
	Use:   "preview <name>",
	Short: "Show a cataloged resource with a small terminal preview",
	Long: `The 'preview' subcommand looks a resource up in the project catalog, prints where it lives
and how large it is, and draws a thumbnail of the image with colored terminal blocks.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd, "")
		if err != nil {
			return err
		}
		return handlePreviewCommand(cmd, rootDependencies, args[0])
	},
}

func init() {
	previewCmd.Flags().Int("width", 32, "Longest side of the preview in terminal cells")
	rootCmd.AddCommand(previewCmd)
}

func handlePreviewCommand(cmd *cobra.Command, rootDependencies *RootDependencies, name string) error {
	width, _ := cmd.Flags().GetInt("width")
	cfg := rootDependencies.Config

	if err := rootDependencies.Catalog.Run(cmd.Context(), cfg.ScanOptions()); err != nil {
		return fmt.Errorf("resource scan failed: %w", err)
	}

	key := utils.NormalizeToken(name, utils.NormalizeSuffixes(cfg.ResourceSuffixes))
	entry, ok := rootDependencies.Catalog.Lookup(key)
	if !ok {
		return fmt.Errorf("no resource named %q in %s", name, cfg.ProjectPath)
	}

	out := cmd.OutOrStdout()
	details := []string{
		lipgloss.Info.Render(entry.Name),
		fmt.Sprintf("Path: %s", entry.RelativePath),
		fmt.Sprintf("Size: %s", formatBytes(entry.SizeBytes)),
	}

	img, err := entry.Image()
	if err != nil {
		details = append(details, lipgloss.Gray.Render(fmt.Sprintf("No preview: %v", err)))
		fmt.Fprintln(out, lipgloss.BoxStyle.Render(strings.Join(details, "\n")))
		return nil
	}
	details = append(details, fmt.Sprintf("Dimensions: %dx%d", img.Bounds().Dx(), img.Bounds().Dy()))
	fmt.Fprintln(out, lipgloss.BoxStyle.Render(strings.Join(details, "\n")))

	return renderBlocks(out, models.ScaleToFit(img, width))
}

// renderBlocks draws img with upper half blocks, two pixel rows per line,
// using 24-bit terminal colors.
func renderBlocks(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	var b strings.Builder
	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			tr, tg, tb, _ := img.At(x, y).RGBA()
			fmt.Fprintf(&b, "\x1b[38;2;%d;%d;%dm", tr>>8, tg>>8, tb>>8)
			if y+1 < bounds.Max.Y {
				br, bg, bb, _ := img.At(x, y+1).RGBA()
				fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm", br>>8, bg>>8, bb>>8)
			}
			b.WriteString("▀\x1b[0m")
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}
