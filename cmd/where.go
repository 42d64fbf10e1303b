package cmd

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/spf13/cobra"
	"github.com/yeimages/resfinder/constants/lipgloss"
	"github.com/yeimages/resfinder/resource_scanner"
)

// whereCmd: resfinder where <name>
var whereCmd = &cobra.Command{
	Use:   "where <name>",
	Short: "Show the source lines that refer to a resource",
	Long: `The 'where' subcommand searches the project's source files and prints every line whose
strings name the given resource, highlighted for the file's language.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rootDependencies, err := handleRootCommand(cmd, "")
		if err != nil {
			return err
		}
		return handleWhereCommand(cmd, rootDependencies, args[0])
	},
}

func init() {
	rootCmd.AddCommand(whereCmd)
}

func handleWhereCommand(cmd *cobra.Command, rootDependencies *RootDependencies, name string) error {
	references, err := resource_scanner.FindReferences(cmd.Context(), rootDependencies.Logger, rootDependencies.Config.ScanOptions(), name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(references) == 0 {
		fmt.Fprintln(out, lipgloss.Yellow.Render(fmt.Sprintf("No source line refers to %q.", name)))
		return nil
	}

	for _, reference := range references {
		fmt.Fprint(out, lipgloss.BlueSky.Render(fmt.Sprintf("%s:%d: ", reference.RelativePath, reference.Line)))
		if err := highlightLine(out, reference.Text, reference.RelativePath, rootDependencies.Config.Theme); err != nil {
			return err
		}
	}
	return nil
}

// highlightLine prints one source line with syntax highlighting chosen by the
// file name. Unknown file types are printed as plain text.
func highlightLine(w io.Writer, line string, fileName string, theme string) error {
	language := "plaintext"
	if lexer := lexers.Match(path.Base(fileName)); lexer != nil {
		language = lexer.Config().Name
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, line, language, "terminal256", theme); err != nil {
		return err
	}
	// Some lexers append a newline before the closing reset; end the line after it.
	highlighted := strings.ReplaceAll(buf.String(), "\n", "")
	_, err := io.WriteString(w, highlighted+"\n")
	return err
}
