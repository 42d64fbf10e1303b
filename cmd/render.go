package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/yeimages/resfinder/resource_scanner/models"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"gopkg.in/yaml.v3"
)

// scanReport is what `resfinder scan` prints, in every output format.
type scanReport struct {
	ProjectPath  string                  `json:"project_path" yaml:"project_path"`
	Resources    int                     `json:"resources" yaml:"resources"`
	Strings      int                     `json:"strings" yaml:"strings"`
	UnusedBytes  int64                   `json:"unused_bytes" yaml:"unused_bytes"`
	Unused       []*models.ResourceEntry `json:"unused" yaml:"unused"`
	Used         []models.UsedResource   `json:"used,omitempty" yaml:"used,omitempty"`
	CatalogStats models.ScanStats        `json:"catalog_stats" yaml:"catalog_stats"`
	UsageStats   models.ScanStats        `json:"usage_stats" yaml:"usage_stats"`
}

// renderReport writes report to w in the given format.
func renderReport(w io.Writer, format string, report scanReport) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(report); err != nil {
			return err
		}
		return encoder.Close()
	case "markdown":
		_, err := io.WriteString(w, reportMarkdown(report))
		return err
	case "html":
		var buf bytes.Buffer
		md := goldmark.New(goldmark.WithExtensions(extension.GFM))
		if err := md.Convert([]byte(reportMarkdown(report)), &buf); err != nil {
			return fmt.Errorf("failed to render html report: %w", err)
		}
		_, err := w.Write(buf.Bytes())
		return err
	case "table", "":
		return renderTable(w, report)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func renderTable(w io.Writer, report scanReport) error {
	if len(report.Unused) > 0 {
		data := pterm.TableData{{"Name", "Path", "Size"}}
		for _, entry := range report.Unused {
			data = append(data, []string{entry.Key, entry.RelativePath, formatBytes(entry.SizeBytes)})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, table)
	}

	if len(report.Used) > 0 {
		data := pterm.TableData{{"Name", "Path", "Match"}}
		for _, used := range report.Used {
			data = append(data, []string{used.Entry.Key, used.Entry.RelativePath, string(used.Match)})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(w, table)
	}

	_, err := fmt.Fprintf(w, "%d of %d resources unused (%s reclaimable), %d strings collected\n",
		len(report.Unused), report.Resources, formatBytes(report.UnusedBytes), report.Strings)
	return err
}

func reportMarkdown(report scanReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Unused resources\n\n")
	fmt.Fprintf(&b, "Project: `%s`\n\n", report.ProjectPath)
	fmt.Fprintf(&b, "%d of %d resources unused, %s reclaimable.\n\n",
		len(report.Unused), report.Resources, formatBytes(report.UnusedBytes))

	if len(report.Unused) > 0 {
		b.WriteString("| Name | Path | Size |\n|---|---|---:|\n")
		for _, entry := range report.Unused {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				markdownCell(entry.Key), markdownCell(entry.RelativePath), formatBytes(entry.SizeBytes))
		}
		b.WriteString("\n")
	}

	if len(report.Used) > 0 {
		b.WriteString("## Used resources\n\n| Name | Path | Match |\n|---|---|---|\n")
		for _, used := range report.Used {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				markdownCell(used.Entry.Key), markdownCell(used.Entry.RelativePath), used.Match)
		}
		b.WriteString("\n")
	}

	return b.String()
}

func markdownCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// formatBytes renders a size with a binary unit, e.g. "1.5 KiB".
func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(size)/float64(div), "KMGTPE"[exp])
}
