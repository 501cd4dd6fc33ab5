package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/codetree/codetree/internal/types"
)

type PrintOptions struct {
	NoColor    bool
	Duration   time.Duration
	OutputPath string
}

var (
	headingStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	sensitiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func styled(s lipgloss.Style, text string, noColor bool) string {
	if noColor {
		return text
	}
	return s.Render(text)
}

// PrintSummary writes the terminal summary shown after a report is written.
func PrintSummary(w io.Writer, r *types.ProjectReport, opts PrintOptions) {
	s := r.Statistics
	fmt.Fprintln(w, styled(headingStyle, "Project Statistics", opts.NoColor))

	table := tablewriter.NewWriter(w)
	table.Header("Metric", "Value")
	_ = table.Append([]string{"Files", strconv.Itoa(s.TotalFiles)})
	_ = table.Append([]string{"Lines", strconv.Itoa(s.TotalLines)})
	_ = table.Append([]string{"Code", fmt.Sprintf("%d (%.1f%%)", s.CodeLines, percent(s.CodeLines, s.TotalLines))})
	_ = table.Append([]string{"Comments", fmt.Sprintf("%d (%.1f%%)", s.CommentLines, percent(s.CommentLines, s.TotalLines))})
	_ = table.Append([]string{"Blank", fmt.Sprintf("%d (%.1f%%)", s.BlankLines, percent(s.BlankLines, s.TotalLines))})
	_ = table.Append([]string{"Size on disk", FormatSize(s.TotalSizeBytes)})
	_ = table.Append([]string{"Content size", FormatSize(s.TotalContentSizeBytes)})
	_ = table.Append([]string{"Average file", FormatSize(s.AverageFileSize)})
	_ = table.Render()

	if exts := ByExtension(s); len(exts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styled(headingStyle, "Files by Type", opts.NoColor))
		et := tablewriter.NewWriter(w)
		et.Header("Extension", "Files", "Lines", "Size")
		for _, e := range exts {
			_ = et.Append([]string{"." + e.Extension, strconv.Itoa(e.Files), strconv.Itoa(e.Lines), FormatSize(e.Size)})
		}
		_ = et.Render()
	}

	if len(s.LargestFiles) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styled(headingStyle, "Largest Files", opts.NoColor))
		lt := tablewriter.NewWriter(w)
		lt.Header("File", "Size")
		for i, f := range s.LargestFiles {
			if i == 5 {
				break
			}
			_ = lt.Append([]string{filepath.Base(f.Path), FormatSize(f.Size)})
		}
		_ = lt.Render()
	}

	if s.SensitiveFilesCount > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, styled(sensitiveStyle,
			fmt.Sprintf("Detected %d potentially sensitive file(s) that have been protected.", s.SensitiveFilesCount), opts.NoColor))
	}

	if opts.OutputPath != "" || opts.Duration > 0 {
		fmt.Fprintln(w)
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Analysis duration: %.2fs\n", opts.Duration.Seconds())
		}
		if opts.OutputPath != "" {
			fmt.Fprintln(w, styled(doneStyle, "Analysis complete! Report written to "+opts.OutputPath, opts.NoColor))
		}
	}
}
