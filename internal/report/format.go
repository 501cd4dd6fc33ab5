package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/codetree/codetree/internal/types"
)

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with binary units and one decimal above
// bytes, e.g. "512 B", "1.5 KB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	size := float64(bytes)
	unit := 0
	for size >= 1024 && unit < len(sizeUnits)-1 {
		size /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d %s", bytes, sizeUnits[0])
	}
	return fmt.Sprintf("%.1f %s", size, sizeUnits[unit])
}

func percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// ExtensionCount is one row of the per-extension breakdown.
type ExtensionCount struct {
	Extension string
	Files     int
	Lines     int
	Size      int64
}

// ByExtension returns the per-extension breakdown sorted by file count
// descending, ties broken by extension.
func ByExtension(s types.Stats) []ExtensionCount {
	out := make([]ExtensionCount, 0, len(s.FilesByExtension))
	for ext, n := range s.FilesByExtension {
		out = append(out, ExtensionCount{
			Extension: ext,
			Files:     n,
			Lines:     s.LinesByExtension[ext],
			Size:      s.SizeByExtension[ext],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Files != out[j].Files {
			return out[i].Files > out[j].Files
		}
		return out[i].Extension < out[j].Extension
	})
	return out
}

// FormatStats renders the statistics block used by the text report.
func FormatStats(s types.Stats) string {
	var b strings.Builder
	b.WriteString("\nProject Statistics:\n")
	b.WriteString("==================\n")
	fmt.Fprintf(&b, "Total Files: %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "Total Lines of Code: %d\n", s.TotalLines)
	fmt.Fprintf(&b, "  - Code Lines: %d (%.1f%%)\n", s.CodeLines, percent(s.CodeLines, s.TotalLines))
	fmt.Fprintf(&b, "  - Comment Lines: %d (%.1f%%)\n", s.CommentLines, percent(s.CommentLines, s.TotalLines))
	fmt.Fprintf(&b, "  - Blank Lines: %d (%.1f%%)\n", s.BlankLines, percent(s.BlankLines, s.TotalLines))

	fmt.Fprintf(&b, "Total File System Size: %s\n", FormatSize(s.TotalSizeBytes))
	fmt.Fprintf(&b, "Total Content Size: %s\n", FormatSize(s.TotalContentSizeBytes))
	fmt.Fprintf(&b, "Average File Size: %s\n", FormatSize(s.AverageFileSize))
	if s.TotalSizeBytes > 0 && s.TotalContentSizeBytes > 0 {
		ratio := float64(s.TotalContentSizeBytes) / float64(s.TotalSizeBytes) * 100
		fmt.Fprintf(&b, "Content to File Size Ratio: %.1f%%\n", ratio)
	}

	if s.SensitiveFilesCount > 0 {
		fmt.Fprintf(&b, "\nDetected %d potentially sensitive file(s) that have been protected.\n", s.SensitiveFilesCount)
	}

	b.WriteString("\nFiles by Type:\n")
	for _, e := range ByExtension(s) {
		fmt.Fprintf(&b, "  .%s: %d files, %d lines, %s\n", e.Extension, e.Files, e.Lines, FormatSize(e.Size))
	}

	if len(s.LargestFiles) > 0 {
		b.WriteString("\nLargest Files:\n")
		for i, f := range s.LargestFiles {
			if i == 5 {
				break
			}
			fmt.Fprintf(&b, "  %s: %s\n", filepath.Base(f.Path), FormatSize(f.Size))
		}
	}
	return b.String()
}
