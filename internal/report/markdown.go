package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/codetree/codetree/internal/types"
)

// MarkdownRenderer writes a Markdown report with fenced file contents.
type MarkdownRenderer struct{}

func (MarkdownRenderer) Extension() string { return "md" }

func (MarkdownRenderer) Render(r *types.ProjectReport) ([]byte, error) {
	s := r.Statistics
	var b strings.Builder
	b.WriteString("# 🌳 Codetree Project Analysis\n\n")
	fmt.Fprintf(&b, "**Generated:** %s\n\n", r.GeneratedAt.UTC().Format(timestampLayout))

	b.WriteString("## 📋 Project Information\n\n")
	for _, line := range strings.Split(r.ProjectInfo, "\n") {
		if strings.TrimSpace(line) != "" {
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString("## 📊 Project Statistics\n\n")
	fmt.Fprintf(&b, "- **Total Files:** %d\n", s.TotalFiles)
	fmt.Fprintf(&b, "- **Total Lines:** %d\n", s.TotalLines)
	fmt.Fprintf(&b, "- **Code Lines:** %d (%.1f%%)\n", s.CodeLines, percent(s.CodeLines, s.TotalLines))
	fmt.Fprintf(&b, "- **Comment Lines:** %d (%.1f%%)\n", s.CommentLines, percent(s.CommentLines, s.TotalLines))
	fmt.Fprintf(&b, "- **Blank Lines:** %d (%.1f%%)\n", s.BlankLines, percent(s.BlankLines, s.TotalLines))
	fmt.Fprintf(&b, "- **Total Size:** %s\n\n", FormatSize(s.TotalSizeBytes))

	if exts := ByExtension(s); len(exts) > 0 {
		b.WriteString("### 📁 Files by Type\n\n")
		for _, e := range exts {
			fmt.Fprintf(&b, "- **.%s**: %d files, %d lines\n", e.Extension, e.Files, e.Lines)
		}
		b.WriteString("\n")
	}

	b.WriteString("## 🗂️ Project Structure\n\n")
	b.WriteString("```\n")
	b.WriteString(r.FileTree)
	b.WriteString("```\n\n")

	b.WriteString("## 📄 File Contents\n\n")
	for _, f := range r.Files {
		fmt.Fprintf(&b, "### 📝 %s\n\n", f.RelativePath)
		switch {
		case f.IsSensitive:
			b.WriteString("```\n" + sensitiveNotice + "\n```\n\n")
		case f.Content != nil:
			fence := codeFence(*f.Content)
			b.WriteString(fence + fenceLanguage(f.RelativePath) + "\n")
			b.WriteString(*f.Content)
			if !strings.HasSuffix(*f.Content, "\n") {
				b.WriteString("\n")
			}
			b.WriteString(fence + "\n\n")
		default:
			b.WriteString("```\n" + unreadableNotice + "\n```\n\n")
		}
	}
	return []byte(b.String()), nil
}

// codeFence returns a backtick fence longer than any backtick run in content.
func codeFence(content string) string {
	longest, run := 0, 0
	for _, c := range content {
		if c == '`' {
			run++
			if run > longest {
				longest = run
			}
			continue
		}
		run = 0
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}

// fenceLanguage names the lexer chroma would use for the file, or "".
func fenceLanguage(path string) string {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}
