// Package report renders a finished project analysis in the supported
// output formats and prints terminal summaries.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/codetree/codetree/internal/types"
)

// Format names an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat accepts text|txt, json, markdown|md and html, case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, s)
	}
}

// Renderer serializes a report.
type Renderer interface {
	Render(r *types.ProjectReport) ([]byte, error)
	// Extension is the output file extension without the dot.
	Extension() string
}

// New returns the renderer for f.
func New(f Format) (Renderer, error) {
	switch f {
	case FormatText:
		return TextRenderer{}, nil
	case FormatJSON:
		return JSONRenderer{}, nil
	case FormatMarkdown:
		return MarkdownRenderer{}, nil
	case FormatHTML:
		return HTMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
}

const timestampLayout = "2006-01-02 15:04:05 UTC"

const (
	sensitiveNotice  = "[SENSITIVE FILE - Content Protected]"
	unreadableNotice = "[Unable to read file content]"
)

// JSONRenderer writes the report as indented JSON.
type JSONRenderer struct{}

func (JSONRenderer) Extension() string { return "json" }

func (JSONRenderer) Render(r *types.ProjectReport) ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return b, nil
}

// TextRenderer writes the plain text report.
type TextRenderer struct{}

func (TextRenderer) Extension() string { return "txt" }

func (TextRenderer) Render(r *types.ProjectReport) ([]byte, error) {
	var b strings.Builder
	b.WriteString("CODETREE PROJECT ANALYSIS\n")
	b.WriteString("========================\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.UTC().Format(timestampLayout))

	b.WriteString(r.ProjectInfo)
	b.WriteString("\n")

	b.WriteString("Project File Tree:\n")
	b.WriteString("==================\n")
	b.WriteString(r.FileTree)
	b.WriteString("\n")

	b.WriteString(FormatStats(r.Statistics))
	b.WriteString("\n")

	b.WriteString("Project Files:\n")
	b.WriteString("==============\n\n")
	for i, f := range r.Files {
		fmt.Fprintf(&b, "%d. %s\n", i+1, f.RelativePath)
		switch {
		case f.IsSensitive:
			b.WriteString("   " + sensitiveNotice + "\n\n")
		case f.Content != nil:
			b.WriteString("\n")
			b.WriteString(*f.Content)
			b.WriteString("\n")
		default:
			b.WriteString("   " + unreadableNotice + "\n")
		}
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}
