package core

import (
	"context"

	"github.com/codetree/codetree/internal/engine"
	"github.com/codetree/codetree/internal/report"
	"github.com/codetree/codetree/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type (
	Config    = engine.Config
	Report    = types.ProjectReport
	FileEntry = types.FileEntry
	Stats     = types.Stats
	Format    = report.Format
)

// Output formats.
const (
	FormatText     = report.FormatText
	FormatJSON     = report.FormatJSON
	FormatMarkdown = report.FormatMarkdown
	FormatHTML     = report.FormatHTML
)

// Analyze walks cfg.Root and returns the report without writing it.
func Analyze(ctx context.Context, cfg Config) (*Report, error) {
	res, err := engine.Analyze(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return res.Report, nil
}

// Render serializes r in the given format.
func Render(r *Report, f Format) ([]byte, error) {
	rd, err := report.New(f)
	if err != nil {
		return nil, err
	}
	return rd.Render(r)
}

// Run analyzes cfg.Root and writes the report, returning its path.
func Run(ctx context.Context, cfg Config) (string, error) {
	res, _, err := engine.Run(ctx, cfg)
	if err != nil {
		return "", err
	}
	return res.OutputPath, nil
}
