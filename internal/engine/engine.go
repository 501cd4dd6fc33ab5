package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/codetree/codetree/internal/detect"
	"github.com/codetree/codetree/internal/exclude"
	"github.com/codetree/codetree/internal/git"
	"github.com/codetree/codetree/internal/ignore"
	"github.com/codetree/codetree/internal/report"
	"github.com/codetree/codetree/internal/stats"
	"github.com/codetree/codetree/internal/types"
	"github.com/codetree/codetree/internal/walker"
)

// DefaultOutputName is the report base name used when none is configured.
const DefaultOutputName = "codetree"

// Config controls one analysis run.
type Config struct {
	Root   string
	Format report.Format
	// OutputName is the report file name without extension. Relative names
	// are resolved against Root.
	OutputName string
	// ExecutableName is skipped wherever it appears in the tree.
	ExecutableName string

	IncludeGlobs string
	ExcludeGlobs string
	GitIgnore    bool

	ExtraExcludedDirs  []string
	ExtraExcludedFiles []string
	ExtraSensitive     []string

	// NoGitInfo disables the repository line in the project summary.
	NoGitInfo bool

	// Progress is called after each file entry is built.
	Progress func(done, total int)
	// Now overrides the report timestamp clock.
	Now func() time.Time
}

// Result is a finished analysis.
type Result struct {
	Report       *types.ProjectReport
	Records      []types.FileRecord
	Exclusions   types.ExclusionReport
	ProjectTypes []string
	Frameworks   detect.Record
	Git          git.Metadata
	OutputPath   string
	Renderer     report.Renderer
	Duration     time.Duration
}

// OutputPath returns where the report for cfg is written and the renderer
// that produces it.
func OutputPath(cfg Config) (string, report.Renderer, error) {
	format := cfg.Format
	if format == "" {
		format = report.FormatText
	}
	r, err := report.New(format)
	if err != nil {
		return "", nil, err
	}
	name := cfg.OutputName
	if name == "" {
		name = DefaultOutputName
	}
	file := name + "." + r.Extension()
	if filepath.IsAbs(file) {
		return file, r, nil
	}
	return filepath.Join(cfg.Root, file), r, nil
}

// Analyze detects the project, walks it once and assembles the report. It
// does not write anything.
func Analyze(ctx context.Context, cfg Config) (Result, error) {
	var result Result
	if ctx == nil {
		ctx = context.Background()
	}
	started := time.Now()

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return result, fmt.Errorf("resolve root %q: %w", cfg.Root, err)
	}
	cfg.Root = root

	outPath, renderer, err := OutputPath(cfg)
	if err != nil {
		return result, err
	}
	result.OutputPath = outPath
	result.Renderer = renderer

	rules := exclude.Defaults()
	rules.AddProjectDirs(cfg.ExtraExcludedDirs...)
	rules.AddFiles(cfg.ExtraExcludedFiles...)
	sensitive := exclude.DefaultSensitive()
	sensitive.Add(cfg.ExtraSensitive...)

	pd := detect.NewProjectDetector(rules)
	if err := pd.DetectProjectTypes(root); err != nil {
		return result, err
	}
	if !cfg.NoGitInfo {
		result.Git = git.RepoMetadata(root)
		pd.AddInfo(result.Git.String())
	}

	var filter *exclude.PathFilter
	if cfg.IncludeGlobs != "" || cfg.ExcludeGlobs != "" || cfg.GitIgnore {
		var ign ignore.Matcher
		if cfg.GitIgnore {
			if ign, err = ignore.Load(filepath.Join(root, ".gitignore")); err != nil {
				fmt.Fprintf(os.Stderr, "warning: could not parse .gitignore: %v\n", err)
			}
		}
		filter = exclude.NewPathFilter(cfg.IncludeGlobs, cfg.ExcludeGlobs, ign)
	}

	acc := stats.New(sensitive)
	w := walker.New(root, walker.Options{
		Rules:  rules,
		Filter: filter,
		Skip:   []string{cfg.ExecutableName, filepath.Base(outPath)},
		Sink:   acc,
	})
	walked, err := w.Walk(ctx)
	if err != nil {
		return result, fmt.Errorf("walk %s: %w", root, err)
	}

	excl := pd.Exclusions()
	for _, d := range walked.ExcludedDirs {
		excl.AddDirectory(d)
	}
	for _, f := range walked.ExcludedFiles {
		excl.AddFile(f)
	}
	acc.Finalize()

	records := acc.Records()
	entries, err := buildEntries(ctx, root, walked.Files, acc, records, cfg.Progress)
	if err != nil {
		return result, err
	}

	now := time.Now
	if cfg.Now != nil {
		now = cfg.Now
	}
	result.Report = &types.ProjectReport{
		ProjectInfo: pd.FormatProjectInfo(),
		FileTree:    walked.Tree(),
		Statistics:  acc.Stats(),
		Files:       entries,
		GeneratedAt: now().UTC(),
	}
	result.Records = records
	result.Exclusions = *excl
	result.ProjectTypes = pd.ProjectTypes()
	result.Frameworks = pd.Frameworks()
	result.Duration = time.Since(started)
	return result, nil
}

// Run analyzes, renders and writes the report. The rendered bytes are
// returned alongside the result.
func Run(ctx context.Context, cfg Config) (Result, []byte, error) {
	res, err := Analyze(ctx, cfg)
	if err != nil {
		return res, nil, err
	}
	out, err := res.Renderer.Render(res.Report)
	if err != nil {
		return res, nil, fmt.Errorf("render %s report: %w", res.Renderer.Extension(), err)
	}
	if err := WriteReport(res.OutputPath, out); err != nil {
		return res, out, err
	}
	return res, out, nil
}

// WriteReport replaces any existing file at path with data.
func WriteReport(path string, data []byte) error {
	if _, err := os.Lstat(path); err == nil {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove previous report %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}
