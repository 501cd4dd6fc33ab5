package codetree

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/codetree/codetree/internal/config"
	"github.com/codetree/codetree/internal/engine"
	"github.com/codetree/codetree/internal/history"
	"github.com/codetree/codetree/internal/report"
	"github.com/codetree/codetree/internal/update"
)

// settings is the fully resolved configuration for one run.
type settings struct {
	engine  engine.Config
	noColor bool
	history bool
}

// loadConfigs returns the local and global file configs; missing files are
// treated as empty.
func loadConfigs(root string) (local, global config.FileConfig) {
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	}
	if c, err := config.LoadLocal(root); err == nil {
		local = c
	}
	return local, global
}

// resolveSettings applies CLI > local > global precedence.
func resolveSettings(root string, lcfg, gcfg config.FileConfig) (settings, error) {
	merged := lcfg.Merge(gcfg)

	format := report.FormatText
	if name := pickString(flagFormat, lcfg.Format, gcfg.Format); name != "" {
		f, err := report.ParseFormat(name)
		if err != nil {
			return settings{}, err
		}
		format = f
	}

	s := settings{
		engine: engine.Config{
			Root:               root,
			Format:             format,
			OutputName:         pickString(flagOutput, lcfg.Output, gcfg.Output),
			ExecutableName:     executableName(),
			IncludeGlobs:       pickString(flagInclude, lcfg.Include, gcfg.Include),
			ExcludeGlobs:       pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
			GitIgnore:          pickBool(flagGitIgnore, lcfg.GitIgnore, gcfg.GitIgnore),
			ExtraExcludedDirs:  merged.ExtraExcludedDirs,
			ExtraExcludedFiles: merged.ExtraExcludedFiles,
			ExtraSensitive:     merged.ExtraSensitive,
		},
		noColor: pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor),
		history: !flagNoHistory && merged.HistoryEnabled(),
	}
	return s, nil
}

func executableName() string {
	if p, err := os.Executable(); err == nil {
		return filepath.Base(p)
	}
	if len(os.Args) > 0 {
		return filepath.Base(os.Args[0])
	}
	return ""
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	lcfg, gcfg := loadConfigs(abs)
	s, err := resolveSettings(abs, lcfg, gcfg)
	if err != nil {
		return err
	}

	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	tty := isTerminal(os.Stderr)
	if !isTerminal(os.Stdout) {
		s.noColor = true
	}

	if !flagQuiet {
		if !flagNoUpdateCheck {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				_, _ = fmt.Fprintf(stderr, "(new version available: v%s)  run 'codetree update' to upgrade\n", latest)
			}
		}
		_, _ = fmt.Fprintf(stderr, "Analyzing %s...\n", abs)
		if tty {
			s.engine.Progress = progressPrinter(stderr)
		}
	}

	res, out, err := engine.Run(cmd.Context(), s.engine)
	if err != nil {
		return err
	}
	if s.engine.Progress != nil && len(res.Report.Files) > 0 {
		_, _ = fmt.Fprintln(stderr)
	}

	if flagClipboard {
		if err := clipboard.WriteAll(string(out)); err != nil {
			_, _ = fmt.Fprintln(stderr, "clipboard warning:", err)
		} else if !flagQuiet {
			_, _ = fmt.Fprintln(stderr, "Report copied to clipboard")
		}
	}

	if s.history {
		if err := recordHistory(abs, s.engine.Format, res); err != nil {
			_, _ = fmt.Fprintln(stderr, "history warning:", err)
		}
	}

	if flagQuiet {
		return nil
	}
	_, _ = fmt.Fprint(stdout, res.Report.ProjectInfo)
	_, _ = fmt.Fprintln(stdout)
	report.PrintSummary(stdout, res.Report, report.PrintOptions{
		NoColor:    s.noColor,
		Duration:   res.Duration,
		OutputPath: res.OutputPath,
	})
	return nil
}

// progressPrinter rewrites one percentage line while file entries are built.
func progressPrinter(w io.Writer) func(done, total int) {
	last := -1
	return func(done, total int) {
		pct := done * 100 / total
		if pct == last {
			return
		}
		last = pct
		_, _ = fmt.Fprintf(w, "\rCollecting file entries: %d%%", pct)
	}
}

func recordHistory(root string, format report.Format, res engine.Result) error {
	dir, err := config.Dir()
	if err != nil {
		return err
	}
	git := history.GitSummary{Repo: res.Git.Repo, Branch: res.Git.Branch, Commit: res.Git.Commit}
	rec := history.NewRecord(root, string(format), res.OutputPath, res.ProjectTypes, res.Report,
		res.Exclusions.TotalExcludedSize, git, res.Duration)
	return history.NewLogIn(dir).Append(rec)
}
