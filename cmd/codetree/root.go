package codetree

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagFormat    string
	flagOutput    string
	flagInclude   string
	flagExclude   string
	flagGitIgnore bool
	flagNoColor   bool
	flagClipboard bool
	flagQuiet     bool
	flagNoHistory bool

	flagNoUpdateCheck bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the codetree CLI.
var rootCmd = &cobra.Command{
	Use:           "codetree [DIR]",
	Short:         "Snapshot a project's tree, statistics and sources into one report",
	Long:          "codetree walks a project directory and writes its tree, statistics and file contents as a single report. Build output is skipped and sensitive files are never copied into the report.",
	Args:          cobra.MaximumNArgs(1),
	RunE:          runAnalyze,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the codetree CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	f := rootCmd.Flags()
	f.StringVarP(&flagFormat, "format", "f", "", "output format: text|txt|json|markdown|md|html (default text)")
	f.StringVarP(&flagOutput, "output", "o", "", "report base name without extension (default codetree)")
	f.StringVar(&flagInclude, "include", "", "comma-separated include globs (files only)")
	f.StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	f.BoolVar(&flagGitIgnore, "gitignore", false, "also skip paths matched by the root .gitignore")
	f.BoolVar(&flagClipboard, "clipboard", false, "copy the rendered report to the clipboard")
	f.BoolVarP(&flagQuiet, "quiet", "q", false, "only print errors")
	f.BoolVar(&flagNoHistory, "no-history", false, "do not record this run in the history log")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "markdown", "html"}, cobra.ShellCompDirectiveNoFileComp
	})
}
