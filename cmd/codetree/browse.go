package codetree

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/codetree/codetree/internal/engine"
	"github.com/codetree/codetree/internal/tui"
	"github.com/codetree/codetree/pkg/core"
)

var flagBrowseReport string

func init() {
	cmd := &cobra.Command{
		Use:   "browse [DIR]",
		Short: "Explore a project interactively",
		Long:  "browse analyzes DIR (or loads a saved JSON report with --report) and opens an interactive viewer. Nothing is written to disk.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBrowse,
	}
	cmd.Flags().StringVar(&flagBrowseReport, "report", "", "open a JSON report written by --format json")
	rootCmd.AddCommand(cmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if !isTerminal(os.Stdout) {
		return errors.New("browse needs an interactive terminal")
	}
	if flagBrowseReport != "" {
		f, err := os.Open(flagBrowseReport)
		if err != nil {
			return err
		}
		defer f.Close()
		rep, err := core.UnmarshalReport(f)
		if err != nil {
			return fmt.Errorf("read report %s: %w", flagBrowseReport, err)
		}
		return tui.Run(rep)
	}

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
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Analyzing %s...\n", abs)
	res, err := engine.Analyze(cmd.Context(), s.engine)
	if err != nil {
		return err
	}
	return tui.Run(res.Report)
}
