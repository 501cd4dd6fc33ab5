package codetree

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/codetree/codetree/internal/config"
	"github.com/codetree/codetree/internal/engine"
	"github.com/codetree/codetree/internal/files"
)

var (
	cfgOutput    string
	cfgForce     bool
	cfgAddIgnore bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init [DIR]",
		Short: "Write a starter .codetree.yml",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&cfgOutput, "output", ".codetree.yml", "config file name, relative to DIR")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().BoolVar(&cfgAddIgnore, "add-ignore", false, "add the report files to .gitignore")

	showCmd := &cobra.Command{
		Use:   "show [DIR]",
		Short: "Print the effective file configuration (local over global)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runConfigShow,
	}
	cfgCmd.AddCommand(showCmd)
}

func dirArg(args []string) (string, error) {
	if len(args) == 1 {
		return filepath.Abs(args[0])
	}
	return filepath.Abs(".")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	dir, err := dirArg(args)
	if err != nil {
		return err
	}
	path := cfgOutput
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	if _, err := os.Stat(path); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, []byte(config.Template), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)

	if cfgAddIgnore {
		for _, p := range files.ReportPatterns(engine.DefaultOutputName) {
			if err := files.AppendIgnore(dir, p); err != nil {
				return fmt.Errorf("update .gitignore: %w", err)
			}
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Updated", filepath.Join(dir, ".gitignore"))
	}
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	dir, err := dirArg(args)
	if err != nil {
		return err
	}
	lcfg, gcfg := loadConfigs(dir)
	b, err := yaml.Marshal(lcfg.Merge(gcfg))
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}
