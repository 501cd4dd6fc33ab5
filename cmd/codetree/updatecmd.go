package codetree

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codetree/codetree/internal/update"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "update",
		Short: "Update codetree to the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := update.SelfUpdate(version)
			if err != nil {
				return err
			}
			if v == version {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "codetree is up to date (v"+v+")")
				return nil
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "updated to v"+v)
			return nil
		},
	})
}
