package codetree

import (
	"fmt"
	"runtime/debug"

	semver "github.com/blang/semver/v4"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the codetree version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "codetree", versionString())
		},
	})
	rootCmd.Version = versionString()
}

// versionString returns the build version in v-prefixed semver form,
// with the VCS revision appended when the binary was built from a checkout.
func versionString() string {
	v := "v" + version
	if sv, err := semver.ParseTolerant(version); err == nil {
		v = "v" + sv.String()
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				v += " (" + s.Value[:7] + ")"
			}
		}
	}
	return v
}
