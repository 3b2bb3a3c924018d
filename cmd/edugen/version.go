package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// stampedVersion is version unless the binary was built without -ldflags,
// in which case config keeps telemetry.version.
func stampedVersion() string {
	if version == "(devel)" {
		return ""
	}
	return version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "edugen", version)
	},
}
