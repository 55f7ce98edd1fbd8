package cmd

import (
	"fmt"

	"github.com/opencrowbar/crowbar-inventory/internal/version"
	"github.com/spf13/cobra"
)

var cmdVersion = &cobra.Command{
	Use:   "version",
	Short: "Print crowbar-inventory version along with dependency information.",
	Run: func(cmd *cobra.Command, args []string) {
		v := version.Current()
		fmt.Fprintf(
			cmd.OutOrStdout(),
			"commit: %s\nbranch: %s\ngit summary: %s\nbuildDate: %s\nversion: %s\nGo version: %s\ndigest version: %s\n",
			v.GitCommit, v.GitBranch, v.GitSummary, v.BuildDate, v.AppVersion, v.GoVersion, v.DigestVersion)
	},
}

func init() {
	rootCmd.AddCommand(cmdVersion)
}
