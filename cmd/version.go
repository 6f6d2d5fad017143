package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlassify/atlassify/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the atlassify version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "atlassify v%s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
