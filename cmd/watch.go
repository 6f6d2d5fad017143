package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlassify/atlassify/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live notification view that refreshes on an interval",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		accts, err := rt.store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(accts) == 0 {
			return fmt.Errorf("no accounts configured; run 'atlassify login' first")
		}
		return tui.Run(rt.orchestrator, accts, rt.settings)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
