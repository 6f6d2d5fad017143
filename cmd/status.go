package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlassify/atlassify/internal/domain"
	"github.com/atlassify/atlassify/internal/tray"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the tray directive (icon kind and title) for status-bar integrations",
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

		results, fetchErr := rt.orchestrator.FetchAll(cmd.Context(), accts, rt.settings)

		count := domain.CountUnread(results)
		online := true
		if fetchErr != nil || domain.AllErrored(results) {
			count = -1
		}
		state := tray.Derive(count, domain.AnyHasMore(results), online, rt.settings.Tray())

		if state.Title != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", state.Icon, state.Title)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", state.Icon)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
