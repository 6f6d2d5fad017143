package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlassify/atlassify/internal/domain"
)

var markReadCmd = &cobra.Command{
	Use:   "mark-read",
	Short: "Mark all currently-matching notifications as read",
	Long: `Mark all currently-matching notifications as read.

Fetches the filtered notification set for every account and marks it read.
Grouped notifications are expanded so every underlying event is marked.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMark(cmd.Context(), cmd, domain.ReadStateRead)
	},
}

var markUnreadCmd = &cobra.Command{
	Use:   "mark-unread",
	Short: "Mark all currently-matching notifications as unread",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMark(cmd.Context(), cmd, domain.ReadStateUnread)
	},
}

func runMark(ctx context.Context, cmd *cobra.Command, target domain.ReadState) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.close()

	accts, err := rt.store.List(ctx)
	if err != nil {
		return err
	}
	if len(accts) == 0 {
		return fmt.Errorf("no accounts configured; run 'atlassify login' first")
	}

	results, err := rt.orchestrator.FetchAll(ctx, accts, rt.settings)
	if err != nil {
		return err
	}

	marked := 0
	for _, r := range results {
		if r.Error != nil || len(r.Notifications) == 0 {
			continue
		}
		switch target {
		case domain.ReadStateRead:
			err = rt.orchestrator.MarkRead(ctx, r.Account, r.Notifications)
		case domain.ReadStateUnread:
			err = rt.orchestrator.MarkUnread(ctx, r.Account, r.Notifications)
		}
		if err != nil {
			return fmt.Errorf("mark %s for %s: %w", target, r.Account.Username, err)
		}
		marked += len(r.Notifications)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "marked %d notifications %s\n", marked, target)
	return nil
}

func init() {
	rootCmd.AddCommand(markReadCmd)
	rootCmd.AddCommand(markUnreadCmd)
}
