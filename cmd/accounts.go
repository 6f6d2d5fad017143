package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atlassify/atlassify/internal/domain"
)

var loginToken string

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Add an Atlassian account using an API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if loginToken == "" {
			return fmt.Errorf("--token is required")
		}
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		user, err := rt.client.Me(cmd.Context(), loginToken)
		if err != nil {
			return fmt.Errorf("token validation failed: %w", err)
		}

		account := domain.Account{
			ID:         user.AccountID,
			Username:   user.Email,
			Name:       user.Name,
			AvatarURL:  user.Picture,
			Credential: loginToken,
		}
		if err := rt.store.Add(cmd.Context(), account); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s (%s)\n", account.Name, account.Username)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout <account-id>",
	Short: "Remove an account and its stored credential",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		if err := rt.store.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed account %s\n", args[0])
		return nil
	},
}

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List configured accounts",
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
			fmt.Fprintln(cmd.OutOrStdout(), "no accounts configured")
			return nil
		}
		for _, a := range accts {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", a.ID, a.Username, a.Name)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginToken, "token", "", "Atlassian API token")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(accountsCmd)
}
