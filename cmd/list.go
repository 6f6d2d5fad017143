package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atlassify/atlassify/internal/domain"
	"github.com/atlassify/atlassify/internal/format"
	"github.com/atlassify/atlassify/internal/product"
)

var (
	listFormat   string
	listProducts []string
	listUnread   bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"fetch"},
	Short:   "Fetch and list notifications across all accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime()
		if err != nil {
			return err
		}
		defer rt.close()

		// CLI flags narrow the persisted filter configuration for one run.
		if listUnread {
			rt.settings.FilterReadStates = []string{string(domain.ReadStateUnread)}
		}
		if len(listProducts) > 0 {
			rt.settings.FilterProducts = listProducts
		}

		accts, err := rt.store.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(accts) == 0 {
			return fmt.Errorf("no accounts configured; run 'atlassify login' first")
		}

		results, err := rt.orchestrator.FetchAll(cmd.Context(), accts, rt.settings)
		if err != nil {
			return err
		}

		switch strings.ToLower(listFormat) {
		case "json":
			return json.NewEncoder(cmd.OutOrStdout()).Encode(results)
		case "text", "":
			fmt.Fprint(cmd.OutOrStdout(), format.Results(results, format.Options{
				GroupByProduct:      rt.settings.GroupByProduct,
				GroupAlphabetically: rt.settings.GroupAlphabetically,
				ShowAccountHeader:   len(results) > 1,
			}))
			return nil
		default:
			return fmt.Errorf("unknown format: %s", listFormat)
		}
	},
}

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", "text", "Output format: text, json")
	listCmd.Flags().StringSliceVar(&listProducts, "product", nil,
		"Only show notifications for these products: "+strings.Join(productFlagValues(), ", "))
	listCmd.Flags().BoolVar(&listUnread, "unread", false, "Only show unread notifications")
	rootCmd.AddCommand(listCmd)
}

func productFlagValues() []string {
	var values []string
	for _, p := range product.All() {
		values = append(values, string(p.Name))
	}
	return values
}
