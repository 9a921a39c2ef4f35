// Package stats handles the ledger statistics command
package stats

import (
	"fmt"

	"fjacquet/fintrack/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the stats command
var Cmd = &cobra.Command{
	Use:   "stats",
	Short: "Show ledger statistics",
	Args:  cobra.NoArgs,
	RunE:  statsFunc,
}

func statsFunc(cmd *cobra.Command, args []string) error {
	db := root.GetContainer().GetLedger()
	ctx := cmd.Context()

	accounts, err := db.ListAccounts(ctx)
	if err != nil {
		return err
	}
	s, err := db.Stats(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Accounts: %d\n", s.Accounts)
	for _, a := range accounts {
		accType := ""
		if a.Type != nil {
			accType = *a.Type
		}
		fmt.Fprintf(out, "  - %s (%s)\n", a.Number, accType)
	}
	fmt.Fprintf(out, "\nTotal Transactions: %d\n", s.Transactions)
	fmt.Fprintf(out, "Uncategorized: %d\n", s.Uncategorized)
	fmt.Fprintf(out, "Categories: %d\n", s.Categories)
	if s.Uncategorized > 0 {
		fmt.Fprintf(out, "\n%d transactions need categorization. Add categories with add-category, then run recategorize.\n", s.Uncategorized)
	}
	return nil
}
