// Package sheetsync handles the Google Sheets sync command
package sheetsync

import (
	"fmt"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/ledger"

	"github.com/spf13/cobra"
)

// Cmd represents the sync command
var Cmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the ledger to Google Sheets",
	Long: `Append each account's ledger rows to its own sheet (Account_<number>) in the
configured spreadsheet, skipping rows already present. Requires
GOOGLE_CREDENTIALS_FILE and GOOGLE_SPREADSHEET_ID.`,
	Args: cobra.NoArgs,
	RunE: syncFunc,
}

func syncFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	ctx := cmd.Context()

	syncer, err := c.GetSyncer(ctx)
	if err != nil {
		return err
	}
	rows, err := c.GetLedger().ListTransactions(ctx, ledger.TransactionFilter{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	results, err := syncer.SyncLedger(ctx, rows)
	for _, r := range results {
		if r.Appended == 0 {
			fmt.Fprintf(out, "No new transactions to sync for '%s'\n", r.Sheet)
			continue
		}
		fmt.Fprintf(out, "Appended %d transactions to '%s'\n", r.Appended, r.Sheet)
	}
	if err != nil {
		return fmt.Errorf("sync failed: %w", err)
	}
	fmt.Fprintln(out, "Sync complete")
	return nil
}
