// Package export handles the ledger CSV export command
package export

import (
	"fmt"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/ledger"
	"fjacquet/fintrack/internal/validation"

	"github.com/spf13/cobra"
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export ledger rows to CSV",
	Long: `Export ledger rows, newest first, with their category, parent category
and account. Without --output the CSV is written to stdout.`,
	Args: cobra.NoArgs,
	RunE: exportFunc,
}

var (
	output  string
	account string
	limit   int
)

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV file (default stdout)")
	Cmd.Flags().StringVarP(&account, "account", "a", "", "Only rows of this account number")
	Cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of rows (0 = all)")
}

func exportFunc(cmd *cobra.Command, args []string) error {
	if limit < 0 {
		return fmt.Errorf("--limit must not be negative")
	}
	if output != "" {
		if err := validation.IsValidOutputPath(output); err != nil {
			return err
		}
	}
	c := root.GetContainer()
	rows, err := c.GetLedger().ListTransactions(cmd.Context(), ledger.TransactionFilter{
		AccountNumber: account,
		Limit:         limit,
	})
	if err != nil {
		return err
	}

	if output == "" {
		return c.GetExporter().Write(cmd.OutOrStdout(), rows)
	}
	if err := c.GetExporter().WriteFile(output, rows); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d rows to %s\n", len(rows), output)
	return nil
}
