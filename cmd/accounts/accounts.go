// Package accounts handles account listing and naming commands
package accounts

import (
	"fmt"
	"text/tabwriter"

	"fjacquet/fintrack/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the accounts command
var Cmd = &cobra.Command{
	Use:   "accounts",
	Short: "List known accounts",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

// RenameCmd represents the rename-account command
var RenameCmd = &cobra.Command{
	Use:   "rename-account <account-number> <name>",
	Short: "Give an account a display name",
	Long:  `Give an account a display name. An empty name clears it.`,
	Args:  cobra.ExactArgs(2),
	RunE:  renameFunc,
}

func listFunc(cmd *cobra.Command, args []string) error {
	accounts, err := root.GetContainer().GetLedger().ListAccounts(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(accounts) == 0 {
		fmt.Fprintln(out, "No accounts yet. Parse a statement first.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNUMBER\tTYPE\tNAME")
	for _, a := range accounts {
		accType, name := "", ""
		if a.Type != nil {
			accType = *a.Type
		}
		if a.Name != nil {
			name = *a.Name
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", a.ID, a.Number, accType, name)
	}
	return w.Flush()
}

func renameFunc(cmd *cobra.Command, args []string) error {
	found, err := root.GetContainer().GetLedger().RenameAccount(cmd.Context(), args[0], args[1])
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no account with number %s", args[0])
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Account %s renamed to %q\n", args[0], args[1])
	return nil
}
