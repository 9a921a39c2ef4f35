// Package parse handles statement ingestion commands
package parse

import (
	"fmt"
	"io"

	"fjacquet/fintrack/cmd/root"
	"fjacquet/fintrack/internal/ingest"

	"github.com/spf13/cobra"
)

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse <statement.pdf>",
	Short: "Parse a statement PDF into the ledger",
	Long: `Parse a single CIBC statement PDF, categorize its transactions and add
them to the ledger. Re-parsing the same statement adds nothing.`,
	Args: cobra.ExactArgs(1),
	RunE: parseFunc,
}

// AllCmd represents the parse-all command
var AllCmd = &cobra.Command{
	Use:   "parse-all",
	Short: "Parse every statement PDF in a directory",
	Long: `Parse every *.pdf in the statements directory in name order. A statement
that cannot be read is reported and the run continues.`,
	Args: cobra.NoArgs,
	RunE: parseAllFunc,
}

var statementsDir string

func init() {
	AllCmd.Flags().StringVarP(&statementsDir, "dir", "d", "", "Statements directory (default statements.directory)")
}

func parseFunc(cmd *cobra.Command, args []string) error {
	report, err := root.GetContainer().GetPipeline().IngestFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}

func parseAllFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	dir := statementsDir
	if dir == "" {
		dir = c.GetConfig().Statements.Directory
	}

	summary, err := c.GetPipeline().IngestDir(cmd.Context(), dir)
	out := cmd.OutOrStdout()
	if summary != nil {
		if len(summary.Files) == 0 {
			fmt.Fprintf(out, "No PDF statements found in %s\n", dir)
			return err
		}
		fmt.Fprintf(out, "Found %d statement(s) in %s\n\n", len(summary.Files), dir)
		for _, r := range summary.Reports {
			printReport(out, r)
			fmt.Fprintln(out)
		}
		for _, f := range summary.Failures {
			fmt.Fprintf(out, "Failed: %s: %v\n", f.Path, f.Err)
		}
		fmt.Fprintf(out, "Done: %d new transactions from %d statement(s), %d failed\n",
			summary.Inserted(), len(summary.Reports), len(summary.Failures))
	}
	return err
}

func printReport(out io.Writer, r *ingest.Report) {
	fmt.Fprintf(out, "Parsed %s\n", r.Source)
	fmt.Fprintf(out, "  Account: %s (%s)\n", r.AccountNumber, r.AccountType)
	fmt.Fprintf(out, "  Found %d transactions\n", r.Parsed)
	fmt.Fprintf(out, "  Added %d new transactions (%d duplicates skipped)\n", r.Inserted, r.Duplicates)
	if r.Categorization.Total > 0 {
		fmt.Fprintf(out, "  Categorized %d of %d\n", r.Categorization.Categorized, r.Categorization.Total)
	}
	if n := len(r.Malformed); n > 0 {
		fmt.Fprintf(out, "  %d line(s) in transaction sections could not be read:\n", n)
		for _, l := range r.Malformed {
			fmt.Fprintf(out, "    page %d line %d: %s\n", l.Page, l.LineNum, l.Text)
		}
	}
}
