// Package categories handles category management commands
package categories

import (
	"fmt"
	"strings"

	"fjacquet/fintrack/cmd/root"

	"github.com/spf13/cobra"
)

// InitCmd represents the init-categories command
var InitCmd = &cobra.Command{
	Use:   "init-categories",
	Short: "Seed the default category tree",
	Long: `Seed the category tree from categories.seed_file, or the built-in defaults
when none is configured. Running it again adds nothing.`,
	Args: cobra.NoArgs,
	RunE: initFunc,
}

// AddCmd represents the add-category command
var AddCmd = &cobra.Command{
	Use:   "add-category <name>",
	Short: "Add a category with keywords",
	Long: `Add a category matched by the given keywords. With --parent, the category is
created under that top-level category, which is created first if needed.`,
	Args: cobra.ExactArgs(1),
	RunE: addFunc,
}

// ListCmd represents the list-categories command
var ListCmd = &cobra.Command{
	Use:   "list-categories",
	Short: "List the category tree",
	Args:  cobra.NoArgs,
	RunE:  listFunc,
}

// RecategorizeCmd represents the recategorize command
var RecategorizeCmd = &cobra.Command{
	Use:   "recategorize",
	Short: "Re-run keyword matching over stored transactions",
	Long: `Re-run keyword matching over uncategorized transactions, or over every
transaction with --all. A transaction with no match keeps its category.`,
	Args: cobra.NoArgs,
	RunE: recategorizeFunc,
}

var (
	parentName string
	keywords   string
	allTx      bool
)

func init() {
	AddCmd.Flags().StringVarP(&parentName, "parent", "p", "", "Parent category name")
	AddCmd.Flags().StringVarP(&keywords, "keywords", "k", "", "Comma-separated keywords")
	_ = AddCmd.MarkFlagRequired("keywords")

	RecategorizeCmd.Flags().BoolVarP(&allTx, "all", "a", false, "Re-run over all transactions, not only uncategorized ones")
}

func initFunc(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	seeds, err := c.GetSeedStore().LoadSeeds()
	if err != nil {
		return err
	}
	added, err := c.GetCategorizer().InitializeDefaults(cmd.Context(), seeds)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Default categories initialized (%d added)\n", added)
	return nil
}

func addFunc(cmd *cobra.Command, args []string) error {
	list := splitKeywords(keywords)
	if len(list) == 0 {
		return fmt.Errorf("at least one keyword is required")
	}
	id, err := root.GetContainer().GetCategorizer().AddCategoryWithKeywords(cmd.Context(), args[0], list, parentName)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added category: %s (ID: %d)\n", strings.TrimSpace(args[0]), id)
	return nil
}

func listFunc(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	tree := root.GetContainer().GetCategorizer().Tree()
	if len(tree) == 0 {
		fmt.Fprintln(out, "No categories. Run init-categories to seed the defaults.")
		return nil
	}
	for _, node := range tree {
		fmt.Fprintln(out, node.Name)
		for _, child := range node.Children {
			fmt.Fprintf(out, "  - %s\n", child)
		}
	}
	return nil
}

func recategorizeFunc(cmd *cobra.Command, args []string) error {
	res, err := root.GetContainer().GetPipeline().Recategorize(cmd.Context(), allTx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Examined %d transactions, updated %d (%d without a match)\n",
		res.Examined, res.Updated, res.Stats.Uncategorized)
	return nil
}

func splitKeywords(s string) []string {
	var out []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	return out
}
