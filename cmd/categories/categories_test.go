package categories_test

import (
	"strings"
	"testing"

	"fjacquet/fintrack/cmd/categories"
	"fjacquet/fintrack/cmd/cmdtest"
	"fjacquet/fintrack/cmd/parse"
	"fjacquet/fintrack/internal/container"
	"fjacquet/fintrack/internal/pdfparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	cmdtest.Register(categories.InitCmd, categories.AddCmd, categories.ListCmd, categories.RecategorizeCmd, parse.Cmd)
}

func TestCategoryCommands_Flags(t *testing.T) {
	parent := categories.AddCmd.Flags().Lookup("parent")
	require.NotNil(t, parent)
	assert.Equal(t, "p", parent.Shorthand)

	kw := categories.AddCmd.Flags().Lookup("keywords")
	require.NotNil(t, kw)
	assert.Equal(t, "k", kw.Shorthand)

	all := categories.RecategorizeCmd.Flags().Lookup("all")
	require.NotNil(t, all)
	assert.Equal(t, "false", all.DefValue)
}

func TestInitAndListCategories(t *testing.T) {
	db := cmdtest.Env(t)

	out, err := cmdtest.Run(t, "--db", db, "list-categories")
	require.NoError(t, err)
	assert.Contains(t, out, "No categories")

	out, err = cmdtest.Run(t, "--db", db, "init-categories")
	require.NoError(t, err)
	assert.Contains(t, out, "Default categories initialized (28 added)")

	out, err = cmdtest.Run(t, "--db", db, "init-categories")
	require.NoError(t, err)
	assert.Contains(t, out, "(0 added)")

	out, err = cmdtest.Run(t, "--db", db, "list-categories")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Food\n  - Groceries\n  - Dining\n  - Coffee\nTransportation\n"), out)
}

func TestAddCategory(t *testing.T) {
	db := cmdtest.Env(t)

	out, err := cmdtest.Run(t, "--db", db, "add-category", "Streaming", "--parent", "Subscriptions", "--keywords", "netflix, spotify ,")
	require.NoError(t, err)
	assert.Contains(t, out, "Added category: Streaming (ID: 2)")

	out, err = cmdtest.Run(t, "--db", db, "list-categories")
	require.NoError(t, err)
	assert.Equal(t, "Subscriptions\n  - Streaming\n", out)

	_, err = cmdtest.Run(t, "--db", db, "add-category", "Empty", "--parent", "", "--keywords", " , ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "keyword")
}

func TestRecategorize(t *testing.T) {
	pages := []string{strings.Join([]string{
		"Account Statement",
		"Branch transit number 00010",
		"Account number 87-40798",
		"Date Description Withdrawals ($) Deposits ($) Balance ($)",
		"Sep 3 NETFLIX.COM 16.99 892.93",
	}, "\n")}
	db := cmdtest.Env(t, container.WithPageSource(pdfparser.NewMockPDFExtractor(pages, nil)))

	_, err := cmdtest.Run(t, "--db", db, "--year", "2025", "parse", "sept.pdf")
	require.NoError(t, err)

	_, err = cmdtest.Run(t, "--db", db, "add-category", "Streaming", "--parent", "", "--keywords", "netflix")
	require.NoError(t, err)

	out, err := cmdtest.Run(t, "--db", db, "recategorize")
	require.NoError(t, err)
	assert.Contains(t, out, "Examined 1 transactions, updated 1 (0 without a match)")

	out, err = cmdtest.Run(t, "--db", db, "recategorize")
	require.NoError(t, err)
	assert.Contains(t, out, "Examined 0 transactions, updated 0")

	out, err = cmdtest.Run(t, "--db", db, "recategorize", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Examined 1 transactions, updated 0")
}
