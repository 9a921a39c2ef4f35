package models

import (
	"encoding/json"
	"testing"

	"fjacquet/fintrack/internal/logging"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertOutcome(t *testing.T) {
	assert.Equal(t, "inserted", Inserted.String())
	assert.Equal(t, "duplicate", Duplicate.String())
	assert.Equal(t, "unknown", InsertOutcome(7).String())

	assert.True(t, InsertResult{ID: 4, Outcome: Inserted}.IsNew())
	assert.False(t, InsertResult{ID: 4, Outcome: Duplicate}.IsNew())
}

func TestLayout(t *testing.T) {
	tests := []struct {
		layout Layout
		known  bool
	}{
		{LayoutBankAccount, true},
		{LayoutCreditCard, true},
		{LayoutUnknown, false},
		{Layout(""), false},
	}
	for _, tt := range tests {
		t.Run(tt.layout.String(), func(t *testing.T) {
			assert.Equal(t, tt.known, tt.layout.IsKnown())
		})
	}
}

func TestAccountDisplayName(t *testing.T) {
	assert.Equal(t, "87-40798", Account{Number: "87-40798"}.DisplayName())
	assert.Equal(t, "87-40798", Account{Number: "87-40798", Name: StringPtr("")}.DisplayName())
	assert.Equal(t, "Chequing", Account{Number: "87-40798", Name: StringPtr("Chequing")}.DisplayName())
}

func TestCategory(t *testing.T) {
	parent := int64(1)
	top := Category{ID: 1, Name: "Food"}
	child := Category{ID: 2, Name: "Coffee", ParentID: &parent, Keywords: []string{"coffee"}}

	assert.True(t, top.IsTopLevel())
	assert.False(t, top.HasKeywords())
	assert.False(t, child.IsTopLevel())
	assert.True(t, child.HasKeywords())
}

func TestLedgerRowAccessors(t *testing.T) {
	row := LedgerRow{
		Amount:  decimal.RequireFromString("-4.5"),
		Balance: decimal.NewNullDecimal(decimal.RequireFromString("1200.1")),
	}
	assert.Equal(t, "", row.CategoryName())
	assert.Equal(t, "", row.ParentCategoryName())
	assert.Equal(t, "1200.10", row.BalanceString())

	row.Category = StringPtr("Coffee")
	row.ParentCategory = StringPtr("Food")
	row.Balance = decimal.NullDecimal{}
	assert.Equal(t, "Coffee", row.CategoryName())
	assert.Equal(t, "Food", row.ParentCategoryName())
	assert.Equal(t, "", row.BalanceString())
}

func TestLedgerRowJSONShape(t *testing.T) {
	row := LedgerRow{
		ID:            9,
		Date:          "2025-09-03",
		Description:   "NETFLIX.COM",
		Amount:        decimal.RequireFromString("-16.99"),
		AccountNumber: "87-40798",
	}

	data, err := json.Marshal(row)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.ElementsMatch(t, []string{
		"date", "description", "amount", "balance",
		"category", "parent_category", "account_number", "account_name",
	}, keys(decoded))
	assert.Equal(t, -16.99, decoded["amount"])
	assert.Nil(t, decoded["balance"])
	assert.Nil(t, decoded["category"])
	assert.Contains(t, string(data), `"amount":-16.99`)

	row.Balance = decimal.NewNullDecimal(decimal.RequireFromString("892.93"))
	data, err = json.Marshal(row)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"balance":892.93`)
	assert.Equal(t, "87-40798", decoded["account_number"])
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestTransactionHasBalance(t *testing.T) {
	assert.False(t, Transaction{}.HasBalance())
	assert.True(t, Transaction{Balance: decimal.NewNullDecimal(decimal.Zero)}.HasBalance())
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	require.NotNil(t, StringPtr("x"))
	assert.Equal(t, "x", *StringPtr("x"))
}

func TestCategorizationStats(t *testing.T) {
	var stats CategorizationStats
	assert.Equal(t, 0.0, stats.GetSuccessRate())

	stats.Record(true)
	stats.Record(false)
	stats.Record(true)
	stats.Record(true)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 3, stats.Categorized)
	assert.Equal(t, 1, stats.Uncategorized)
	assert.InDelta(t, 75.0, stats.GetSuccessRate(), 0.001)

	logger := logging.NewMockLogger()
	stats.LogSummary(logger, "sept.pdf")
	assert.True(t, logger.HasEntry("INFO", "Categorization summary"))

	stats.LogSummary(nil, "sept.pdf")
}
