package models

import (
	"github.com/shopspring/decimal"
)

// Amounts and balances are JSON numbers, as sync and HTTP consumers expect.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction is one statement row. Date is an ISO-8601 calendar date, or
// the raw statement text when it could not be parsed. Balance is only valid
// for bank-account statements.
type Transaction struct {
	ID          int64               `json:"id,omitempty"`
	AccountID   int64               `json:"account_id,omitempty"`
	Date        string              `json:"date"`
	Description string              `json:"description"`
	Amount      decimal.Decimal     `json:"amount"`
	Balance     decimal.NullDecimal `json:"balance"`
	CategoryID  *int64              `json:"category_id,omitempty"`
	Hash        string              `json:"-"`
}

// HasBalance reports whether a running balance was printed for the row.
func (t Transaction) HasBalance() bool {
	return t.Balance.Valid
}

// LedgerRow is the flat record handed to downstream consumers (sync,
// export, HTTP). Its JSON shape is a stable contract.
type LedgerRow struct {
	ID             int64               `json:"-"`
	Date           string              `json:"date"`
	Description    string              `json:"description"`
	Amount         decimal.Decimal     `json:"amount"`
	Balance        decimal.NullDecimal `json:"balance"`
	Category       *string             `json:"category"`
	ParentCategory *string             `json:"parent_category"`
	AccountNumber  string              `json:"account_number"`
	AccountName    *string             `json:"account_name"`
}

// CategoryName returns the category name or "" when uncategorized.
func (r LedgerRow) CategoryName() string {
	return derefString(r.Category)
}

// ParentCategoryName returns the parent category name or "".
func (r LedgerRow) ParentCategoryName() string {
	return derefString(r.ParentCategory)
}

// BalanceString renders the balance with two decimals, or "" when absent.
func (r LedgerRow) BalanceString() string {
	if !r.Balance.Valid {
		return ""
	}
	return r.Balance.Decimal.StringFixed(2)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
