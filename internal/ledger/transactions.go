package ledger

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	"fjacquet/fintrack/internal/currencyutils"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parsererror"

	"github.com/shopspring/decimal"
)

// ContentHash is the identity of a transaction: the hex SHA-256 of
// account, date, description and amount (two decimals).
func ContentHash(accountID int64, date, description string, amount decimal.Decimal) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d|%s|%s|%s", accountID, date, description, amount.StringFixed(2))))
	return hex.EncodeToString(sum[:])
}

// InsertTransaction stores tx unless a transaction with the same content
// hash exists, in which case the outcome is models.Duplicate with ID zero.
func (l *Ledger) InsertTransaction(ctx context.Context, tx models.Transaction) (models.InsertResult, error) {
	hash := ContentHash(tx.AccountID, tx.Date, tx.Description, tx.Amount)

	var balance sql.NullFloat64
	if tx.Balance.Valid {
		balance = sql.NullFloat64{Float64: tx.Balance.Decimal.InexactFloat64(), Valid: true}
	}

	res, err := l.db.ExecContext(ctx, `
		INSERT INTO transactions (account_id, date, description, amount, balance, category_id, hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(hash) DO NOTHING`,
		tx.AccountID, tx.Date, tx.Description, tx.Amount.InexactFloat64(), balance, nullInt64(tx.CategoryID), hash)
	if err != nil {
		return models.InsertResult{}, parsererror.NewStorageError("insert transaction", err)
	}

	outcome, err := insertOutcome(res, "insert transaction")
	if err != nil {
		return models.InsertResult{}, err
	}
	if outcome == models.Duplicate {
		return models.InsertResult{Outcome: models.Duplicate}, nil
	}

	id, err := res.LastInsertId()
	if err != nil {
		return models.InsertResult{}, parsererror.NewStorageError("insert transaction", err)
	}
	return models.InsertResult{ID: id, Outcome: models.Inserted}, nil
}

// TransactionFilter narrows ListTransactions. Zero values mean no filter.
type TransactionFilter struct {
	AccountID     *int64
	AccountNumber string
	Limit         int
}

// ListTransactions returns ledger rows, newest date first, each joined with
// its category, parent category and account. Uncategorized rows carry nil
// category fields.
func (l *Ledger) ListTransactions(ctx context.Context, filter TransactionFilter) ([]models.LedgerRow, error) {
	var (
		query strings.Builder
		args  []any
		where []string
	)
	query.WriteString(`
		SELECT t.id, t.date, t.description, t.amount, t.balance,
		       c.name, pc.name, a.account_number, a.account_name
		FROM transactions t
		JOIN accounts a ON t.account_id = a.id
		LEFT JOIN categories c ON t.category_id = c.id
		LEFT JOIN categories pc ON c.parent_id = pc.id`)

	if filter.AccountID != nil {
		where = append(where, "t.account_id = ?")
		args = append(args, *filter.AccountID)
	}
	if filter.AccountNumber != "" {
		where = append(where, "a.account_number = ?")
		args = append(args, filter.AccountNumber)
	}
	if len(where) > 0 {
		query.WriteString("\n\t\tWHERE " + strings.Join(where, " AND "))
	}
	query.WriteString("\n\t\tORDER BY t.date DESC, t.id DESC")
	if filter.Limit > 0 {
		query.WriteString("\n\t\tLIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := l.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, parsererror.NewStorageError("list transactions", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.LedgerRow{}
	for rows.Next() {
		var (
			r           models.LedgerRow
			amount      float64
			balance     sql.NullFloat64
			category    sql.NullString
			parent      sql.NullString
			accountName sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.Date, &r.Description, &amount, &balance,
			&category, &parent, &r.AccountNumber, &accountName); err != nil {
			return nil, parsererror.NewStorageError("list transactions", err)
		}
		r.Amount = currencyutils.FromFloat(amount)
		if balance.Valid {
			r.Balance = decimal.NewNullDecimal(currencyutils.FromFloat(balance.Float64))
		}
		r.Category = stringPtr(category)
		r.ParentCategory = stringPtr(parent)
		r.AccountName = stringPtr(accountName)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, parsererror.NewStorageError("list transactions", err)
	}
	return out, nil
}

// CountTransactions returns the number of stored transactions.
func (l *Ledger) CountTransactions(ctx context.Context) (int, error) {
	var n int
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, parsererror.NewStorageError("count transactions", err)
	}
	return n, nil
}

// CountUncategorized returns the number of transactions without a category.
func (l *Ledger) CountUncategorized(ctx context.Context) (int, error) {
	var n int
	if err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE category_id IS NULL`).Scan(&n); err != nil {
		return 0, parsererror.NewStorageError("count uncategorized", err)
	}
	return n, nil
}

// ListForCategorization returns transactions to run through the categorizer:
// only uncategorized ones unless all is set.
func (l *Ledger) ListForCategorization(ctx context.Context, all bool) ([]models.Transaction, error) {
	query := `SELECT id, account_id, date, description, amount, balance, category_id, hash FROM transactions`
	if !all {
		query += ` WHERE category_id IS NULL`
	}
	query += ` ORDER BY id`

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return nil, parsererror.NewStorageError("list for categorization", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.Transaction{}
	for rows.Next() {
		var (
			tx         models.Transaction
			amount     float64
			balance    sql.NullFloat64
			categoryID sql.NullInt64
		)
		if err := rows.Scan(&tx.ID, &tx.AccountID, &tx.Date, &tx.Description, &amount,
			&balance, &categoryID, &tx.Hash); err != nil {
			return nil, parsererror.NewStorageError("list for categorization", err)
		}
		tx.Amount = currencyutils.FromFloat(amount)
		if balance.Valid {
			tx.Balance = decimal.NewNullDecimal(currencyutils.FromFloat(balance.Float64))
		}
		tx.CategoryID = int64Ptr(categoryID)
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, parsererror.NewStorageError("list for categorization", err)
	}
	return out, nil
}

// SetTransactionCategory attaches, replaces or clears (nil) the category of
// a transaction. It reports whether the transaction exists.
func (l *Ledger) SetTransactionCategory(ctx context.Context, id int64, categoryID *int64) (bool, error) {
	res, err := l.db.ExecContext(ctx,
		`UPDATE transactions SET category_id = ? WHERE id = ?`, nullInt64(categoryID), id)
	if err != nil {
		return false, parsererror.NewStorageError("set transaction category", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, parsererror.NewStorageError("set transaction category", err)
	}
	return n > 0, nil
}
