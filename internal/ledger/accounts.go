package ledger

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parsererror"
)

// ErrAccountNotFound is returned when an account number is not registered.
var ErrAccountNotFound = errors.New("account not found")

// RegisterAccount returns the identity of the account with info.Number,
// creating it on first sighting. An existing account is left unchanged.
func (l *Ledger) RegisterAccount(ctx context.Context, info models.AccountInfo) (models.InsertResult, error) {
	number := strings.TrimSpace(info.Number)
	if number == "" {
		number = models.UnknownAccountNumber
	}

	res, err := l.db.ExecContext(ctx, `
		INSERT INTO accounts (account_number, account_name, account_type)
		VALUES (?, ?, ?)
		ON CONFLICT(account_number) DO NOTHING`,
		number, nullString(info.Name), nullString(models.StringPtr(info.Type)))
	if err != nil {
		return models.InsertResult{}, parsererror.NewStorageError("register account", err)
	}

	outcome, err := insertOutcome(res, "register account")
	if err != nil {
		return models.InsertResult{}, err
	}

	var id int64
	if err := l.db.QueryRowContext(ctx,
		`SELECT id FROM accounts WHERE account_number = ?`, number).Scan(&id); err != nil {
		return models.InsertResult{}, parsererror.NewStorageError("register account", err)
	}

	l.logger.Debug("Account registered",
		logging.F(logging.FieldAccountNumber, number),
		logging.F(logging.FieldStatus, outcome.String()))
	return models.InsertResult{ID: id, Outcome: outcome}, nil
}

// ListAccounts returns every account ordered by identity.
func (l *Ledger) ListAccounts(ctx context.Context) ([]models.Account, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT id, account_number, account_name, account_type, created_at
		FROM accounts
		ORDER BY id`)
	if err != nil {
		return nil, parsererror.NewStorageError("list accounts", err)
	}
	defer func() { _ = rows.Close() }()

	accounts := []models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, parsererror.NewStorageError("list accounts", err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, parsererror.NewStorageError("list accounts", err)
	}
	return accounts, nil
}

// GetAccountByNumber looks an account up by its number.
func (l *Ledger) GetAccountByNumber(ctx context.Context, number string) (models.Account, error) {
	row := l.db.QueryRowContext(ctx, `
		SELECT id, account_number, account_name, account_type, created_at
		FROM accounts
		WHERE account_number = ?`, number)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrAccountNotFound
	}
	if err != nil {
		return models.Account{}, parsererror.NewStorageError("get account", err)
	}
	return a, nil
}

// RenameAccount sets the display name of the account with number. It
// reports whether an account matched; renaming to the current name matches.
func (l *Ledger) RenameAccount(ctx context.Context, number, name string) (bool, error) {
	res, err := l.db.ExecContext(ctx,
		`UPDATE accounts SET account_name = ? WHERE account_number = ?`,
		nullString(models.StringPtr(strings.TrimSpace(name))), number)
	if err != nil {
		return false, parsererror.NewStorageError("rename account", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, parsererror.NewStorageError("rename account", err)
	}
	return n > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(r rowScanner) (models.Account, error) {
	var (
		a         models.Account
		name      sql.NullString
		kind      sql.NullString
		createdAt string
	)
	if err := r.Scan(&a.ID, &a.Number, &name, &kind, &createdAt); err != nil {
		return models.Account{}, err
	}
	a.Name = stringPtr(name)
	a.Type = stringPtr(kind)
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		a.CreatedAt = t
	}
	return a, nil
}
