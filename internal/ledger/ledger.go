// Package ledger persists accounts, categories and transactions in SQLite.
// Writes are idempotent: re-registering an account, re-defining a category
// or re-submitting a transaction reports a duplicate instead of failing.
package ledger

import (
	"context"
	"database/sql"

	"fjacquet/fintrack/internal/fileutils"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parsererror"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory ledger.
const MemoryPath = ":memory:"

const schema = `
CREATE TABLE IF NOT EXISTS accounts (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	account_number TEXT NOT NULL UNIQUE,
	account_name   TEXT,
	account_type   TEXT,
	created_at     TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);

CREATE TABLE IF NOT EXISTS categories (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	name      TEXT NOT NULL,
	parent_id INTEGER REFERENCES categories(id),
	keywords  TEXT
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_parent
	ON categories(name, IFNULL(parent_id, 0));

CREATE TABLE IF NOT EXISTS transactions (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	account_id  INTEGER NOT NULL REFERENCES accounts(id),
	date        TEXT NOT NULL,
	description TEXT NOT NULL,
	amount      REAL NOT NULL,
	balance     REAL,
	category_id INTEGER REFERENCES categories(id),
	hash        TEXT NOT NULL UNIQUE,
	created_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
);

CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date);
CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id);
`

// Ledger is the SQLite-backed store.
type Ledger struct {
	db     *sql.DB
	path   string
	logger logging.Logger
}

// Open opens or creates the ledger at path and ensures the schema exists.
func Open(ctx context.Context, path string, logger logging.Logger) (*Ledger, error) {
	logger = logging.OrDefault(logger)

	if path != MemoryPath {
		if err := fileutils.EnsureParentDirectory(path); err != nil {
			return nil, parsererror.NewStorageError("open", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, parsererror.NewStorageError("open", err)
	}
	// One connection serializes writes and keeps :memory: databases alive.
	db.SetMaxOpenConns(1)

	l := &Ledger{db: db, path: path, logger: logger}
	if err := l.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("Ledger opened", logging.F(logging.FieldFile, path))
	return l, nil
}

// dsn enables foreign keys on every connection the pool opens.
func dsn(path string) string {
	return path + "?_pragma=foreign_keys(1)"
}

func (l *Ledger) migrate(ctx context.Context) error {
	if _, err := l.db.ExecContext(ctx, schema); err != nil {
		return parsererror.NewStorageError("create schema", err)
	}
	return nil
}

// Path returns the database location.
func (l *Ledger) Path() string {
	return l.path
}

// Close releases the database handle.
func (l *Ledger) Close() error {
	if err := l.db.Close(); err != nil {
		return parsererror.NewStorageError("close", err)
	}
	return nil
}

// Ping checks that the backend is reachable.
func (l *Ledger) Ping(ctx context.Context) error {
	return parsererror.NewStorageError("ping", l.db.PingContext(ctx))
}

// Stats is a summary of ledger contents.
type Stats struct {
	Accounts      int `json:"accounts"`
	Transactions  int `json:"transactions"`
	Uncategorized int `json:"uncategorized"`
	Categories    int `json:"categories"`
}

// Stats counts accounts, transactions, uncategorized transactions and categories.
func (l *Ledger) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := l.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM accounts),
			(SELECT COUNT(*) FROM transactions),
			(SELECT COUNT(*) FROM transactions WHERE category_id IS NULL),
			(SELECT COUNT(*) FROM categories)`).
		Scan(&s.Accounts, &s.Transactions, &s.Uncategorized, &s.Categories)
	if err != nil {
		return Stats{}, parsererror.NewStorageError("stats", err)
	}
	return s, nil
}

// insertOutcome classifies an INSERT ... ON CONFLICT DO NOTHING result.
func insertOutcome(res sql.Result, op string) (models.InsertOutcome, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return models.Duplicate, parsererror.NewStorageError(op, err)
	}
	if n == 0 {
		return models.Duplicate, nil
	}
	return models.Inserted, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func int64Ptr(ni sql.NullInt64) *int64 {
	if !ni.Valid {
		return nil
	}
	v := ni.Int64
	return &v
}
