package sheets

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	"github.com/shopspring/decimal"
)

// Header is written to row 1 of every sheet the syncer creates.
var Header = []interface{}{"Date", "Description", "Amount", "Balance", "Category", "Subcategory"}

// Result describes what one account sync did.
type Result struct {
	AccountNumber string
	Sheet         string
	Appended      int
	Skipped       int
}

// Syncer appends ledger rows that are not already on the account's sheet.
type Syncer struct {
	svc          Service
	rowLimit     int
	lookbackRows int
	logger       logging.Logger
}

// NewSyncer creates a Syncer. A sheet holding more than rowLimit rows rolls
// over to "<name>_2"; lookbackRows bounds the duplicate check.
func NewSyncer(svc Service, rowLimit, lookbackRows int, logger logging.Logger) *Syncer {
	if rowLimit <= 0 {
		rowLimit = 10000
	}
	if lookbackRows <= 0 {
		lookbackRows = 1000
	}
	return &Syncer{
		svc:          svc,
		rowLimit:     rowLimit,
		lookbackRows: lookbackRows,
		logger:       logging.OrDefault(logger),
	}
}

// SheetName returns the sheet title used for an account number.
func SheetName(accountNumber string) string {
	return "Account_" + strings.ReplaceAll(accountNumber, " ", "_")
}

// SyncLedger groups rows by account, oldest first, and syncs each group.
func (s *Syncer) SyncLedger(ctx context.Context, rows []models.LedgerRow) ([]Result, error) {
	var order []string
	groups := make(map[string][]models.LedgerRow)
	for _, row := range rows {
		if _, ok := groups[row.AccountNumber]; !ok {
			order = append(order, row.AccountNumber)
		}
		groups[row.AccountNumber] = append(groups[row.AccountNumber], row)
	}

	results := make([]Result, 0, len(order))
	for _, number := range order {
		group := groups[number]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Date < group[j].Date })
		res, err := s.Sync(ctx, number, group)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Sync appends the rows of one account to its sheet in the given order.
func (s *Syncer) Sync(ctx context.Context, accountNumber string, rows []models.LedgerRow) (Result, error) {
	name := SheetName(accountNumber)
	res := Result{AccountNumber: accountNumber, Sheet: name}
	log := s.logger.WithFields(
		logging.F(logging.FieldAccountNumber, accountNumber),
		logging.F(logging.FieldSheet, name),
	)

	ids, err := s.svc.SheetIDs(ctx)
	if err != nil {
		return res, err
	}
	if err := s.ensureSheet(ctx, ids, name); err != nil {
		return res, err
	}

	count, err := s.rowCount(ctx, name)
	if err != nil {
		return res, err
	}
	if count > s.rowLimit {
		name += "_2"
		res.Sheet = name
		log = log.WithField(logging.FieldSheet, name)
		log.Info("Sheet over row limit, switching to overflow sheet", logging.F(logging.FieldCount, count))
		if err := s.ensureSheet(ctx, ids, name); err != nil {
			return res, err
		}
		if count, err = s.rowCount(ctx, name); err != nil {
			return res, err
		}
	}

	existing, err := s.recentKeys(ctx, name, count)
	if err != nil {
		return res, err
	}

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		if _, dup := existing[rowKey(row.Date, row.Description, row.Amount.StringFixed(2))]; dup {
			res.Skipped++
			continue
		}
		values = append(values, toValues(row))
	}

	if len(values) == 0 {
		log.Info("No new transactions to sync")
		return res, nil
	}
	if err := s.svc.AppendValues(ctx, A1(name, "A:F"), values, InputUserEntered); err != nil {
		return res, err
	}
	res.Appended = len(values)
	log.Info("Transactions appended to sheet",
		logging.F(logging.FieldInserted, res.Appended),
		logging.F(logging.FieldDuplicates, res.Skipped))
	return res, nil
}

func (s *Syncer) ensureSheet(ctx context.Context, ids map[string]int64, name string) error {
	if _, ok := ids[name]; ok {
		return nil
	}
	id, err := s.svc.AddSheet(ctx, name)
	if err != nil {
		return err
	}
	ids[name] = id
	if err := s.svc.UpdateValues(ctx, A1(name, "A1:F1"), [][]interface{}{Header}, InputRaw); err != nil {
		return err
	}
	if err := s.svc.FormatHeader(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Sheet created", logging.F(logging.FieldSheet, name))
	return nil
}

// rowCount counts the used rows of column A, header included.
func (s *Syncer) rowCount(ctx context.Context, name string) (int, error) {
	values, err := s.svc.GetValues(ctx, A1(name, "A:A"))
	if err != nil {
		return 0, err
	}
	return len(values), nil
}

// recentKeys reads the last lookbackRows data rows of the sheet.
func (s *Syncer) recentKeys(ctx context.Context, name string, count int) (map[string]struct{}, error) {
	keys := make(map[string]struct{})
	if count < 2 {
		return keys, nil
	}
	start := count - s.lookbackRows + 1
	if start < 2 {
		start = 2
	}
	values, err := s.svc.GetValues(ctx, A1(name, fmt.Sprintf("A%d:F%d", start, count)))
	if err != nil {
		return nil, err
	}
	for _, cells := range values {
		if len(cells) < 3 {
			continue
		}
		keys[rowKey(cellString(cells[0]), cellString(cells[1]), normalizeAmount(cellString(cells[2])))] = struct{}{}
	}
	return keys, nil
}

func toValues(row models.LedgerRow) []interface{} {
	return []interface{}{
		row.Date,
		row.Description,
		row.Amount.StringFixed(2),
		row.BalanceString(),
		row.ParentCategoryName(),
		row.CategoryName(),
	}
}

func rowKey(date, description, amount string) string {
	return date + "\x1f" + description + "\x1f" + amount
}

func cellString(v interface{}) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// normalizeAmount renders a displayed amount ("-12.5", "1,234.00") with two
// decimals so it compares equal to the ledger value.
func normalizeAmount(s string) string {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(s), ",", ""))
	if err != nil {
		return s
	}
	return d.StringFixed(2)
}
