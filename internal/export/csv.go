// Package export writes ledger rows to CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/fintrack/internal/fileutils"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	"github.com/gocarina/gocsv"
)

// CSVRow is the CSV shape of a models.LedgerRow.
type CSVRow struct {
	Date           string `csv:"date"`
	Description    string `csv:"description"`
	Amount         string `csv:"amount"`
	Balance        string `csv:"balance"`
	Category       string `csv:"category"`
	ParentCategory string `csv:"parent_category"`
	AccountNumber  string `csv:"account_number"`
	AccountName    string `csv:"account_name"`
}

// NewCSVRow converts a ledger row. Absent values become empty cells.
func NewCSVRow(r models.LedgerRow) CSVRow {
	name := ""
	if r.AccountName != nil {
		name = *r.AccountName
	}
	return CSVRow{
		Date:           r.Date,
		Description:    r.Description,
		Amount:         r.Amount.StringFixed(2),
		Balance:        r.BalanceString(),
		Category:       r.CategoryName(),
		ParentCategory: r.ParentCategoryName(),
		AccountNumber:  r.AccountNumber,
		AccountName:    name,
	}
}

// Writer writes ledger rows with a configurable delimiter.
type Writer struct {
	delimiter rune
	logger    logging.Logger
}

// NewWriter creates a Writer. A zero delimiter means comma.
func NewWriter(delimiter rune, logger logging.Logger) *Writer {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Writer{delimiter: delimiter, logger: logging.OrDefault(logger)}
}

// Write marshals rows, header first, to w.
func (cw *Writer) Write(w io.Writer, rows []models.LedgerRow) error {
	out := make([]CSVRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewCSVRow(r))
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = cw.delimiter

	if err := gocsv.MarshalCSV(out, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// WriteFile writes rows to path, creating parent directories.
func (cw *Writer) WriteFile(path string, rows []models.LedgerRow) error {
	file, err := fileutils.CreateFile(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			cw.logger.WithError(err).Warn("Failed to close file", logging.F(logging.FieldOutputFile, path))
		}
	}()

	if err := cw.Write(file, rows); err != nil {
		return err
	}

	cw.logger.Info("Ledger rows exported",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldCount, len(rows)),
		logging.F("delimiter", string(cw.delimiter)))
	return nil
}
