// Package ingest runs statements through the parse, categorize and persist
// pipeline.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"fjacquet/fintrack/internal/fileutils"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
	"fjacquet/fintrack/internal/parsererror"
	"fjacquet/fintrack/internal/pdfparser"
	"fjacquet/fintrack/internal/statementparser"

	"github.com/google/uuid"
)

// Store is the part of the ledger the pipeline writes to.
type Store interface {
	RegisterAccount(ctx context.Context, info models.AccountInfo) (models.InsertResult, error)
	InsertTransaction(ctx context.Context, tx models.Transaction) (models.InsertResult, error)
	ListForCategorization(ctx context.Context, all bool) ([]models.Transaction, error)
	SetTransactionCategory(ctx context.Context, id int64, categoryID *int64) (bool, error)
}

// Categorizer resolves a description to an optional category identity.
type Categorizer interface {
	CategoryID(description string) *int64
}

// Report describes one ingested document.
type Report struct {
	RunID          string
	Source         string
	Layout         models.Layout
	AccountNumber  string
	AccountType    string
	AccountID      int64
	Parsed         int
	Inserted       int
	Duplicates     int
	Categorization models.CategorizationStats
	Coverage       models.PageCoverage
	Malformed      []models.LineResult
	Duration       time.Duration
}

// Pipeline wires the page source, parser, categorizer and store. It
// processes one document at a time.
type Pipeline struct {
	pages       pdfparser.PDFExtractor
	parser      *statementparser.Parser
	categorizer Categorizer
	store       Store
	logger      logging.Logger
}

// NewPipeline creates a Pipeline. A nil page source selects the PDF reader.
func NewPipeline(pages pdfparser.PDFExtractor, parser *statementparser.Parser, categorizer Categorizer, store Store, logger logging.Logger) *Pipeline {
	logger = logging.OrDefault(logger)
	if pages == nil {
		pages = pdfparser.NewRealPDFExtractor()
	}
	if parser == nil {
		parser = statementparser.NewParser(logger)
	}
	return &Pipeline{
		pages:       pages,
		parser:      parser,
		categorizer: categorizer,
		store:       store,
		logger:      logger,
	}
}

// IngestFile extracts page text from path and ingests it.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (*Report, error) {
	pages, err := p.pages.ExtractPages(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return p.IngestPages(ctx, path, pages)
}

// IngestPages parses the page texts of one document, categorizes each
// transaction and stores it. Re-ingesting the same pages adds no rows.
// A storage failure aborts the document and is returned.
func (p *Pipeline) IngestPages(ctx context.Context, source string, pages []string) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.NewString(), Source: source}
	log := p.logger.WithFields(
		logging.F(logging.FieldRunID, report.RunID),
		logging.F(logging.FieldSource, source),
	)

	st := p.parser.Parse(pages)
	report.Layout = st.Layout
	report.AccountNumber = st.Account.Number
	report.AccountType = st.Account.Type
	report.Parsed = len(st.Transactions)
	report.Coverage = st.Totals()
	report.Malformed = st.MalformedLines()

	account, err := p.store.RegisterAccount(ctx, st.Account)
	if err != nil {
		return nil, fmt.Errorf("failed to register account %s: %w", st.Account.Number, err)
	}
	report.AccountID = account.ID

	for _, tx := range st.Transactions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tx.AccountID = account.ID
		if p.categorizer != nil {
			tx.CategoryID = p.categorizer.CategoryID(tx.Description)
		}
		report.Categorization.Record(tx.CategoryID != nil)

		res, err := p.store.InsertTransaction(ctx, tx)
		if err != nil {
			return nil, fmt.Errorf("failed to store transaction from %s: %w", source, err)
		}
		if res.IsNew() {
			report.Inserted++
		} else {
			report.Duplicates++
		}
	}

	report.Duration = time.Since(start)
	log.Info("Statement ingested",
		logging.F(logging.FieldLayout, report.Layout.String()),
		logging.F(logging.FieldAccountNumber, report.AccountNumber),
		logging.F(logging.FieldCount, report.Parsed),
		logging.F(logging.FieldInserted, report.Inserted),
		logging.F(logging.FieldDuplicates, report.Duplicates),
		logging.F(logging.FieldMalformed, report.Coverage.Malformed),
		logging.F(logging.FieldDuration, report.Duration.Milliseconds()))
	report.Categorization.LogSummary(log, source)

	return report, nil
}

// FileError records a document that could not be ingested.
type FileError struct {
	Path string
	Err  error
}

// DirSummary describes an IngestDir run.
type DirSummary struct {
	Dir      string
	Files    []string
	Reports  []*Report
	Failures []FileError
}

// Inserted sums new rows across all reports.
func (s *DirSummary) Inserted() int {
	n := 0
	for _, r := range s.Reports {
		n += r.Inserted
	}
	return n
}

// IngestDir ingests every PDF in dir in name order. A document that fails to
// parse is recorded and the run continues; a storage failure stops the run.
// A missing directory yields an empty summary.
func (p *Pipeline) IngestDir(ctx context.Context, dir string) (*DirSummary, error) {
	summary := &DirSummary{Dir: dir}

	files, err := listStatements(dir)
	if errors.Is(err, os.ErrNotExist) {
		p.logger.Warn("Statements directory not found", logging.F(logging.FieldFile, dir))
		return summary, nil
	}
	if err != nil {
		return nil, err
	}
	summary.Files = files

	if len(files) == 0 {
		p.logger.Warn("No PDF statements found", logging.F(logging.FieldFile, dir))
		return summary, nil
	}

	for _, file := range files {
		report, err := p.IngestFile(ctx, file)
		if err != nil {
			if parsererror.IsStorageError(err) || ctx.Err() != nil {
				return summary, err
			}
			p.logger.WithError(err).Warn("Failed to ingest statement", logging.F(logging.FieldFile, file))
			summary.Failures = append(summary.Failures, FileError{Path: file, Err: err})
			continue
		}
		summary.Reports = append(summary.Reports, report)
	}

	return summary, nil
}

func listStatements(dir string) ([]string, error) {
	return fileutils.ListFilesWithExtension(dir, ".pdf")
}

// RecategorizeResult describes a Recategorize run.
type RecategorizeResult struct {
	Examined int
	Updated  int
	Stats    models.CategorizationStats
}

// Recategorize runs the categorizer over uncategorized transactions, or over
// all of them when all is set, and attaches or replaces their category.
// A transaction with no match keeps its current category.
func (p *Pipeline) Recategorize(ctx context.Context, all bool) (RecategorizeResult, error) {
	var result RecategorizeResult
	if p.categorizer == nil {
		return result, errors.New("no categorizer configured")
	}

	txs, err := p.store.ListForCategorization(ctx, all)
	if err != nil {
		return result, err
	}

	for _, tx := range txs {
		result.Examined++
		id := p.categorizer.CategoryID(tx.Description)
		result.Stats.Record(id != nil)
		if id == nil || (tx.CategoryID != nil && *tx.CategoryID == *id) {
			continue
		}
		if _, err := p.store.SetTransactionCategory(ctx, tx.ID, id); err != nil {
			return result, err
		}
		result.Updated++
	}

	p.logger.Info("Transactions recategorized",
		logging.F(logging.FieldCount, result.Examined),
		logging.F(logging.FieldStatus, fmt.Sprintf("%d updated", result.Updated)))
	return result, nil
}
