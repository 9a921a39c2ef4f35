// Package statementparser turns the page text of a statement into account
// metadata and an ordered list of transactions.
package statementparser

import (
	"time"

	"fjacquet/fintrack/internal/dateutils"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"
)

// Statement is the result of parsing one document.
type Statement struct {
	Layout       models.Layout
	Account      models.AccountInfo
	Transactions []models.Transaction
	Lines        []models.LineResult
	Coverage     []models.PageCoverage
}

// MalformedLines returns the lines that sat in a transaction section but
// did not match the row grammar.
func (s *Statement) MalformedLines() []models.LineResult {
	var out []models.LineResult
	for _, l := range s.Lines {
		if l.Outcome == models.LineMalformed {
			out = append(out, l)
		}
	}
	return out
}

// Totals sums the per-page coverage.
func (s *Statement) Totals() models.PageCoverage {
	var total models.PageCoverage
	for _, c := range s.Coverage {
		total.Matched += c.Matched
		total.Skipped += c.Skipped
		total.Malformed += c.Malformed
	}
	return total
}

// Parser parses statement page text. Statement dates carry no year, so the
// parser supplies one: the configured year, or the current year.
type Parser struct {
	logger logging.Logger
	year   int
	now    func() time.Time
}

// Option configures a Parser.
type Option func(*Parser)

// WithYear pins the year used for statement dates. Zero means current year.
func WithYear(year int) Option {
	return func(p *Parser) { p.year = year }
}

// WithClock overrides the clock used to find the current year.
func WithClock(now func() time.Time) Option {
	return func(p *Parser) {
		if now != nil {
			p.now = now
		}
	}
}

// NewParser creates a Parser.
func NewParser(logger logging.Logger, opts ...Option) *Parser {
	p := &Parser{
		logger: logging.OrDefault(logger),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Year returns the year that will be applied to statement dates.
func (p *Parser) Year() int {
	return dateutils.ResolveYear(p.year, p.now())
}

// Parse segments and extracts pages. It never fails: an unknown layout
// yields sentinel account metadata and no transactions.
func (p *Parser) Parse(pages []string) *Statement {
	firstPage := ""
	if len(pages) > 0 {
		firstPage = pages[0]
	}

	layout := DetectLayout(firstPage)
	st := &Statement{
		Layout:       layout,
		Account:      ExtractAccountInfo(firstPage, layout),
		Transactions: []models.Transaction{},
	}

	log := p.logger.WithFields(
		logging.F(logging.FieldLayout, layout.String()),
		logging.F(logging.FieldAccountNumber, st.Account.Number),
	)
	if !layout.IsKnown() {
		log.Warn("Unrecognized statement layout, no transactions extracted")
	}

	g := grammarFor(layout)
	year := p.Year()
	for i, text := range pages {
		res := extractPage(g, i+1, text, year)
		st.Transactions = append(st.Transactions, res.transactions...)
		st.Lines = append(st.Lines, res.lines...)
		st.Coverage = append(st.Coverage, res.coverage)

		log.Debug("Page extracted",
			logging.F(logging.FieldPage, res.coverage.Page),
			logging.F(logging.FieldMatched, res.coverage.Matched),
			logging.F(logging.FieldSkipped, res.coverage.Skipped),
			logging.F(logging.FieldMalformed, res.coverage.Malformed))
	}

	for _, l := range st.MalformedLines() {
		log.Debug("Unparsed line in transaction section",
			logging.F(logging.FieldPage, l.Page),
			logging.F(logging.FieldLine, l.LineNum))
	}

	totals := st.Totals()
	log.Info("Statement parsed",
		logging.F(logging.FieldCount, len(st.Transactions)),
		logging.F(logging.FieldMalformed, totals.Malformed))

	return st
}
