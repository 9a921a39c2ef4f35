// Package container provides dependency injection for the fintrack application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"fjacquet/fintrack/internal/categorizer"
	"fjacquet/fintrack/internal/config"
	"fjacquet/fintrack/internal/export"
	"fjacquet/fintrack/internal/ingest"
	"fjacquet/fintrack/internal/ledger"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/pdfparser"
	"fjacquet/fintrack/internal/sheets"
	"fjacquet/fintrack/internal/statementparser"
	"fjacquet/fintrack/internal/store"
	"fjacquet/fintrack/internal/validation"
)

// Container holds all application dependencies and provides methods to access them.
// It acts as the central registry for dependency injection, ensuring that all
// components receive their required dependencies through constructors.
//
// Container is immutable after creation. The spreadsheet client is the one
// exception: it is created on first use because it needs credentials that
// most commands never touch.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	ledger      *ledger.Ledger
	seeds       *store.SeedStore
	categorizer *categorizer.Categorizer
	parser      *statementparser.Parser
	pipeline    *ingest.Pipeline
	exporter    *export.Writer

	sheetsService sheets.Service
}

// Option customizes a Container, mostly for tests.
type Option func(*options)

type options struct {
	logger        logging.Logger
	pages         pdfparser.PDFExtractor
	sheetsService sheets.Service
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithPageSource replaces the PDF reader.
func WithPageSource(pages pdfparser.PDFExtractor) Option {
	return func(o *options) { o.pages = pages }
}

// WithSheetsService replaces the Google Sheets client.
func WithSheetsService(svc sheets.Service) Option {
	return func(o *options) { o.sheetsService = svc }
}

// NewContainer creates and wires all application dependencies.
// This is the main entry point for dependency injection in the application.
// It opens the ledger and loads the category cache; Close releases them.
func NewContainer(ctx context.Context, cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger first as it's needed by other components
	logger := o.logger
	if logger == nil {
		logger = config.ConfigureLoggingFromConfig(cfg)
	}

	db, err := ledger.Open(ctx, cfg.Database.Path, logger)
	if err != nil {
		return nil, err
	}

	cat, err := categorizer.NewCategorizer(ctx, db, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	var parserOpts []statementparser.Option
	if cfg.Parser.Year > 0 {
		parserOpts = append(parserOpts, statementparser.WithYear(cfg.Parser.Year))
	}
	p := statementparser.NewParser(logger, parserOpts...)

	pipeline := ingest.NewPipeline(o.pages, p, cat, db, logger)

	logger.Info("Container initialized successfully",
		logging.F("database", db.Path()),
		logging.F(logging.FieldCount, len(cat.Categories())),
		logging.F("year", p.Year()))

	return &Container{
		logger:        logger,
		config:        cfg,
		ledger:        db,
		seeds:         store.NewSeedStore(cfg.Categories.SeedFile, logger),
		categorizer:   cat,
		parser:        p,
		pipeline:      pipeline,
		exporter:      export.NewWriter(delimiterRune(cfg.Export.Delimiter), logger),
		sheetsService: o.sheetsService,
	}, nil
}

func delimiterRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return ','
	}
	return r
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetLedger returns the open ledger store.
func (c *Container) GetLedger() *ledger.Ledger {
	return c.ledger
}

// GetSeedStore returns the category seed loader.
func (c *Container) GetSeedStore() *store.SeedStore {
	return c.seeds
}

// GetCategorizer returns the container's categorizer instance.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetParser returns the statement parser.
func (c *Container) GetParser() *statementparser.Parser {
	return c.parser
}

// GetPipeline returns the ingestion pipeline.
func (c *Container) GetPipeline() *ingest.Pipeline {
	return c.pipeline
}

// GetExporter returns the CSV writer.
func (c *Container) GetExporter() *export.Writer {
	return c.exporter
}

// GetSyncer returns a spreadsheet syncer, creating the Google client on
// first use. It fails when no credentials or spreadsheet id are configured.
func (c *Container) GetSyncer(ctx context.Context) (*sheets.Syncer, error) {
	if c.sheetsService == nil {
		if !c.config.SheetsConfigured() {
			return nil, fmt.Errorf("google sheets is not configured: set GOOGLE_CREDENTIALS_FILE and GOOGLE_SPREADSHEET_ID")
		}
		credentials := c.config.Sheets.CredentialsFile
		if err := validation.IsReadableFile(credentials); err != nil {
			return nil, fmt.Errorf("invalid google credentials: %w", err)
		}
		if info, err := os.Stat(credentials); err == nil {
			if err := validation.IsValidFilePermissions(info.Mode()); err != nil {
				c.logger.Warn("Credentials file is readable by others",
					logging.F(logging.FieldFile, credentials),
					logging.F(logging.FieldError, err.Error()))
			}
		}
		svc, err := sheets.NewGoogleService(ctx, credentials, c.config.Sheets.SpreadsheetID)
		if err != nil {
			return nil, err
		}
		c.sheetsService = svc
	}
	return sheets.NewSyncer(c.sheetsService, c.config.Sheets.RowLimit, c.config.Sheets.LookbackRows, c.logger), nil
}

// Close releases the ledger connection.
func (c *Container) Close() error {
	if err := c.ledger.Close(); err != nil {
		return err
	}
	c.logger.Info("Container closed")
	return nil
}
