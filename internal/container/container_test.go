package container

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/fintrack/internal/config"
	"fjacquet/fintrack/internal/ledger"
	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/pdfparser"
	"fjacquet/fintrack/internal/sheets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(dbPath string) *config.Config {
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Database.Path = dbPath
	cfg.Parser.Year = 2025
	cfg.Sheets.RowLimit = 10000
	cfg.Sheets.LookbackRows = 1000
	cfg.Export.Delimiter = ","
	return cfg
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "in-memory ledger",
			config: testConfig(ledger.MemoryPath),
		},
		{
			name:   "file-backed ledger",
			config: testConfig(filepath.Join(t.TempDir(), "data", "fintrack.db")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container, err := NewContainer(context.Background(), tt.config, WithLogger(logging.NewMockLogger()))

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, container)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, container)
			defer func() { assert.NoError(t, container.Close()) }()

			// Verify all dependencies are created
			assert.NotNil(t, container.GetLogger())
			assert.Same(t, tt.config, container.GetConfig())
			assert.NotNil(t, container.GetLedger())
			assert.NotNil(t, container.GetSeedStore())
			assert.NotNil(t, container.GetCategorizer())
			assert.NotNil(t, container.GetPipeline())
			assert.NotNil(t, container.GetExporter())
			assert.Equal(t, 2025, container.GetParser().Year())
		})
	}
}

func TestNewContainer_LedgerUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0600))
	cfg := testConfig(filepath.Join(blocker, "fintrack.db"))

	_, err := NewContainer(context.Background(), cfg, WithLogger(logging.NewMockLogger()))
	require.Error(t, err)
}

func TestContainer_PipelineUsesInjectedPageSource(t *testing.T) {
	ctx := context.Background()
	pages := pdfparser.NewMockPDFExtractor([]string{strings.Join([]string{
		"Account Statement",
		"Branch transit number 00010",
		"Account number 87-40798",
		"Date Description Withdrawals ($) Deposits ($) Balance ($)",
		"Sep 3 SECOND CUP KING ST 5.25 892.93",
	}, "\n")}, nil)

	c, err := NewContainer(ctx, testConfig(ledger.MemoryPath),
		WithLogger(logging.NewMockLogger()), WithPageSource(pages))
	require.NoError(t, err)
	defer func() { _ = c.Close() }()

	seeds, err := c.GetSeedStore().LoadSeeds()
	require.NoError(t, err)
	_, err = c.GetCategorizer().InitializeDefaults(ctx, seeds)
	require.NoError(t, err)

	report, err := c.GetPipeline().IngestFile(ctx, "sept.pdf")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Inserted)
	assert.Equal(t, []string{"sept.pdf"}, pages.Calls)

	rows, err := c.GetLedger().ListTransactions(ctx, ledger.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2025-09-03", rows[0].Date)
	require.NotNil(t, rows[0].Category)
	assert.Equal(t, "Coffee", *rows[0].Category)
}

type nopSheets struct{ sheets.Service }

func TestContainer_GetSyncer(t *testing.T) {
	ctx := context.Background()

	t.Run("not configured", func(t *testing.T) {
		c, err := NewContainer(ctx, testConfig(ledger.MemoryPath), WithLogger(logging.NewMockLogger()))
		require.NoError(t, err)
		defer func() { _ = c.Close() }()

		_, err = c.GetSyncer(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not configured")
	})

	t.Run("missing credentials file", func(t *testing.T) {
		cfg := testConfig(ledger.MemoryPath)
		cfg.Sheets.CredentialsFile = filepath.Join(t.TempDir(), "missing.json")
		cfg.Sheets.SpreadsheetID = "sheet-id"
		c, err := NewContainer(ctx, cfg, WithLogger(logging.NewMockLogger()))
		require.NoError(t, err)
		defer func() { _ = c.Close() }()

		_, err = c.GetSyncer(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid google credentials")
	})

	t.Run("injected service", func(t *testing.T) {
		c, err := NewContainer(ctx, testConfig(ledger.MemoryPath),
			WithLogger(logging.NewMockLogger()), WithSheetsService(nopSheets{}))
		require.NoError(t, err)
		defer func() { _ = c.Close() }()

		s, err := c.GetSyncer(ctx)
		require.NoError(t, err)
		assert.NotNil(t, s)
	})
}

func TestDelimiterRune(t *testing.T) {
	assert.Equal(t, ',', delimiterRune(""))
	assert.Equal(t, ';', delimiterRune(";"))
	assert.Equal(t, '\t', delimiterRune("\t"))
}
