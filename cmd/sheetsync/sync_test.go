package sheetsync_test

import (
	"context"
	"strings"
	"testing"

	"fjacquet/fintrack/cmd/cmdtest"
	"fjacquet/fintrack/cmd/parse"
	"fjacquet/fintrack/cmd/sheetsync"
	"fjacquet/fintrack/internal/container"
	"fjacquet/fintrack/internal/pdfparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	cmdtest.Register(sheetsync.Cmd, parse.Cmd)
}

// recordingSheets accepts every call and keeps appended rows per range.
type recordingSheets struct {
	appended map[string]int
}

func (r *recordingSheets) SheetIDs(context.Context) (map[string]int64, error) {
	return map[string]int64{}, nil
}
func (r *recordingSheets) AddSheet(context.Context, string) (int64, error) { return 1, nil }
func (r *recordingSheets) FormatHeader(context.Context, int64) error       { return nil }
func (r *recordingSheets) GetValues(context.Context, string) ([][]interface{}, error) {
	return nil, nil
}
func (r *recordingSheets) UpdateValues(context.Context, string, [][]interface{}, string) error {
	return nil
}
func (r *recordingSheets) AppendValues(_ context.Context, rng string, values [][]interface{}, _ string) error {
	r.appended[rng] += len(values)
	return nil
}

func TestSyncCommand_NotConfigured(t *testing.T) {
	db := cmdtest.Env(t)

	_, err := cmdtest.Run(t, "--db", db, "sync")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_CREDENTIALS_FILE")
}

func TestSyncCommand_AppendsPerAccount(t *testing.T) {
	pages := []string{strings.Join([]string{
		"Account Statement",
		"Branch transit number 00010",
		"Account number 87-40798",
		"Date Description Withdrawals ($) Deposits ($) Balance ($)",
		"Sep 2 VISA DEBIT RETAIL PURCHASE 37.67 898.18",
		"Sep 3 STARBUCKS COFFEE 5.25 892.93",
	}, "\n")}
	svc := &recordingSheets{appended: map[string]int{}}
	db := cmdtest.Env(t,
		container.WithPageSource(pdfparser.NewMockPDFExtractor(pages, nil)),
		container.WithSheetsService(svc))

	_, err := cmdtest.Run(t, "--db", db, "--year", "2025", "parse", "sept.pdf")
	require.NoError(t, err)

	out, err := cmdtest.Run(t, "--db", db, "sync")
	require.NoError(t, err)
	assert.Contains(t, out, "Appended 2 transactions to 'Account_87-40798'")
	assert.Contains(t, out, "Sync complete")
	assert.Equal(t, 2, svc.appended["'Account_87-40798'!A:F"])
}
