// Package sheets pushes ledger rows to a Google spreadsheet, one sheet per
// account.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Value input options accepted by the values endpoints.
const (
	InputRaw         = "RAW"
	InputUserEntered = "USER_ENTERED"
)

// Service is the part of the spreadsheet API the syncer needs.
type Service interface {
	// SheetIDs maps every sheet title to its numeric sheet id.
	SheetIDs(ctx context.Context) (map[string]int64, error)
	AddSheet(ctx context.Context, title string) (int64, error)
	FormatHeader(ctx context.Context, sheetID int64) error
	GetValues(ctx context.Context, rng string) ([][]interface{}, error)
	UpdateValues(ctx context.Context, rng string, values [][]interface{}, inputOption string) error
	AppendValues(ctx context.Context, rng string, values [][]interface{}, inputOption string) error
}

// GoogleService implements Service on the Sheets v4 REST client.
type GoogleService struct {
	api           *gsheets.Service
	spreadsheetID string
}

// NewGoogleService authenticates with a service account credentials file.
func NewGoogleService(ctx context.Context, credentialsFile, spreadsheetID string) (*GoogleService, error) {
	if credentialsFile == "" || spreadsheetID == "" {
		return nil, fmt.Errorf("credentials file and spreadsheet id are required")
	}
	api, err := gsheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(gsheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &GoogleService{api: api, spreadsheetID: spreadsheetID}, nil
}

// SheetIDs maps every sheet title in the spreadsheet to its sheet id.
func (g *GoogleService) SheetIDs(ctx context.Context) (map[string]int64, error) {
	resp, err := g.api.Spreadsheets.Get(g.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet: %w", err)
	}
	ids := make(map[string]int64, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties == nil {
			continue
		}
		ids[sh.Properties.Title] = sh.Properties.SheetId
	}
	return ids, nil
}

func (g *GoogleService) AddSheet(ctx context.Context, title string) (int64, error) {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			AddSheet: &gsheets.AddSheetRequest{
				Properties: &gsheets.SheetProperties{Title: title},
			},
		}},
	}
	resp, err := g.api.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to add sheet %q: %w", title, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return 0, fmt.Errorf("add sheet %q: empty reply", title)
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// FormatHeader makes the first row bold on a light grey background.
func (g *GoogleService) FormatHeader(ctx context.Context, sheetID int64) error {
	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{{
			RepeatCell: &gsheets.RepeatCellRequest{
				Range: &gsheets.GridRange{
					SheetId:         sheetID,
					StartRowIndex:   0,
					EndRowIndex:     1,
					ForceSendFields: []string{"SheetId", "StartRowIndex"},
				},
				Cell: &gsheets.CellData{
					UserEnteredFormat: &gsheets.CellFormat{
						BackgroundColor: &gsheets.Color{Red: 0.9, Green: 0.9, Blue: 0.9},
						TextFormat:      &gsheets.TextFormat{Bold: true},
					},
				},
				Fields: "userEnteredFormat(backgroundColor,textFormat)",
			},
		}},
	}
	if _, err := g.api.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to format header: %w", err)
	}
	return nil
}

// GetValues reads the cells of an A1 range. Trailing empty rows are omitted
// by the API.
func (g *GoogleService) GetValues(ctx context.Context, rng string) ([][]interface{}, error) {
	resp, err := g.api.Spreadsheets.Values.Get(g.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", rng, err)
	}
	return resp.Values, nil
}

// UpdateValues overwrites an A1 range.
func (g *GoogleService) UpdateValues(ctx context.Context, rng string, values [][]interface{}, inputOption string) error {
	_, err := g.api.Spreadsheets.Values.Update(g.spreadsheetID, rng, &gsheets.ValueRange{Values: values}).
		ValueInputOption(inputOption).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", rng, err)
	}
	return nil
}

// AppendValues adds rows after the last non-empty row of the range.
func (g *GoogleService) AppendValues(ctx context.Context, rng string, values [][]interface{}, inputOption string) error {
	_, err := g.api.Spreadsheets.Values.Append(g.spreadsheetID, rng, &gsheets.ValueRange{Values: values}).
		ValueInputOption(inputOption).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", rng, err)
	}
	return nil
}

// A1 builds an A1-notation range on a quoted sheet title.
func A1(sheet, cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(sheet, "'", "''"), cells)
}
