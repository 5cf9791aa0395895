package google

import (
	"context"
	"fmt"
	"os"

	sheets "google.golang.org/api/sheets/v4"

	"canvassync/internal"
)

// valuesAPI is the slice of the Sheets API this store consumes.
type valuesAPI interface {
	Get(ctx context.Context, spreadsheetID, readRange string) (*sheets.ValueRange, error)
	Clear(ctx context.Context, spreadsheetID, clearRange string) error
	Update(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) error
	AddSheet(ctx context.Context, spreadsheetID, title string) error
}

// Sheets reads and writes tabs of one spreadsheet.
type Sheets struct {
	api           valuesAPI
	spreadsheetID string

	Verbose bool
}

// ReplaceAssignments rewrites the tab from scratch: ensure it exists, clear
// it, then write the header and one row per assignment in input order. Rows
// from earlier runs never survive, this is a full replace, not a merge.
func (s *Sheets) ReplaceAssignments(ctx context.Context, tab string, assignments []internal.Assignment) error {
	if err := s.ensureTab(ctx, tab); err != nil {
		return fmt.Errorf("google: ensuring tab %s: %w", tab, err)
	}
	if err := s.api.Clear(ctx, s.spreadsheetID, tab+"!A:Z"); err != nil {
		return fmt.Errorf("google: clearing tab %s: %w", tab, err)
	}

	values := make([][]interface{}, 0, len(assignments)+1)
	header := make([]interface{}, len(internal.SheetHeader))
	for i, h := range internal.SheetHeader {
		header[i] = h
	}
	values = append(values, header)
	for _, a := range assignments {
		values = append(values, a.SheetRow())
	}

	if err := s.api.Update(ctx, s.spreadsheetID, tab+"!A1", values); err != nil {
		return fmt.Errorf("google: writing tab %s: %w", tab, err)
	}
	s.logf(tab, "%d row(s) written", len(assignments))
	return nil
}

// ensureTab creates the tab when missing. A concurrent or earlier creation
// surfaces as "already exists", which counts as success.
func (s *Sheets) ensureTab(ctx context.Context, tab string) error {
	err := s.api.AddSheet(ctx, s.spreadsheetID, tab)
	if err != nil && !isAlreadyExists(err) {
		return err
	}
	return nil
}

// ManualEvents reads the operator-maintained tab. A spreadsheet without the
// tab yields no events rather than an error, manual events are optional.
func (s *Sheets) ManualEvents(ctx context.Context, tab string) ([]internal.ManualEvent, error) {
	res, err := s.api.Get(ctx, s.spreadsheetID, tab+"!A:Z")
	if err != nil {
		if isMissingRange(err) {
			s.logf(tab, "tab not found, skipping manual events")
			return nil, nil
		}
		return nil, fmt.Errorf("google: reading tab %s: %w", tab, err)
	}

	rows := make([][]string, len(res.Values))
	for i, cells := range res.Values {
		row := make([]string, len(cells))
		for j, cell := range cells {
			row[j] = fmt.Sprint(cell)
		}
		rows[i] = row
	}

	events := internal.ParseManualRows(rows)
	s.logf(tab, "%d manual event(s) read", len(events))
	return events, nil
}

func (s *Sheets) logf(tab, format string, a ...any) {
	if s.Verbose {
		internal.Logf(os.Stdout, "sheets:", tab, format, a...)
	}
}

// sheetsService adapts *sheets.Service to valuesAPI.
type sheetsService struct {
	svc *sheets.Service
}

func (g sheetsService) Get(ctx context.Context, spreadsheetID, readRange string) (*sheets.ValueRange, error) {
	return g.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
}

func (g sheetsService) Clear(ctx context.Context, spreadsheetID, clearRange string) error {
	_, err := g.svc.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

func (g sheetsService) Update(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) error {
	vr := &sheets.ValueRange{Values: values}
	_, err := g.svc.Spreadsheets.Values.Update(spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

func (g sheetsService) AddSheet(ctx context.Context, spreadsheetID, title string) error {
	rq := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}
	_, err := g.svc.Spreadsheets.BatchUpdate(spreadsheetID, rq).Context(ctx).Do()
	return err
}
