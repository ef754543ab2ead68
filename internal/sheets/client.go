// Google Sheets worksheet access: read rows and columns, append rows,
// update cells, and find-or-create the tab with its header.

package sheets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var ErrNoSheetID = errors.New("no spreadsheet id configured")

// Cell is one 1-based cell write
type Cell struct {
	Row   int
	Col   int
	Value string
}

// Worksheet is one tab of a spreadsheet
type Worksheet struct {
	svc           *sheets.Service
	spreadsheetID string
	title         string
}

// NewService authenticates with a service-account JSON file
func NewService(ctx context.Context, credentialsFile string, opts ...option.ClientOption) (*sheets.Service, error) {
	opts = append([]option.ClientOption{
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	}, opts...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return svc, nil
}

func New(svc *sheets.Service, spreadsheetID, title string) *Worksheet {
	return &Worksheet{svc: svc, spreadsheetID: spreadsheetID, title: title}
}

func (w *Worksheet) Title() string {
	return w.title
}

// EnsureSheet finds the tab or creates it (1000 rows x len(header) columns),
// then makes sure row 1 is the header.
func (w *Worksheet) EnsureSheet(ctx context.Context, header []string) error {
	if w.spreadsheetID == "" {
		return ErrNoSheetID
	}
	ss, err := w.svc.Spreadsheets.Get(w.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to open spreadsheet: %w", err)
	}

	var sheetID int64 = -1
	for _, s := range ss.Sheets {
		if s.Properties != nil && s.Properties.Title == w.title {
			sheetID = s.Properties.SheetId
			break
		}
	}

	if sheetID < 0 {
		log.Printf("📋 Creating new worksheet: %s", w.title)
		_, err := w.svc.Spreadsheets.BatchUpdate(w.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title: w.title,
						GridProperties: &sheets.GridProperties{
							RowCount:    1000,
							ColumnCount: int64(len(header)),
						},
					},
				},
			}},
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to create worksheet %s: %w", w.title, err)
		}
		return w.writeRow(ctx, 1, header)
	}

	first, err := w.HeaderRow(ctx)
	if err != nil {
		return err
	}
	if len(first) > 0 && first[0] == header[0] {
		return nil
	}

	log.Printf("📋 Adding headers to worksheet %s", w.title)
	if len(first) > 0 {
		// push existing data down one row
		_, err := w.svc.Spreadsheets.BatchUpdate(w.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: []*sheets.Request{{
				InsertDimension: &sheets.InsertDimensionRequest{
					Range: &sheets.DimensionRange{
						SheetId:    sheetID,
						Dimension:  "ROWS",
						StartIndex: 0,
						EndIndex:   1,
					},
				},
			}},
		}).Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("failed to insert header row: %w", err)
		}
	}
	return w.writeRow(ctx, 1, header)
}

func (w *Worksheet) writeRow(ctx context.Context, row int, values []string) error {
	rng := fmt.Sprintf("%s!A%d:%s%d", w.quotedTitle(), row, ColumnLetter(len(values)), row)
	_, err := w.svc.Spreadsheets.Values.Update(w.spreadsheetID, rng, &sheets.ValueRange{
		Values: [][]interface{}{toInterfaces(values)},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to write row %d: %w", row, err)
	}
	return nil
}

// ReadAll returns every row of the tab, header included. Cells are strings.
func (w *Worksheet) ReadAll(ctx context.Context) ([][]string, error) {
	vr, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, w.quotedTitle()).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", w.title, err)
	}
	return toStrings(vr.Values), nil
}

// HeaderRow returns row 1
func (w *Worksheet) HeaderRow(ctx context.Context) ([]string, error) {
	vr, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, w.quotedTitle()+"!1:1").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	rows := toStrings(vr.Values)
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// ReadColumn returns the values of a 1-based column from row 1 down.
// Blank cells in the middle come back as "".
func (w *Worksheet) ReadColumn(ctx context.Context, col int) ([]string, error) {
	letter := ColumnLetter(col)
	vr, err := w.svc.Spreadsheets.Values.Get(w.spreadsheetID, fmt.Sprintf("%s!%s:%s", w.quotedTitle(), letter, letter)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read column %s: %w", letter, err)
	}
	rows := toStrings(vr.Values)
	out := make([]string, len(rows))
	for i, r := range rows {
		if len(r) > 0 {
			out[i] = r[0]
		}
	}
	return out, nil
}

// AppendRows adds rows after the last data row in one call and returns the
// 1-based row number the first one landed on.
func (w *Worksheet) AppendRows(ctx context.Context, rows [][]string) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	values := make([][]interface{}, len(rows))
	for i, r := range rows {
		values[i] = toInterfaces(r)
	}

	resp, err := w.svc.Spreadsheets.Values.Append(w.spreadsheetID, w.quotedTitle()+"!A1", &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to append %d rows: %w", len(rows), err)
	}
	if resp.Updates == nil {
		return 0, nil
	}
	return StartRow(resp.Updates.UpdatedRange), nil
}

// UpdateCell writes a single cell
func (w *Worksheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	_, err := w.svc.Spreadsheets.Values.Update(w.spreadsheetID, w.a1(row, col), &sheets.ValueRange{
		Values: [][]interface{}{{value}},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", w.a1(row, col), err)
	}
	return nil
}

// UpdateCells writes many cells in a single batch request
func (w *Worksheet) UpdateCells(ctx context.Context, cells []Cell) error {
	if len(cells) == 0 {
		return nil
	}
	data := make([]*sheets.ValueRange, len(cells))
	for i, c := range cells {
		data[i] = &sheets.ValueRange{
			Range:  w.a1(c.Row, c.Col),
			Values: [][]interface{}{{c.Value}},
		}
	}
	_, err := w.svc.Spreadsheets.Values.BatchUpdate(w.spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to batch update %d cells: %w", len(cells), err)
	}
	return nil
}

func (w *Worksheet) a1(row, col int) string {
	return fmt.Sprintf("%s!%s%d", w.quotedTitle(), ColumnLetter(col), row)
}

func (w *Worksheet) quotedTitle() string {
	return "'" + strings.ReplaceAll(w.title, "'", "''") + "'"
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func toStrings(values [][]interface{}) [][]string {
	out := make([][]string, len(values))
	for i, row := range values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			if v != nil {
				out[i][j] = fmt.Sprint(v)
			}
		}
	}
	return out
}
