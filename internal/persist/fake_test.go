package persist

import (
	"context"
	"errors"

	"go-lead-sourcer/internal/models"
	"go-lead-sourcer/internal/sheets"
)

var errFake = errors.New("quota exceeded")

// fakeSheet is an in-memory worksheet; rows[0] is the header
type fakeSheet struct {
	rows [][]string

	failAppend      bool
	failBatch       bool
	failCellRows    map[int]bool
	cellWrites      int
	batchWrites     int
	appendCalls     int
	reportNoAppends bool
}

func newFakeSheet(rows ...[]string) *fakeSheet {
	all := [][]string{append([]string(nil), models.Header...)}
	all = append(all, rows...)
	return &fakeSheet{rows: all, failCellRows: map[int]bool{}}
}

func (f *fakeSheet) HeaderRow(ctx context.Context) ([]string, error) {
	if len(f.rows) == 0 {
		return nil, nil
	}
	return f.rows[0], nil
}

func (f *fakeSheet) ReadAll(ctx context.Context) ([][]string, error) {
	return f.rows, nil
}

func (f *fakeSheet) ReadColumn(ctx context.Context, col int) ([]string, error) {
	out := make([]string, len(f.rows))
	for i, r := range f.rows {
		out[i] = cell(r, col)
	}
	return out, nil
}

func (f *fakeSheet) AppendRows(ctx context.Context, rows [][]string) (int, error) {
	f.appendCalls++
	if f.failAppend {
		return 0, errFake
	}
	first := len(f.rows) + 1
	f.rows = append(f.rows, rows...)
	if f.reportNoAppends {
		return 0, nil
	}
	return first, nil
}

func (f *fakeSheet) UpdateCell(ctx context.Context, row, col int, value string) error {
	if f.failCellRows[row] {
		return errFake
	}
	f.cellWrites++
	f.set(row, col, value)
	return nil
}

func (f *fakeSheet) UpdateCells(ctx context.Context, cells []sheets.Cell) error {
	if f.failBatch {
		return errFake
	}
	f.batchWrites++
	for _, c := range cells {
		f.set(c.Row, c.Col, c.Value)
	}
	return nil
}

func (f *fakeSheet) set(row, col int, value string) {
	for len(f.rows) < row {
		f.rows = append(f.rows, nil)
	}
	r := f.rows[row-1]
	for len(r) < col {
		r = append(r, "")
	}
	r[col-1] = value
	f.rows[row-1] = r
}

func (f *fakeSheet) get(row, col int) string {
	if row < 1 || row > len(f.rows) {
		return ""
	}
	return cell(f.rows[row-1], col)
}
