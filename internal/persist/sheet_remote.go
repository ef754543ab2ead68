package persist

import (
	"context"
	"fmt"

	"go-lead-sourcer/internal/dedup"
	"go-lead-sourcer/internal/models"
	"go-lead-sourcer/internal/sheets"
)

// fixed positions used when the header lacks a column
const (
	fallbackURLCol  = 2
	fallbackRoleCol = 5
	fallbackDateCol = 9
)

// SheetRemote stores candidates as rows of a worksheet
type SheetRemote struct {
	ws Worksheet

	urlCol, roleCol, dateCol, expCol int

	rows    *dedup.Index[int]
	nextRow int
}

func NewSheetRemote(ws Worksheet) *SheetRemote {
	return &SheetRemote{ws: ws, rows: dedup.NewIndex[int]()}
}

func (s *SheetRemote) Name() string {
	return "google sheet"
}

// Prepare resolves columns by header name and indexes the URL column
func (s *SheetRemote) Prepare(ctx context.Context) (int, error) {
	header, err := s.ws.HeaderRow(ctx)
	if err != nil {
		return 0, err
	}
	s.urlCol = sheets.ColumnIndex(header, models.ColURL, fallbackURLCol)
	s.roleCol = sheets.ColumnIndex(header, models.ColRole, fallbackRoleCol)
	s.dateCol = sheets.ColumnIndex(header, models.ColDateAdded, fallbackDateCol)
	s.expCol = sheets.ColumnContaining(header, 0, "year", "exp")

	urls, err := s.ws.ReadColumn(ctx, s.urlCol)
	if err != nil {
		return 0, err
	}

	s.rows = dedup.NewIndex[int]()
	for i, u := range urls {
		if i == 0 {
			continue
		}
		s.rows.PutFirst(u, i+1)
	}
	s.nextRow = len(urls) + 1
	if s.nextRow < 2 {
		s.nextRow = 2
	}
	return s.rows.Len(), nil
}

func (s *SheetRemote) Contains(profileURL string) bool {
	_, ok := s.rows.Lookup(profileURL)
	return ok
}

func (s *SheetRemote) Append(ctx context.Context, cs []models.Candidate) error {
	if len(cs) == 0 {
		return nil
	}
	rows := make([][]string, len(cs))
	for i, c := range cs {
		rows[i] = c.Values()
	}

	first, err := s.ws.AppendRows(ctx, rows)
	if err != nil {
		return err
	}
	if first <= 0 {
		first = s.nextRow
	}
	for i, c := range cs {
		s.rows.Put(c.ProfileURL, first+i)
	}
	s.nextRow = first + len(cs)
	return nil
}

// Update writes the role, experience and date cells one call at a time
func (s *SheetRemote) Update(ctx context.Context, c models.Candidate) error {
	row, ok := s.rows.Lookup(c.ProfileURL)
	if !ok {
		return fmt.Errorf("%s is not in the sheet", c.ProfileURL)
	}

	role := c.Role
	if role == models.RoleUnknown {
		role = models.RoleSDR
	}
	if err := s.ws.UpdateCell(ctx, row, s.roleCol, role.String()); err != nil {
		return err
	}
	if c.Experience != "" && s.expCol > 0 {
		if err := s.ws.UpdateCell(ctx, row, s.expCol, c.Experience); err != nil {
			return err
		}
	}
	return s.ws.UpdateCell(ctx, row, s.dateCol, c.DateAdded)
}
