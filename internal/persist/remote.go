// Merge/persist adapter: real-time and bulk uploads to a remote store,
// the local CSV backup, and the experience backfill.

package persist

import (
	"context"

	"go-lead-sourcer/internal/models"
	"go-lead-sourcer/internal/sheets"
)

// Remote is a keyed candidate store (a Google Sheet tab, a Postgres table).
// Rows are identified by normalized profile URL.
type Remote interface {
	Name() string

	// Prepare loads the keys already stored and returns how many there are
	Prepare(ctx context.Context) (int, error)

	Contains(profileURL string) bool

	// Append stores new candidates, in one call when the store allows it
	Append(ctx context.Context, cs []models.Candidate) error

	// Update refreshes role, experience (when known) and the date stamp
	Update(ctx context.Context, c models.Candidate) error
}

// Worksheet is the slice of the sheets client the adapter needs
type Worksheet interface {
	HeaderRow(ctx context.Context) ([]string, error)
	ReadAll(ctx context.Context) ([][]string, error)
	ReadColumn(ctx context.Context, col int) ([]string, error)
	AppendRows(ctx context.Context, rows [][]string) (int, error)
	UpdateCell(ctx context.Context, row, col int, value string) error
	UpdateCells(ctx context.Context, cells []sheets.Cell) error
}

var _ Worksheet = (*sheets.Worksheet)(nil)
