package persist

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"go-lead-sourcer/internal/csvstore"
	"go-lead-sourcer/internal/filter"
	"go-lead-sourcer/internal/models"
	"go-lead-sourcer/internal/pacer"
	"go-lead-sourcer/internal/sheets"
)

const (
	fallbackHeadlineCol   = 3
	fallbackExperienceCol = 8
)

// BackfillReport summarizes one experience backfill
type BackfillReport struct {
	Rows    int
	Filled  int // cells written
	Kept    int // already had a value
	Unknown int // no rule matched
	Failed  int
}

// Backfiller fills empty years-of-experience cells from headlines
type Backfiller struct {
	now        func() time.Time
	sleep      pacer.SleepFunc
	pauseEvery int
	pause      time.Duration
}

func NewBackfiller() *Backfiller {
	return &Backfiller{
		now:        time.Now,
		sleep:      pacer.Sleep,
		pauseEvery: 10,
		pause:      10 * time.Second,
	}
}

func (b *Backfiller) WithClock(now func() time.Time) *Backfiller {
	b.now = now
	return b
}

func (b *Backfiller) WithSleep(fn pacer.SleepFunc) *Backfiller {
	b.sleep = fn
	return b
}

// Sheet estimates every empty experience cell and writes them in one batch.
// If the batch is refused it falls back to single-cell writes, pausing
// after every pauseEvery writes.
func (b *Backfiller) Sheet(ctx context.Context, ws Worksheet) (BackfillReport, error) {
	var rep BackfillReport

	all, err := ws.ReadAll(ctx)
	if err != nil {
		return rep, err
	}
	if len(all) == 0 {
		return rep, nil
	}
	header := all[0]
	headlineCol := sheets.ColumnIndex(header, models.ColHeadline, fallbackHeadlineCol)
	expCol := sheets.ColumnContaining(header, fallbackExperienceCol, "year", "exp")
	log.Printf("📍 Years of Experience column: %s", sheets.ColumnLetter(expCol))

	now := b.now()
	var cells []sheets.Cell
	for i, row := range all[1:] {
		rep.Rows++
		if strings.TrimSpace(cell(row, expCol)) != "" {
			rep.Kept++
			continue
		}
		band := filter.EstimateExperience(cell(row, headlineCol), now)
		if band == "" {
			rep.Unknown++
			continue
		}
		cells = append(cells, sheets.Cell{Row: i + 2, Col: expCol, Value: band})
		if len(cells) <= 10 {
			log.Printf("  Row %d: %s → %s yrs", i+2, truncate(cell(row, 1), 20), band)
		}
	}
	if len(cells) > 10 {
		log.Printf("  ... and %d more", len(cells)-10)
	}
	if len(cells) == 0 {
		log.Println("✅ No updates needed!")
		return rep, nil
	}

	log.Printf("🔄 Updating %d cells using batch update...", len(cells))
	err = ws.UpdateCells(ctx, cells)
	if err == nil {
		rep.Filled = len(cells)
		return rep, nil
	}

	log.Printf("   ❌ Batch update error: %v", err)
	log.Println("   Falling back to individual updates with rate limiting...")
	for i, c := range cells {
		if err := ws.UpdateCell(ctx, c.Row, c.Col, c.Value); err != nil {
			log.Printf("   ❌ Error updating row %d: %v", c.Row, err)
			rep.Failed++
		} else {
			rep.Filled++
		}
		if b.pauseEvery > 0 && (i+1)%b.pauseEvery == 0 && i+1 < len(cells) {
			log.Printf("   ✓ Updated %d/%d - pausing...", i+1, len(cells))
			if err := b.sleep(ctx, b.pause); err != nil {
				return rep, err
			}
		}
	}
	return rep, nil
}

// Local applies the same estimate to the CSV backup and rewrites it when
// anything changed.
func (b *Backfiller) Local(path string) (BackfillReport, error) {
	var rep BackfillReport

	cs, err := csvstore.Load(path)
	if err != nil {
		return rep, err
	}
	now := b.now()
	for i := range cs {
		rep.Rows++
		if strings.TrimSpace(cs[i].Experience) != "" {
			rep.Kept++
			continue
		}
		band := filter.EstimateExperience(cs[i].Headline, now)
		if band == "" {
			rep.Unknown++
			continue
		}
		cs[i].Experience = band
		rep.Filled++
	}
	if rep.Filled == 0 {
		return rep, nil
	}
	if err := csvstore.Save(path, cs); err != nil {
		return rep, fmt.Errorf("save backup: %w", err)
	}
	return rep, nil
}

// cell returns the 1-based column of row, "" when the row is short
func cell(row []string, col int) string {
	if col < 1 || col > len(row) {
		return ""
	}
	return row[col-1]
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
