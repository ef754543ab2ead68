package persist

import (
	"context"
	"testing"
	"time"

	"go-lead-sourcer/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = func() time.Time { return time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC) }

func existingRow(name, url, role, date string) []string {
	c := models.Candidate{FullName: name, ProfileURL: url, Role: models.ParseRole(role), DateAdded: date, Notes: "keep me"}
	return c.Values()
}

func newUploader(t *testing.T, ws *fakeSheet) *Uploader {
	t.Helper()
	remote := NewSheetRemote(ws)
	n, err := remote.Prepare(context.Background())
	require.NoError(t, err)
	require.Equal(t, len(ws.rows)-1, n)
	return NewUploader(remote).WithClock(fixedNow)
}

func TestUploadRealtimeNewAndUpdated(t *testing.T) {
	ws := newFakeSheet(existingRow("Jane Doe", "https://linkedin.com/in/jane-doe", "SDR", "2026-01-01"))
	up := newUploader(t, ws)
	ctx := context.Background()

	// the www. host is a different key
	out := up.UploadRealtime(ctx, models.Candidate{
		FullName: "Jane D", ProfileURL: "https://www.LinkedIn.com/in/jane-doe/", Role: models.RoleAE, Experience: "2-4",
	})
	assert.Equal(t, models.OutcomeNew, out)

	// same profile, different case and a trailing slash

	out = up.UploadRealtime(ctx, models.Candidate{
		FullName: "Jane D", ProfileURL: "https://linkedin.com/in/Jane-Doe/", Role: models.RoleAE, Experience: "2-4",
	})
	assert.Equal(t, models.OutcomeUpdated, out)
	assert.Equal(t, "Jane Doe", ws.get(2, 1), "identity is kept")
	assert.Equal(t, "AE", ws.get(2, 5))
	assert.Equal(t, "2-4", ws.get(2, 4))
	assert.Equal(t, "2026-03-01", ws.get(2, 9))
	assert.Equal(t, "keep me", ws.get(2, 6))

	// the appended row is tracked, so a second sighting updates it
	out = up.UploadRealtime(ctx, models.Candidate{ProfileURL: "https://www.linkedin.com/in/jane-doe", Role: models.RoleSDR})
	assert.Equal(t, models.OutcomeUpdated, out)
	assert.Equal(t, "SDR", ws.get(3, 5))
	assert.Len(t, ws.rows, 3)
}

func TestUploadRealtimeFailureIsSkipped(t *testing.T) {
	ws := newFakeSheet(existingRow("Jane", "https://linkedin.com/in/jane", "SDR", ""))
	up := newUploader(t, ws)
	ctx := context.Background()

	ws.failAppend = true
	assert.Equal(t, models.OutcomeSkipped, up.UploadRealtime(ctx, models.Candidate{ProfileURL: "https://linkedin.com/in/bob"}))

	ws.failCellRows[2] = true
	assert.Equal(t, models.OutcomeSkipped, up.UploadRealtime(ctx, models.Candidate{ProfileURL: "https://linkedin.com/in/jane"}))

	// the store recovers, the next record goes through
	ws.failAppend = false
	assert.Equal(t, models.OutcomeNew, up.UploadRealtime(ctx, models.Candidate{ProfileURL: "https://linkedin.com/in/carol"}))
}

func TestUploadRealtimeWithoutAppendRange(t *testing.T) {
	ws := newFakeSheet(existingRow("Jane", "https://linkedin.com/in/jane", "SDR", ""))
	ws.reportNoAppends = true
	up := newUploader(t, ws)
	ctx := context.Background()

	assert.Equal(t, models.OutcomeNew, up.UploadRealtime(ctx, models.Candidate{ProfileURL: "https://linkedin.com/in/bob", Role: models.RoleSDR}))
	assert.Equal(t, models.OutcomeUpdated, up.UploadRealtime(ctx, models.Candidate{ProfileURL: "https://linkedin.com/in/bob", Role: models.RoleAE}))
	assert.Equal(t, "AE", ws.get(3, 5))
}

func TestUploadBatch(t *testing.T) {
	ws := newFakeSheet(
		existingRow("Jane", "https://linkedin.com/in/jane", "SDR", "2026-01-01"),
		existingRow("Bob", "https://linkedin.com/in/bob", "AE", "2026-01-01"),
	)
	up := newUploader(t, ws)

	res := up.UploadBatch(context.Background(), []models.Candidate{
		{ProfileURL: "https://linkedin.com/in/jane", Role: models.RoleEither},
		{FullName: "Carol", ProfileURL: "https://linkedin.com/in/carol", Role: models.RoleSDR},
		{FullName: "Dan", ProfileURL: "https://linkedin.com/in/dan", Role: models.RoleAE},
		{FullName: "Carol again", ProfileURL: "https://linkedin.com/in/carol/", Role: models.RoleAE},
	})

	assert.Equal(t, BatchResult{New: 2, Updated: 1}, res)
	assert.Equal(t, 1, ws.appendCalls, "new rows go out in one call")
	assert.Equal(t, "SDR/AE", ws.get(2, 5))
	assert.Equal(t, "Carol", ws.get(4, 1))
	assert.Equal(t, "2026-03-01", ws.get(5, 9))
}

func TestUploadBatchAppendFailure(t *testing.T) {
	ws := newFakeSheet()
	ws.failAppend = true
	up := newUploader(t, ws)

	res := up.UploadBatch(context.Background(), []models.Candidate{
		{ProfileURL: "https://linkedin.com/in/a"},
		{ProfileURL: "https://linkedin.com/in/b"},
	})
	assert.Equal(t, BatchResult{Skipped: 2}, res)
}
