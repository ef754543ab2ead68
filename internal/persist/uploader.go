package persist

import (
	"context"
	"log"
	"time"

	"go-lead-sourcer/internal/models"
)

// Uploader writes candidates to a Remote. Store failures are logged and
// reported as skipped; they never stop the caller.
type Uploader struct {
	remote Remote
	now    func() time.Time
}

func NewUploader(remote Remote) *Uploader {
	return &Uploader{remote: remote, now: time.Now}
}

// WithClock fixes the date stamp source (tests)
func (u *Uploader) WithClock(now func() time.Time) *Uploader {
	u.now = now
	return u
}

func (u *Uploader) Remote() Remote {
	return u.remote
}

func (u *Uploader) today() string {
	return u.now().Format(models.DateLayout)
}

// UploadRealtime updates the row when the profile is stored already,
// appends it otherwise.
func (u *Uploader) UploadRealtime(ctx context.Context, c models.Candidate) models.Outcome {
	c.DateAdded = u.today()

	if u.remote.Contains(c.ProfileURL) {
		if err := u.remote.Update(ctx, c); err != nil {
			log.Printf("      ⚠️ %s update error: %v", u.remote.Name(), err)
			return models.OutcomeSkipped
		}
		return models.OutcomeUpdated
	}

	if err := u.remote.Append(ctx, []models.Candidate{c}); err != nil {
		log.Printf("      ⚠️ %s append error: %v", u.remote.Name(), err)
		return models.OutcomeSkipped
	}
	return models.OutcomeNew
}

// BatchResult counts the outcomes of UploadBatch
type BatchResult struct {
	New     int
	Updated int
	Skipped int
}

// UploadBatch updates known profiles one by one and appends all new ones
// in a single call. Duplicates within cs are appended once.
func (u *Uploader) UploadBatch(ctx context.Context, cs []models.Candidate) BatchResult {
	var res BatchResult
	today := u.today()

	var fresh []models.Candidate
	pending := make(map[string]bool)
	for _, c := range cs {
		c.DateAdded = today
		if u.remote.Contains(c.ProfileURL) {
			if err := u.remote.Update(ctx, c); err != nil {
				log.Printf("    ⚠️ Error updating %s: %v", c.ProfileURL, err)
				res.Skipped++
				continue
			}
			res.Updated++
			continue
		}
		if key := c.Key(); key != "" {
			if pending[key] {
				continue
			}
			pending[key] = true
		}
		fresh = append(fresh, c)
	}

	if len(fresh) > 0 {
		if err := u.remote.Append(ctx, fresh); err != nil {
			log.Printf("    ⚠️ Error appending %d candidates: %v", len(fresh), err)
			res.Skipped += len(fresh)
		} else {
			res.New = len(fresh)
		}
	}
	log.Printf("  📊 %s: %d new, %d updated, %d skipped", u.remote.Name(), res.New, res.Updated, res.Skipped)
	return res
}
