// Sourcing loop: search -> parse -> screen -> classify -> upload,
// one query at a time, paced, with a CSV backup at the end.

package pipeline

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"go-lead-sourcer/internal/dedup"
	"go-lead-sourcer/internal/filter"
	"go-lead-sourcer/internal/models"
	"go-lead-sourcer/internal/pacer"
	"go-lead-sourcer/internal/parser"
	"go-lead-sourcer/internal/persist"
	"go-lead-sourcer/internal/queries"
	"go-lead-sourcer/internal/search"
)

const DefaultResultsPerQuery = 15

// Notifier receives the run summary, and the error of an aborted run
type Notifier interface {
	SendStatus(text string) error
	SendError(err error) error
}

type Sourcer struct {
	provider search.Provider
	pacer    *pacer.Pacer
	uploader *persist.Uploader
	notifier Notifier

	backupPath      string
	resultsPerQuery int
	now             func() time.Time
}

func NewSourcer(provider search.Provider, p *pacer.Pacer) *Sourcer {
	return &Sourcer{
		provider:        provider,
		pacer:           p,
		resultsPerQuery: DefaultResultsPerQuery,
		now:             time.Now,
	}
}

// WithUploader enables real-time upload; without it the run is local only
func (s *Sourcer) WithUploader(u *persist.Uploader) *Sourcer {
	s.uploader = u
	return s
}

func (s *Sourcer) WithNotifier(n Notifier) *Sourcer {
	s.notifier = n
	return s
}

// WithBackup sets the CSV merged at the end of the run ("" disables it)
func (s *Sourcer) WithBackup(path string) *Sourcer {
	s.backupPath = path
	return s
}

func (s *Sourcer) WithResultsPerQuery(n int) *Sourcer {
	if n > 0 {
		s.resultsPerQuery = n
	}
	return s
}

func (s *Sourcer) WithClock(now func() time.Time) *Sourcer {
	s.now = now
	return s
}

// Run executes qs in order and stops early once limit candidates were
// accepted (0 means no limit). Search and upload failures never abort the
// run; only a cancelled ctx does, and the backup is still written then.
func (s *Sourcer) Run(ctx context.Context, qs []queries.Query, limit int) (*Stats, error) {
	stats := NewStats()
	seen := dedup.NewSeen()
	today := s.now().Format(models.DateLayout)

	var runErr error
	for i, q := range qs {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		stats.Queries++
		log.Printf("🔍 [%d/%d] %s search: %s", i+1, len(qs), q.Role, preview(q.Text, 60))

		hits, err := s.provider.Search(ctx, q.Text, s.resultsPerQuery)
		if err != nil {
			if errors.Is(err, search.ErrRateLimited) {
				stats.RateLimited++
			}
			log.Printf("   ❌ %s error: %v", s.provider.Name(), err)
			hits = nil
		}
		log.Printf("   Found %d results", len(hits))

		for _, hit := range hits {
			if !parser.IsProfileURL(hit.URL) {
				continue
			}
			c := parser.Parse(hit, q.Text)
			if !seen.Add(c.ProfileURL) {
				continue
			}
			stats.Found++

			if v := filter.Screen(c, q.Role); v != filter.Accepted {
				stats.Filtered[v]++
				continue
			}

			c.Role = filter.DetermineRoleFit(c.Headline, q.Text)
			c.Experience = filter.EstimateExperience(c.Headline, s.now())
			c.DateAdded = today
			stats.accept(c)

			if s.uploader != nil {
				out := s.uploader.UploadRealtime(ctx, c)
				stats.record(out)
				log.Printf("      %s %s %s [%s] → %s", outcomeIcon(out), roleIcon(c.Role), preview(nameOr(c.FullName), 30), c.Role, out)
			} else {
				log.Printf("      %s %s [%s]", roleIcon(c.Role), preview(nameOr(c.FullName), 30), c.Role)
			}

			if limit > 0 && len(stats.Candidates) >= limit {
				break
			}
		}

		if limit > 0 && len(stats.Candidates) >= limit {
			log.Printf("🎯 Reached %d candidates, stopping", limit)
			break
		}
		if err := s.pacer.Wait(ctx, i+1, len(qs)); err != nil {
			runErr = err
			break
		}
	}

	if s.backupPath != "" && len(stats.Candidates) > 0 {
		n, err := persist.SaveBackup(s.backupPath, stats.Candidates)
		if err != nil {
			log.Printf("⚠️ Failed to save local backup: %v", err)
		} else {
			stats.BackupRows = n
			log.Printf("💾 Saved %d candidates to %s", n, s.backupPath)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.SendStatus(stats.Summary(s.Uploading())); err != nil {
			log.Printf("⚠️ Failed to send status: %v", err)
		}
		if runErr != nil {
			if err := s.notifier.SendError(runErr); err != nil {
				log.Printf("⚠️ Failed to send error: %v", err)
			}
		}
	}
	return stats, runErr
}

func (s *Sourcer) Provider() search.Provider {
	return s.provider
}

// Uploading reports whether accepted candidates go to a remote store
func (s *Sourcer) Uploading() bool {
	return s.uploader != nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

func nameOr(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Unknown"
	}
	return name
}

func roleIcon(r models.Role) string {
	switch r {
	case models.RoleAE:
		return "🎯"
	case models.RoleSDR:
		return "📞"
	default:
		return "🔄"
	}
}

func outcomeIcon(o models.Outcome) string {
	switch o {
	case models.OutcomeNew:
		return "✨"
	case models.OutcomeUpdated:
		return "🔄"
	default:
		return "⏭️"
	}
}
