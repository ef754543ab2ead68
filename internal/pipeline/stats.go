package pipeline

import (
	"fmt"
	"strings"

	"go-lead-sourcer/internal/filter"
	"go-lead-sourcer/internal/models"
)

// Stats tallies one sourcing run
type Stats struct {
	Queries     int
	RateLimited int
	Found       int // distinct profile hits examined

	Candidates []models.Candidate // accepted, in discovery order
	ByRole     map[models.Role]int
	Filtered   map[filter.Verdict]int

	New     int
	Updated int
	Skipped int

	BackupRows int
}

func NewStats() *Stats {
	return &Stats{
		ByRole:   make(map[models.Role]int),
		Filtered: make(map[filter.Verdict]int),
	}
}

func (s *Stats) accept(c models.Candidate) {
	s.Candidates = append(s.Candidates, c)
	s.ByRole[c.Role]++
}

func (s *Stats) record(o models.Outcome) {
	switch o {
	case models.OutcomeNew:
		s.New++
	case models.OutcomeUpdated:
		s.Updated++
	default:
		s.Skipped++
	}
}

// Summary renders the end-of-run report; remote adds the sheet counts
func (s *Stats) Summary(remote bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📈 SUMMARY (%d queries)\n", s.Queries)
	fmt.Fprintf(&b, "👥 Candidates found: %d\n", len(s.Candidates))
	fmt.Fprintf(&b, "   📞 SDR: %d\n", s.ByRole[models.RoleSDR])
	fmt.Fprintf(&b, "   🎯 AE:  %d\n", s.ByRole[models.RoleAE])
	fmt.Fprintf(&b, "   🔄 Both: %d\n", s.ByRole[models.RoleEither])
	fmt.Fprintf(&b, "   🚫 Filtered (too senior): %d\n", s.Filtered[filter.RejectedSenior])
	fmt.Fprintf(&b, "   🚫 Filtered (existing SDR/BDR): %d\n", s.Filtered[filter.RejectedExistingSDR])
	fmt.Fprintf(&b, "   🚫 Filtered (non-Utah): %d", s.Filtered[filter.RejectedUnaffiliated])
	if s.RateLimited > 0 {
		fmt.Fprintf(&b, "\n   ⚠️ Rate limited: %d queries", s.RateLimited)
	}
	if remote {
		fmt.Fprintf(&b, "\n📊 Sheet: ✨ %d new, 🔄 %d updated, ⏭️ %d skipped", s.New, s.Updated, s.Skipped)
	}
	return b.String()
}
