package csvstore

import (
	"go-lead-sourcer/internal/models"
)

// Summary is the aggregate view printed by the stats command
type Summary struct {
	Total          int
	ByRole         map[models.Role]int
	WithExperience int
	AddedToday     int
	WithEmail      int
}

// Summarize counts candidates. today is a models.DateLayout date.
func Summarize(cs []models.Candidate, today string) Summary {
	s := Summary{ByRole: make(map[models.Role]int)}
	for _, c := range cs {
		s.Total++
		role := c.Role
		if role == models.RoleUnknown {
			role = models.RoleSDR
		}
		s.ByRole[role]++
		if c.Experience != "" {
			s.WithExperience++
		}
		if c.DateAdded == today {
			s.AddedToday++
		}
		if c.Email != "" {
			s.WithEmail++
		}
	}
	return s
}
