// Deduplication by normalized profile URL.
// Two policies live here and are used at different stages:
// drop-duplicate (Unique, Merge, Seen) and update-in-place (Index).

package dedup

import (
	"go-lead-sourcer/internal/models"
)

// Unique keeps the first record for every key, in input order.
// Records without a URL have no identity and are all kept.
func Unique(cs []models.Candidate) []models.Candidate {
	seen := make(map[string]struct{}, len(cs))
	out := make([]models.Candidate, 0, len(cs))
	for _, c := range cs {
		key := c.Key()
		if key != "" {
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		out = append(out, c)
	}
	return out
}

// Merge folds fresh records into previously persisted ones.
// The first sighting owns the row position and identity (URL, name, headline,
// hand-edited columns). Later sightings refresh role, experience and date
// when they carry a value, and fill identity fields that were blank.
func Merge(existing, fresh []models.Candidate) []models.Candidate {
	all := make([]models.Candidate, 0, len(existing)+len(fresh))
	all = append(all, existing...)
	all = append(all, fresh...)

	pos := make(map[string]int, len(all))
	out := make([]models.Candidate, 0, len(all))
	for _, c := range all {
		key := c.Key()
		if key == "" {
			out = append(out, c)
			continue
		}
		i, dup := pos[key]
		if !dup {
			pos[key] = len(out)
			out = append(out, c)
			continue
		}
		out[i] = refresh(out[i], c)
	}
	return out
}

func refresh(first, later models.Candidate) models.Candidate {
	if later.Role != models.RoleUnknown {
		first.Role = later.Role
	}
	if later.Experience != "" {
		first.Experience = later.Experience
	}
	if later.DateAdded != "" {
		first.DateAdded = later.DateAdded
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&first.FullName, later.FullName)
	fill(&first.Headline, later.Headline)
	fill(&first.Snippet, later.Snippet)
	fill(&first.SourceQuery, later.SourceQuery)
	fill(&first.Email, later.Email)
	fill(&first.Phone, later.Phone)
	fill(&first.Notes, later.Notes)
	fill(&first.Status, later.Status)
	fill(&first.AIDraft, later.AIDraft)
	return first
}
