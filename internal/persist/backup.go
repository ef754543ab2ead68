package persist

import (
	"fmt"

	"go-lead-sourcer/internal/csvstore"
	"go-lead-sourcer/internal/dedup"
	"go-lead-sourcer/internal/models"
)

// SaveBackup merges fresh candidates into the CSV at path and rewrites it.
// The result never holds two rows for the same profile.
func SaveBackup(path string, fresh []models.Candidate) (int, error) {
	existing, err := csvstore.Load(path)
	if err != nil {
		return 0, fmt.Errorf("load backup: %w", err)
	}
	merged := dedup.Merge(existing, fresh)
	if err := csvstore.Save(path, merged); err != nil {
		return 0, fmt.Errorf("save backup: %w", err)
	}
	return len(merged), nil
}
