// Local CSV backup of the candidates table.
// The file always carries models.Header; rows are keyed by header name.

package csvstore

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go-lead-sourcer/internal/filter"
	"go-lead-sourcer/internal/models"
)

const bom = "\ufeff"

// ReadRows returns every data row keyed by header name.
// A missing file is no data, not an error.
func ReadRows(path string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	var rows []map[string]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("read %s: %w", path, err)
		}
		if isBlank(record) {
			continue
		}
		rows = append(rows, models.RowMap(header, record))
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Load reads the backup as candidates. Rows saved without a role are
// labelled again from their headline.
func Load(path string) ([]models.Candidate, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return nil, err
	}
	out := make([]models.Candidate, 0, len(rows))
	for _, row := range rows {
		c := models.FromRow(row)
		if c.Role == models.RoleUnknown {
			c.Role = filter.DetermineRoleFit(c.Headline, c.SourceQuery)
		}
		out = append(out, c)
	}
	if len(out) > 0 {
		log.Printf("📋 Loaded %d existing candidates from %s", len(out), path)
	}
	return out, nil
}

// Save overwrites path with the header row and one row per candidate.
func Save(path string, cs []models.Candidate) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(models.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, c := range cs {
		if err := w.Write(c.Values()); err != nil {
			return fmt.Errorf("write row for %s: %w", c.ProfileURL, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	// write-then-rename so an interrupted run never truncates the backup
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	log.Printf("💾 Saved %d candidates to %s", len(cs), path)
	return nil
}

// Recent returns the last n rows in file order. The file must exist.
func Recent(path string, n int) ([]models.Candidate, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no candidates file: %w", err)
	}
	cs, err := Load(path)
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(cs) > n {
		cs = cs[len(cs)-n:]
	}
	return cs, nil
}
