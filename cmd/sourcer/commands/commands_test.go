package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-lead-sourcer/internal/csvstore"
	"go-lead-sourcer/internal/models"
)

// execute runs the root command with a config that points at dir
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CANDIDATES_CSV", "")
	t.Setenv("SEARCH_PROVIDER", "")

	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "candidates_csv: " + filepath.Join(dir, "candidates.csv") + "\nremote: none\nsearch_provider: duckduckgo\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(append(args, "--config", cfgPath))
	err := rootCmd.Execute()
	return buf.String(), err
}

func seedCSV(t *testing.T, dir string) {
	t.Helper()
	today := time.Now().Format(models.DateLayout)
	require.NoError(t, csvstore.Save(filepath.Join(dir, "candidates.csv"), []models.Candidate{
		{FullName: "Jane Doe", ProfileURL: "https://linkedin.com/in/jane", Headline: "Marketing Intern at Qualtrics", Role: models.RoleAE, Experience: "<1", DateAdded: today},
		{FullName: "Bartholomew Fitzgerald-Smithson", ProfileURL: "https://linkedin.com/in/bart", Headline: "Student Athlete at BYU, Class of 2025, NCAA Division I", Role: models.RoleSDR},
	}))
}

func TestDryRun(t *testing.T) {
	out, err := execute(t, t.TempDir(), "dry-run", "--type", "ae")
	require.NoError(t, err)

	assert.Contains(t, out, "19 ae queries (duckduckgo), 3 batches of 8")
	assert.Contains(t, out, "📦 Batch 3")
	assert.Contains(t, out, "[AE] linkedin.com/in Account Executive Qualtrics")
	assert.NotContains(t, out, "site:")
}

func TestDryRunBadType(t *testing.T) {
	_, err := execute(t, t.TempDir(), "dry-run", "--type", "cfo")
	assert.Error(t, err)
}

func TestRecent(t *testing.T) {
	dir := t.TempDir()
	seedCSV(t, dir)

	out, err := execute(t, dir, "recent", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "📋 1 Most Recent Candidates")
	assert.Contains(t, out, "1. Bartholomew Fitzgerald-Sm [SDR]")
	assert.Contains(t, out, "   Student Athlete at BYU, Class of 2025, N...")
	assert.NotContains(t, out, "Jane Doe")
}

func TestRecentMissingFile(t *testing.T) {
	_, err := execute(t, t.TempDir(), "recent")
	assert.Error(t, err)
}

func TestStats(t *testing.T) {
	dir := t.TempDir()
	seedCSV(t, dir)

	out, err := execute(t, dir, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total candidates: 2")
	assert.Contains(t, out, "📞 SDR: 1")
	assert.Contains(t, out, "🎯 AE:  1")
	assert.Contains(t, out, "Added today: 1")
	assert.Contains(t, out, "Last added: ")
}

func TestCountArg(t *testing.T) {
	n, err := countArg(nil, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, n)

	n, err = countArg([]string{"3"}, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = countArg([]string{"-1"}, 10)
	assert.Error(t, err)
	_, err = countArg([]string{"many"}, 10)
	assert.Error(t, err)
}

func TestClip(t *testing.T) {
	assert.Equal(t, "José", clip("José García", 4))
	assert.Equal(t, "short", clip("short", 40))
	assert.True(t, strings.HasPrefix(clip(strings.Repeat("x", 50), 40), strings.Repeat("x", 40)))
}
