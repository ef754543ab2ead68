package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-lead-sourcer/internal/csvstore"
	"go-lead-sourcer/internal/dedup"
	"go-lead-sourcer/internal/filter"
	"go-lead-sourcer/internal/models"
	"go-lead-sourcer/internal/pacer"
	"go-lead-sourcer/internal/persist"
	"go-lead-sourcer/internal/queries"
	"go-lead-sourcer/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	results map[string][]search.Hit
	errs    map[string]error
	calls   []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Search(_ context.Context, query string, n int) ([]search.Hit, error) {
	f.calls = append(f.calls, query)
	if err := f.errs[query]; err != nil {
		return nil, err
	}
	return f.results[query], nil
}

// memRemote is a Remote backed by a map
type memRemote struct {
	keys    *dedup.Index[int]
	rows    []models.Candidate
	updates []models.Candidate
}

func newMemRemote(existing ...models.Candidate) *memRemote {
	m := &memRemote{keys: dedup.NewIndex[int]()}
	for _, c := range existing {
		m.rows = append(m.rows, c)
		m.keys.Put(c.ProfileURL, len(m.rows)-1)
	}
	return m
}

func (m *memRemote) Name() string                         { return "memory" }
func (m *memRemote) Prepare(context.Context) (int, error) { return m.keys.Len(), nil }
func (m *memRemote) Contains(u string) bool {
	_, ok := m.keys.Lookup(u)
	return ok
}

func (m *memRemote) Append(_ context.Context, cs []models.Candidate) error {
	for _, c := range cs {
		m.rows = append(m.rows, c)
		m.keys.Put(c.ProfileURL, len(m.rows)-1)
	}
	return nil
}

func (m *memRemote) Update(_ context.Context, c models.Candidate) error {
	m.updates = append(m.updates, c)
	return nil
}

type fakeNotifier struct {
	msgs []string
	errs []error
}

func (f *fakeNotifier) SendStatus(text string) error {
	f.msgs = append(f.msgs, text)
	return nil
}

func (f *fakeNotifier) SendError(err error) error {
	f.errs = append(f.errs, err)
	return nil
}

var fixedNow = func() time.Time { return time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC) }

const (
	sdrQuery = `site:linkedin.com/in "Marketing Intern" Utah 2024`
	aeQuery  = `site:linkedin.com/in "Account Executive" Podium Utah`
	badQuery = `site:linkedin.com/in "Class of 2025" Utah`
)

func testQueries() []queries.Query {
	return []queries.Query{
		{Text: sdrQuery, Role: models.RoleSDR},
		{Text: aeQuery, Role: models.RoleAE},
		{Text: badQuery, Role: models.RoleSDR},
	}
}

func testProvider() *fakeProvider {
	return &fakeProvider{
		results: map[string][]search.Hit{
			sdrQuery: {
				{URL: "https://www.linkedin.com/in/jane-doe", Title: "Jane Doe - Marketing Intern at Qualtrics | LinkedIn", Snippet: "Salt Lake City, Utah"},
				{URL: "https://www.linkedin.com/in/bob-boss", Title: "Bob Boss - VP of Sales | LinkedIn", Snippet: "Provo, Utah"},
				{URL: "https://www.linkedin.com/in/carl-caller", Title: "Carl Caller - SDR at Podium | LinkedIn", Snippet: "Lehi, Utah"},
				{URL: "https://www.linkedin.com/in/dana-d", Title: "Dana D - Student | LinkedIn", Snippet: "Denver, Colorado"},
				{URL: "https://example.com/jobs", Title: "Jobs in Utah"},
				{URL: "https://www.linkedin.com/in/jane-doe/", Title: "Jane Doe - Marketing Intern at Qualtrics | LinkedIn", Snippet: "Salt Lake City, Utah"},
			},
			aeQuery: {
				{URL: "https://www.linkedin.com/in/erin-e", Title: "Erin E - SDR at Podium | LinkedIn", Snippet: "Lehi, Utah"},
			},
		},
		errs: map[string]error{badQuery: search.ErrRateLimited},
	}
}

type sleepRecorder struct {
	calls []time.Duration
	err   error
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.calls = append(s.calls, d)
	return s.err
}

func TestRun(t *testing.T) {
	provider := testProvider()
	remote := newMemRemote(models.Candidate{ProfileURL: "https://www.linkedin.com/in/erin-e"})
	notifier := &fakeNotifier{}
	sleeper := &sleepRecorder{}
	backup := filepath.Join(t.TempDir(), "candidates.csv")

	p := pacer.New(2*time.Second, 4*time.Second, 2, 10*time.Second).WithSleep(sleeper.sleep).WithSeed(1)
	s := NewSourcer(provider, p).
		WithUploader(persist.NewUploader(remote).WithClock(fixedNow)).
		WithNotifier(notifier).
		WithBackup(backup).
		WithClock(fixedNow)

	stats, err := s.Run(context.Background(), testQueries(), 0)
	require.NoError(t, err)

	assert.Equal(t, []string{sdrQuery, aeQuery, badQuery}, provider.calls)
	assert.Equal(t, 3, stats.Queries)
	assert.Equal(t, 1, stats.RateLimited)
	assert.Equal(t, 5, stats.Found)
	assert.Equal(t, map[filter.Verdict]int{
		filter.RejectedSenior:       1,
		filter.RejectedExistingSDR:  1,
		filter.RejectedUnaffiliated: 1,
	}, stats.Filtered)

	require.Len(t, stats.Candidates, 2)
	jane, erin := stats.Candidates[0], stats.Candidates[1]
	assert.Equal(t, "Jane Doe", jane.FullName)
	assert.Equal(t, models.RoleAE, jane.Role)
	assert.Equal(t, "<1", jane.Experience)
	assert.Equal(t, "2026-03-01", jane.DateAdded)
	assert.Equal(t, sdrQuery, jane.SourceQuery)

	// an SDR title is fine on an AE search
	assert.Equal(t, "Erin E", erin.FullName)
	assert.Equal(t, "1-2", erin.Experience)

	assert.Equal(t, 1, stats.New)
	assert.Equal(t, 1, stats.Updated)
	require.Len(t, remote.updates, 1)
	assert.Equal(t, "https://www.linkedin.com/in/erin-e", remote.updates[0].ProfileURL)

	// random delay after the first query, batch pause after the second, none after the last
	require.Len(t, sleeper.calls, 2)
	assert.GreaterOrEqual(t, sleeper.calls[0], 2*time.Second)
	assert.LessOrEqual(t, sleeper.calls[0], 4*time.Second)
	assert.Equal(t, 10*time.Second, sleeper.calls[1])

	assert.Equal(t, 2, stats.BackupRows)
	saved, err := csvstore.Load(backup)
	require.NoError(t, err)
	assert.Len(t, saved, 2)

	require.Len(t, notifier.msgs, 1)
	assert.Contains(t, notifier.msgs[0], "Candidates found: 2")
	assert.Contains(t, notifier.msgs[0], "1 new, 🔄 1 updated")
	assert.Empty(t, notifier.errs)
}

func TestRunStopsAtLimit(t *testing.T) {
	provider := testProvider()
	sleeper := &sleepRecorder{}
	p := pacer.New(time.Second, time.Second, 8, 10*time.Second).WithSleep(sleeper.sleep)

	stats, err := NewSourcer(provider, p).WithClock(fixedNow).Run(context.Background(), testQueries(), 1)
	require.NoError(t, err)

	assert.Len(t, stats.Candidates, 1)
	assert.Equal(t, []string{sdrQuery}, provider.calls)
	assert.Empty(t, sleeper.calls)
	assert.Zero(t, stats.New+stats.Updated+stats.Skipped, "no uploader, nothing uploaded")
}

func TestRunCancelledStillSavesBackup(t *testing.T) {
	provider := testProvider()
	sleeper := &sleepRecorder{err: context.Canceled}
	notifier := &fakeNotifier{}
	backup := filepath.Join(t.TempDir(), "candidates.csv")
	p := pacer.New(time.Second, time.Second, 8, 10*time.Second).WithSleep(sleeper.sleep)

	stats, err := NewSourcer(provider, p).WithBackup(backup).WithNotifier(notifier).WithClock(fixedNow).
		Run(context.Background(), testQueries(), 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, stats.Queries)
	require.Len(t, notifier.errs, 1)
	assert.ErrorIs(t, notifier.errs[0], context.Canceled)

	saved, err := csvstore.Load(backup)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestSummaryWithoutRemote(t *testing.T) {
	s := NewStats()
	s.Queries = 4
	s.accept(models.Candidate{Role: models.RoleSDR})
	s.accept(models.Candidate{Role: models.RoleEither})
	s.Filtered[filter.RejectedUnaffiliated] = 3

	out := s.Summary(false)
	assert.Contains(t, out, "SDR: 1")
	assert.Contains(t, out, "Both: 1")
	assert.Contains(t, out, "non-Utah): 3")
	assert.False(t, strings.Contains(out, "Sheet"))
}
