package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go-lead-sourcer/internal/dedup"
	"go-lead-sourcer/internal/models"
	"go-lead-sourcer/internal/persist"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("candidate not found")

// Repository keeps candidates in a Postgres table keyed by normalized profile URL.
// It satisfies persist.Remote.
type Repository struct {
	db   *pgxpool.Pool
	keys *dedup.Index[int64]
}

var _ persist.Remote = (*Repository)(nil)

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// Supabase's pooler (PgBouncer, transaction mode) rejects prepared statements
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool, keys: dedup.NewIndex[int64]()}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS candidates (
	id               BIGSERIAL PRIMARY KEY,
	profile_key      TEXT NOT NULL UNIQUE,
	profile_url      TEXT NOT NULL,
	full_name        TEXT NOT NULL DEFAULT '',
	headline         TEXT NOT NULL DEFAULT '',
	years_experience TEXT NOT NULL DEFAULT '',
	role_fit         TEXT NOT NULL DEFAULT 'SDR',
	notes            TEXT NOT NULL DEFAULT '',
	email            TEXT NOT NULL DEFAULT '',
	phone            TEXT NOT NULL DEFAULT '',
	date_added       TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT '',
	ai_draft         TEXT NOT NULL DEFAULT '',
	source_query     TEXT NOT NULL DEFAULT '',
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrate creates the candidates table when it does not exist
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate candidates table: %w", err)
	}
	return nil
}

func (r *Repository) Name() string {
	return "postgres"
}

// ---------------- REMOTE OPERATIONS ----------------

// Prepare loads every stored key into memory
func (r *Repository) Prepare(ctx context.Context) (int, error) {
	rows, err := r.db.Query(ctx, "SELECT id, profile_key FROM candidates ORDER BY id")
	if err != nil {
		return 0, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	keys := dedup.NewIndex[int64]()
	for rows.Next() {
		var id int64
		var key string
		if err := rows.Scan(&id, &key); err != nil {
			return 0, fmt.Errorf("failed to scan candidate key: %w", err)
		}
		keys.PutFirst(key, id)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to list candidates: %w", err)
	}

	r.keys = keys
	return keys.Len(), nil
}

func (r *Repository) Contains(profileURL string) bool {
	_, ok := r.keys.Lookup(profileURL)
	return ok
}

const upsertCandidate = `
	INSERT INTO candidates (profile_key, profile_url, full_name, headline, years_experience, role_fit,
		notes, email, phone, date_added, status, ai_draft, source_query)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	ON CONFLICT (profile_key)
	DO UPDATE SET role_fit = EXCLUDED.role_fit,
		years_experience = COALESCE(NULLIF(EXCLUDED.years_experience, ''), candidates.years_experience),
		date_added = EXCLUDED.date_added,
		updated_at = now()
	RETURNING id`

// Append upserts cs in one round trip. A row that appeared since Prepare is
// refreshed instead of duplicated.
func (r *Repository) Append(ctx context.Context, cs []models.Candidate) error {
	batch := &pgx.Batch{}
	var queued []models.Candidate
	for _, c := range cs {
		key := c.Key()
		if key == "" {
			log.Printf("      ⚠️ skipping candidate without profile URL (%s)", c.FullName)
			continue
		}
		row := c.Values()
		batch.Queue(upsertCandidate, key, c.ProfileURL, c.FullName, c.Headline, c.Experience, row[4],
			c.Notes, c.Email, c.Phone, c.DateAdded, c.Status, c.AIDraft, c.SourceQuery)
		queued = append(queued, c)
	}
	if len(queued) == 0 {
		return nil
	}

	br := r.db.SendBatch(ctx, batch)
	defer br.Close()

	for _, c := range queued {
		var id int64
		if err := br.QueryRow().Scan(&id); err != nil {
			return fmt.Errorf("failed to save candidate %s: %w", c.ProfileURL, err)
		}
		r.keys.Put(c.ProfileURL, id)
	}
	return nil
}

// Update refreshes role, experience (when known) and the date stamp
func (r *Repository) Update(ctx context.Context, c models.Candidate) error {
	role := c.Role
	if role == models.RoleUnknown {
		role = models.RoleSDR
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE candidates
		SET role_fit = $1,
			years_experience = COALESCE(NULLIF($2, ''), years_experience),
			date_added = $3,
			updated_at = now()
		WHERE profile_key = $4`,
		role.String(), c.Experience, c.DateAdded, c.Key())
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", c.ProfileURL, ErrNotFound)
	}
	return nil
}

// ---------------- EXPERIENCE BACKFILL ----------------

// BackfillExperience fills empty years_experience values with estimate(headline).
// Rows for which estimate returns "" are left alone.
func (r *Repository) BackfillExperience(ctx context.Context, estimate func(headline string) string) (int, error) {
	rows, err := r.db.Query(ctx, "SELECT id, headline FROM candidates WHERE years_experience = '' ORDER BY id")
	if err != nil {
		return 0, fmt.Errorf("failed to list candidates without experience: %w", err)
	}
	type pending struct {
		id   int64
		band string
	}
	var updates []pending
	for rows.Next() {
		var id int64
		var headline string
		if err := rows.Scan(&id, &headline); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan candidate: %w", err)
		}
		if band := estimate(headline); band != "" {
			updates = append(updates, pending{id: id, band: band})
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, err
	}
	if len(updates) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue("UPDATE candidates SET years_experience = $1, updated_at = now() WHERE id = $2", u.band, u.id)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("failed to backfill experience: %w", err)
	}
	return len(updates), nil
}

// Candidates returns every stored row in insertion order
func (r *Repository) Candidates(ctx context.Context) ([]models.Candidate, error) {
	rows, err := r.db.Query(ctx, `
		SELECT full_name, profile_url, headline, years_experience, role_fit, notes,
			email, phone, date_added, status, ai_draft, source_query
		FROM candidates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var out []models.Candidate
	for rows.Next() {
		var c models.Candidate
		var role string
		if err := rows.Scan(&c.FullName, &c.ProfileURL, &c.Headline, &c.Experience, &role, &c.Notes,
			&c.Email, &c.Phone, &c.DateAdded, &c.Status, &c.AIDraft, &c.SourceQuery); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.Role = models.ParseRole(role)
		out = append(out, c)
	}
	return out, rows.Err()
}
