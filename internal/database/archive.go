package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rodriguescarson/cfkit/internal/model"
	"github.com/rodriguescarson/cfkit/internal/progress"
)

const schema = `
CREATE TABLE IF NOT EXISTS solved_problems (
	handle        TEXT        NOT NULL,
	problem_key   TEXT        NOT NULL,
	contest_id    INTEGER     NOT NULL,
	problem_index TEXT        NOT NULL,
	name          TEXT        NOT NULL DEFAULT '',
	rating        INTEGER     NOT NULL DEFAULT 0,
	first_seen_at TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (handle, problem_key)
);

CREATE TABLE IF NOT EXISTS rating_changes (
	handle       TEXT        NOT NULL,
	contest_id   INTEGER     NOT NULL,
	contest_name TEXT        NOT NULL,
	rank         INTEGER     NOT NULL,
	old_rating   INTEGER     NOT NULL,
	new_rating   INTEGER     NOT NULL,
	updated_at   TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (handle, contest_id)
);
`

const insertSolved = `
	INSERT INTO solved_problems (handle, problem_key, contest_id, problem_index, name, rating, first_seen_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (handle, problem_key) DO NOTHING
`

const upsertRating = `
	INSERT INTO rating_changes (handle, contest_id, contest_name, rank, old_rating, new_rating, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (handle, contest_id) DO UPDATE
	SET contest_name = EXCLUDED.contest_name,
	    rank = EXCLUDED.rank,
	    old_rating = EXCLUDED.old_rating,
	    new_rating = EXCLUDED.new_rating,
	    updated_at = EXCLUDED.updated_at
`

// DB is the subset of *pgxpool.Pool used by Archive.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// Archive writes sync snapshots to PostgreSQL.
type Archive struct {
	db     DB
	logger *slog.Logger
}

// NewArchive returns an Archive on db.
func NewArchive(db DB, logger *slog.Logger) *Archive {
	if logger == nil {
		logger = slog.Default()
	}
	return &Archive{db: db, logger: logger}
}

// EnsureSchema creates the archive tables if they do not exist.
func (a *Archive) EnsureSchema(ctx context.Context) error {
	if _, err := a.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Export implements progress.Exporter. Solved problems already archived keep
// their first_seen_at; rating changes are upserted.
func (a *Archive) Export(ctx context.Context, snap progress.Snapshot) error {
	start := time.Now()

	problems := model.FirstAccepted(snap.Submissions)
	batch := &pgx.Batch{}
	for _, key := range snap.Solved.Sorted() {
		p := problems[key]
		batch.Queue(insertSolved, snap.Handle, key, p.ContestID, p.Index, p.Name, p.Rating, snap.SyncedAt)
	}
	for _, rc := range snap.Rating {
		batch.Queue(upsertRating,
			snap.Handle, rc.ContestID, rc.ContestName, rc.Rank, rc.OldRating, rc.NewRating,
			time.Unix(rc.RatingUpdateTimeSeconds, 0).UTC(),
		)
	}
	if batch.Len() == 0 {
		return nil
	}

	results := a.db.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for i := 0; i < batch.Len(); i++ {
		ct, err := results.Exec()
		if err != nil {
			return fmt.Errorf("archive batch: %w", err)
		}
		if i < len(snap.Solved) && ct.RowsAffected() > 0 {
			inserted++
		}
	}

	a.logger.Debug("archived progress",
		"handle", snap.Handle,
		"new_problems", inserted,
		"rating_changes", len(snap.Rating),
		"duration", time.Since(start),
	)
	return nil
}
