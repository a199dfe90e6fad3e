package replication

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"video-summarizer/pkg/db"
	"video-summarizer/pkg/domain"
)

// Config wires the replication dependencies.
type Config struct {
	Mongo    *db.Client
	Postgres db.DBProvider

	// Since limits replication to records updated at or after this time.
	// Zero means replicate every completed record.
	Since time.Time
}

// Replicator copies completed video summaries from MongoDB into a Postgres
// table so they can be searched with SQL. Mongo stays the system of record;
// the replica is one-shot and idempotent (upsert keyed on video_id).
type Replicator struct {
	mongo *db.Client
	pg    db.DBProvider
	since time.Time
}

func NewReplicator(cfg Config) (*Replicator, error) {
	if cfg.Mongo == nil {
		return nil, fmt.Errorf("mongo client is required")
	}
	if cfg.Postgres == nil {
		return nil, fmt.Errorf("postgres client is required")
	}
	return &Replicator{
		mongo: cfg.Mongo,
		pg:    cfg.Postgres,
		since: cfg.Since,
	}, nil
}

// Replicate reads completed videos from Mongo and upserts them into the
// Postgres `video_summary` table in parallel batches.
func (r *Replicator) Replicate(ctx context.Context) error {
	if err := r.ensureSchema(ctx); err != nil {
		return err
	}

	videos, err := r.mongo.CompletedSince(ctx, r.since)
	if err != nil {
		return fmt.Errorf("read completed videos: %w", err)
	}
	if len(videos) == 0 {
		log.Printf("No completed videos to replicate")
		return nil
	}

	log.Printf("Loaded %d completed videos from Mongo, replicating in batches...", len(videos))

	const batchSize = 100
	const numWorkers = 5

	type batchResult struct {
		count int
		err   error
	}

	numBatches := (len(videos) + batchSize - 1) / batchSize
	jobs := make(chan []domain.Video, numBatches)
	results := make(chan batchResult, numBatches)

	for start := 0; start < len(videos); start += batchSize {
		end := start + batchSize
		if end > len(videos) {
			end = len(videos)
		}
		jobs <- videos[start:end]
	}
	close(jobs)

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range jobs {
				err := r.upsertBatch(ctx, batch)
				results <- batchResult{count: len(batch), err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	replicated := 0
	for res := range results {
		if res.err != nil {
			return res.err
		}
		replicated += res.count
	}

	log.Printf("Replication complete: %d videos replicated", replicated)
	return nil
}

func (r *Replicator) ensureSchema(ctx context.Context) error {
	if r.pg.DB() == nil {
		return fmt.Errorf("postgres DB not connected")
	}

	// video_id is the primary key, which also gives us idempotent upserts.
	const ddl = `
CREATE TABLE IF NOT EXISTS video_summary (
  video_id TEXT PRIMARY KEY,
  source_url TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  channel_name TEXT NOT NULL DEFAULT '',
  executive TEXT NOT NULL DEFAULT '',
  key_points TEXT NOT NULL DEFAULT '',
  detailed_summary TEXT NOT NULL DEFAULT '',
  tags TEXT NOT NULL DEFAULT '',
  duration_seconds INT NOT NULL DEFAULT 0,
  completed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

	if _, err := r.pg.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create video_summary table: %w", err)
	}
	return nil
}

// upsertBatch writes one batch of videos within a transaction.
func (r *Replicator) upsertBatch(ctx context.Context, batch []domain.Video) error {
	tx, err := r.pg.DB().BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsertQuery = `
INSERT INTO video_summary (video_id, source_url, title, channel_name, executive, key_points, detailed_summary, tags, duration_seconds, completed_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (video_id) DO UPDATE SET
  title = EXCLUDED.title,
  channel_name = EXCLUDED.channel_name,
  executive = EXCLUDED.executive,
  key_points = EXCLUDED.key_points,
  detailed_summary = EXCLUDED.detailed_summary,
  tags = EXCLUDED.tags,
  duration_seconds = EXCLUDED.duration_seconds,
  completed_at = EXCLUDED.completed_at`

	stmt, err := tx.PrepareContext(ctx, upsertQuery)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, v := range batch {
		if v.VideoID == "" || v.Summary == nil {
			continue
		}
		_, err := stmt.ExecContext(ctx,
			v.VideoID,
			v.SourceURL,
			v.Title,
			v.ChannelName,
			v.Summary.Executive,
			strings.Join(v.Summary.KeyPoints, "\n"),
			v.Summary.DetailedSummary,
			strings.Join(v.Tags, ","),
			v.DurationSeconds,
			v.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert video %q: %w", v.VideoID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
