package worker

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// RankAuditWorker periodically re-derives each member's cached belt/stripes
// from the newest row of the promotion ledger and repairs any drift. The
// ledger is the source of truth; the cached rank is only a materialized
// view, so a repair here is always safe.
type RankAuditWorker struct {
	pool     *pgxpool.Pool
	interval time.Duration
	log      zerolog.Logger
}

// NewRankAuditWorker creates a new RankAuditWorker.
func NewRankAuditWorker(pool *pgxpool.Pool, interval time.Duration, log zerolog.Logger) *RankAuditWorker {
	return &RankAuditWorker{
		pool:     pool,
		interval: interval,
		log:      log.With().Str("component", "rank_audit_worker").Logger(),
	}
}

// Start begins the audit loop. Call in a goroutine.
func (w *RankAuditWorker) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// Run once on startup so drift from a crash is repaired immediately.
	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce repairs every member whose cached rank disagrees with their
// newest ledger entry. Members with no ledger entries keep their
// registration default and are left alone.
func (w *RankAuditWorker) runOnce(ctx context.Context) {
	tag, err := w.pool.Exec(ctx,
		`UPDATE members m
		 SET belt = p.new_belt,
		     stripes = p.new_stripes,
		     last_promotion_id = p.id,
		     updated_at = CURRENT_TIMESTAMP
		 FROM (
		   SELECT DISTINCT ON (member_id) id, member_id, new_belt, new_stripes
		   FROM promotions
		   ORDER BY member_id, created_at DESC, id DESC
		 ) p
		 WHERE p.member_id = m.id
		   AND (m.belt <> p.new_belt
		     OR m.stripes <> p.new_stripes
		     OR m.last_promotion_id IS DISTINCT FROM p.id)`)
	if err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Rank audit failed")
		}
		return
	}

	if repaired := tag.RowsAffected(); repaired > 0 {
		w.log.Warn().Int64("repaired", repaired).Msg("Cached ranks drifted from ledger, repaired")
	}
}
