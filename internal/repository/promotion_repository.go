package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tatamihq/tatami-backend/internal/model"
)

// PromotionRepository handles the append-only promotion ledger.
// Rows are inserted once and never updated or deleted.
type PromotionRepository struct {
	pool *pgxpool.Pool
}

// NewPromotionRepository creates a new PromotionRepository.
func NewPromotionRepository(pool *pgxpool.Pool) *PromotionRepository {
	return &PromotionRepository{pool: pool}
}

// Create appends a promotion to the ledger.
func (r *PromotionRepository) Create(ctx context.Context, p *model.Promotion) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO promotions
		   (member_id, class_id, previous_belt, previous_stripes,
		    new_belt, new_stripes, is_advancement, comments, graded_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		p.MemberID, p.ClassID, p.PreviousBelt, p.PreviousStripes,
		p.NewBelt, p.NewStripes, p.IsAdvancement, p.Comments, p.GradedBy,
	).Scan(&p.ID, &p.CreatedAt)
	return translate(err)
}

// ListByMember retrieves a member's promotion history, newest first.
func (r *PromotionRepository) ListByMember(ctx context.Context, memberID int) ([]model.Promotion, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, member_id, class_id, previous_belt, previous_stripes,
		        new_belt, new_stripes, is_advancement, comments, graded_by, created_at
		 FROM promotions
		 WHERE member_id = $1
		 ORDER BY created_at DESC, id DESC`,
		memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var promotions []model.Promotion
	for rows.Next() {
		var p model.Promotion
		if err := rows.Scan(&p.ID, &p.MemberID, &p.ClassID, &p.PreviousBelt, &p.PreviousStripes,
			&p.NewBelt, &p.NewStripes, &p.IsAdvancement, &p.Comments, &p.GradedBy, &p.CreatedAt); err != nil {
			return nil, err
		}
		promotions = append(promotions, p)
	}
	return promotions, rows.Err()
}

// GetLatestByMember returns the newest ledger entry for a member, or
// ErrNotFound if the member has never been graded.
func (r *PromotionRepository) GetLatestByMember(ctx context.Context, memberID int) (*model.Promotion, error) {
	p := &model.Promotion{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, member_id, class_id, previous_belt, previous_stripes,
		        new_belt, new_stripes, is_advancement, comments, graded_by, created_at
		 FROM promotions
		 WHERE member_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT 1`,
		memberID,
	).Scan(&p.ID, &p.MemberID, &p.ClassID, &p.PreviousBelt, &p.PreviousStripes,
		&p.NewBelt, &p.NewStripes, &p.IsAdvancement, &p.Comments, &p.GradedBy, &p.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}
