package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tatamihq/tatami-backend/internal/model"
)

// MemberRepository handles member profile data access.
type MemberRepository struct {
	pool *pgxpool.Pool
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(pool *pgxpool.Pool) *MemberRepository {
	return &MemberRepository{pool: pool}
}

const memberColumns = `id, external_ref, first_name, last_name, program, belt, stripes, last_promotion_id, created_at, updated_at`

func scanMember(row interface{ Scan(dest ...any) error }) (*model.Member, error) {
	m := &model.Member{}
	err := row.Scan(&m.ID, &m.ExternalRef, &m.FirstName, &m.LastName,
		&m.Program, &m.Belt, &m.Stripes, &m.LastPromotionID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return m, nil
}

// GetByID retrieves a member by ID.
func (r *MemberRepository) GetByID(ctx context.Context, id int) (*model.Member, error) {
	return scanMember(r.pool.QueryRow(ctx,
		`SELECT `+memberColumns+` FROM members WHERE id = $1`, id))
}

// ListEligible returns members holding an active membership at the location.
// A nil membershipTypeID means the class has no type restriction, so every
// active member at the location qualifies.
func (r *MemberRepository) ListEligible(ctx context.Context, locationID int, membershipTypeID *int) ([]model.Member, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT m.id, m.external_ref, m.first_name, m.last_name, m.program,
		        m.belt, m.stripes, m.last_promotion_id, m.created_at, m.updated_at
		 FROM members m
		 JOIN memberships ms ON ms.member_id = m.id
		 WHERE ms.status = 'active'
		   AND ms.location_id = $1
		   AND ($2::int IS NULL OR ms.membership_type_id = $2)
		 ORDER BY m.first_name, m.last_name`,
		locationID, membershipTypeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		if err := rows.Scan(&m.ID, &m.ExternalRef, &m.FirstName, &m.LastName,
			&m.Program, &m.Belt, &m.Stripes, &m.LastPromotionID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// UpdateRank sets the cached current rank and last-promotion pointer.
// The promotion ledger remains the source of truth; this only refreshes
// the materialized view on the profile.
func (r *MemberRepository) UpdateRank(ctx context.Context, memberID int, belt model.Belt, stripes int, lastPromotionID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE members
		 SET belt = $1, stripes = $2, last_promotion_id = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		belt, stripes, lastPromotionID, memberID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
