package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ClassAccessRepository reads per-class grading grants. Grants are managed
// by the admin layer; this service only checks them.
type ClassAccessRepository struct {
	pool *pgxpool.Pool
}

// NewClassAccessRepository creates a new ClassAccessRepository.
func NewClassAccessRepository(pool *pgxpool.Pool) *ClassAccessRepository {
	return &ClassAccessRepository{pool: pool}
}

// HasGrant reports whether the grader holds an explicit access grant for
// the class. Admins bypass this check at the service layer.
func (r *ClassAccessRepository) HasGrant(ctx context.Context, graderID, classID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM class_access_grants WHERE grader_id = $1 AND class_id = $2
		 )`,
		graderID, classID,
	).Scan(&exists)
	return exists, err
}
