package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tatamihq/tatami-backend/internal/model"
)

// ClassRepository handles class definition data access. Class rows are
// reference data mutated only by the admin scheduling layer; this service
// only reads them.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

const classColumns = `id, location_id, name, weekday, start_time, end_time, membership_type_id, created_at, updated_at`

// GetByID retrieves a class by its ID.
func (r *ClassRepository) GetByID(ctx context.Context, id int) (*model.Class, error) {
	c := &model.Class{}
	err := r.pool.QueryRow(ctx,
		`SELECT `+classColumns+` FROM classes WHERE id = $1`, id,
	).Scan(&c.ID, &c.LocationID, &c.Name, &c.Weekday, &c.StartTime, &c.EndTime,
		&c.MembershipTypeID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return c, nil
}

// List retrieves all classes ordered by weekday and start time.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	return r.query(ctx,
		`SELECT `+classColumns+` FROM classes ORDER BY weekday, start_time, name`)
}

// ListByWeekday retrieves classes scheduled on the given weekday (0 = Sunday).
func (r *ClassRepository) ListByWeekday(ctx context.Context, weekday int) ([]model.Class, error) {
	return r.query(ctx,
		`SELECT `+classColumns+` FROM classes WHERE weekday = $1 ORDER BY start_time, name`, weekday)
}

func (r *ClassRepository) query(ctx context.Context, sql string, args ...any) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []model.Class
	for rows.Next() {
		var c model.Class
		if err := rows.Scan(&c.ID, &c.LocationID, &c.Name, &c.Weekday, &c.StartTime,
			&c.EndTime, &c.MembershipTypeID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
