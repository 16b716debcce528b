package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tatamihq/tatami-backend/internal/model"
)

// AttendanceRepository handles attendance record data access. The table
// carries a unique constraint on (class_id, member_id, class_date); Create
// surfaces a violation as ErrDuplicate, which is the authoritative
// de-duplication signal for concurrent check-ins.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Create inserts an attendance record. Returns ErrDuplicate when a record
// for the same (class, member, date) already exists.
func (r *AttendanceRepository) Create(ctx context.Context, a *model.Attendance) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO attendances (class_id, member_id, class_date, checked_in_by)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, checked_in_at`,
		a.ClassID, a.MemberID, a.ClassDate, a.CheckedInBy,
	).Scan(&a.ID, &a.CheckedInAt)
	return translate(err)
}

// GetByID retrieves an attendance record, or ErrNotFound.
func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*model.Attendance, error) {
	a := &model.Attendance{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, class_id, member_id, class_date, checked_in_at, checked_in_by
		 FROM attendances WHERE id = $1`, id,
	).Scan(&a.ID, &a.ClassID, &a.MemberID, &a.ClassDate, &a.CheckedInAt, &a.CheckedInBy)
	if err != nil {
		return nil, translate(err)
	}
	return a, nil
}

// Delete removes an attendance record by ID. Deleting a record that no
// longer exists is not an error; check-out is idempotent.
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM attendances WHERE id = $1`, id)
	return err
}

// ListByClassDate retrieves all attendance records for a class session.
func (r *AttendanceRepository) ListByClassDate(ctx context.Context, classID int, date time.Time) ([]model.Attendance, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, class_id, member_id, class_date, checked_in_at, checked_in_by
		 FROM attendances
		 WHERE class_id = $1 AND class_date = $2`,
		classID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.Attendance
	for rows.Next() {
		var a model.Attendance
		if err := rows.Scan(&a.ID, &a.ClassID, &a.MemberID, &a.ClassDate,
			&a.CheckedInAt, &a.CheckedInBy); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}

// CountByMemberSince counts sessions a member attended on or after the date.
func (r *AttendanceRepository) CountByMemberSince(ctx context.Context, memberID int, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM attendances WHERE member_id = $1 AND class_date >= $2`,
		memberID, since,
	).Scan(&count)
	return count, err
}
