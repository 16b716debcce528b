package service

import (
	"context"
	"time"

	"github.com/tatamihq/tatami-backend/internal/model"
)

// Store interfaces over the external data owners. The pgx repositories in
// internal/repository satisfy them; tests substitute in-memory fakes.

// ClassStore reads class definitions. Classes are reference data owned by
// the admin scheduling layer.
type ClassStore interface {
	GetByID(ctx context.Context, id int) (*model.Class, error)
	List(ctx context.Context) ([]model.Class, error)
	ListByWeekday(ctx context.Context, weekday int) ([]model.Class, error)
}

// MemberStore reads member profiles and writes the cached rank fields.
type MemberStore interface {
	GetByID(ctx context.Context, id int) (*model.Member, error)
	ListEligible(ctx context.Context, locationID int, membershipTypeID *int) ([]model.Member, error)
	UpdateRank(ctx context.Context, memberID int, belt model.Belt, stripes int, lastPromotionID int64) error
}

// AttendanceStore owns attendance records. Create must surface a duplicate
// (class, member, date) insert as repository.ErrDuplicate.
type AttendanceStore interface {
	Create(ctx context.Context, a *model.Attendance) error
	GetByID(ctx context.Context, id int64) (*model.Attendance, error)
	Delete(ctx context.Context, id int64) error
	ListByClassDate(ctx context.Context, classID int, date time.Time) ([]model.Attendance, error)
	CountByMemberSince(ctx context.Context, memberID int, since time.Time) (int, error)
}

// PromotionStore owns the append-only promotion ledger.
type PromotionStore interface {
	Create(ctx context.Context, p *model.Promotion) error
	ListByMember(ctx context.Context, memberID int) ([]model.Promotion, error)
	GetLatestByMember(ctx context.Context, memberID int) (*model.Promotion, error)
}

// GradingAccessStore checks per-class grading grants for non-admin graders.
type GradingAccessStore interface {
	HasGrant(ctx context.Context, graderID, classID int) (bool, error)
}
