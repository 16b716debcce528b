package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tatamihq/tatami-backend/internal/model"
	"github.com/tatamihq/tatami-backend/internal/repository"
)

// ClassCache is a read-through cache for class definitions. The Redis
// implementation lives in class_cache.go; tests use an in-memory fake.
type ClassCache interface {
	Get(ctx context.Context, classID int) (*model.Class, bool)
	Set(ctx context.Context, class *model.Class)
}

// ScheduleService resolves class definitions and answers the
// "does this class run on this date" question. That check gates new
// check-ins; historical records on mismatched dates stay visible and
// removable.
type ScheduleService struct {
	classes ClassStore
	cache   ClassCache
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(classes ClassStore, cache ClassCache) *ScheduleService {
	return &ScheduleService{classes: classes, cache: cache}
}

// Lookup resolves a class definition, reading through the cache.
// Returns ErrClassNotFound when the class does not exist.
func (s *ScheduleService) Lookup(ctx context.Context, classID int) (*model.Class, error) {
	if class, ok := s.cache.Get(ctx, classID); ok {
		return class, nil
	}

	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClassNotFound
		}
		return nil, fmt.Errorf("get class: %w", err)
	}

	s.cache.Set(ctx, class)
	return class, nil
}

// IsScheduledOn reports whether the class runs on the given date.
func (s *ScheduleService) IsScheduledOn(ctx context.Context, classID int, date time.Time) (bool, error) {
	class, err := s.Lookup(ctx, classID)
	if err != nil {
		return false, err
	}
	return class.IsScheduledOn(date), nil
}

// List returns all class definitions.
func (s *ScheduleService) List(ctx context.Context) ([]model.Class, error) {
	return s.classes.List(ctx)
}

// ListForDate returns the classes scheduled on the date's weekday.
func (s *ScheduleService) ListForDate(ctx context.Context, date time.Time) ([]model.Class, error) {
	return s.classes.ListByWeekday(ctx, int(date.Weekday()))
}
