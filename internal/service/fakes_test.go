package service

import (
	"context"
	"sync"
	"time"

	"github.com/tatamihq/tatami-backend/internal/model"
	"github.com/tatamihq/tatami-backend/internal/repository"
	ws "github.com/tatamihq/tatami-backend/internal/websocket"
)

// In-memory fakes for the store interfaces. Each fake records the calls it
// receives so tests can assert the service passed the right arguments.

type fakeClassStore struct {
	classes map[int]*model.Class
	getErr  error
	calls   int
}

func (f *fakeClassStore) GetByID(ctx context.Context, id int) (*model.Class, error) {
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	class, ok := f.classes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return class, nil
}

func (f *fakeClassStore) List(ctx context.Context) ([]model.Class, error) {
	var out []model.Class
	for _, c := range f.classes {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClassStore) ListByWeekday(ctx context.Context, weekday int) ([]model.Class, error) {
	var out []model.Class
	for _, c := range f.classes {
		if c.Weekday == weekday {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeClassCache struct {
	entries map[int]*model.Class
	sets    int
}

func newFakeClassCache() *fakeClassCache {
	return &fakeClassCache{entries: make(map[int]*model.Class)}
}

func (f *fakeClassCache) Get(ctx context.Context, classID int) (*model.Class, bool) {
	class, ok := f.entries[classID]
	return class, ok
}

func (f *fakeClassCache) Set(ctx context.Context, class *model.Class) {
	f.sets++
	f.entries[class.ID] = class
}

type fakeMemberStore struct {
	members map[int]*model.Member

	eligible           []model.Member
	eligibleLocationID int
	eligibleTypeID     *int

	updateErr       error
	updateErrTimes  int // fail this many calls before succeeding
	updateCalls     int
	updatedMemberID int
	updatedBelt     model.Belt
	updatedStripes  int
	updatedPromoID  int64
}

func (f *fakeMemberStore) GetByID(ctx context.Context, id int) (*model.Member, error) {
	m, ok := f.members[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *m
	return &copied, nil
}

func (f *fakeMemberStore) ListEligible(ctx context.Context, locationID int, membershipTypeID *int) ([]model.Member, error) {
	f.eligibleLocationID = locationID
	f.eligibleTypeID = membershipTypeID
	return f.eligible, nil
}

func (f *fakeMemberStore) UpdateRank(ctx context.Context, memberID int, belt model.Belt, stripes int, lastPromotionID int64) error {
	f.updateCalls++
	if f.updateErr != nil && (f.updateErrTimes == 0 || f.updateCalls <= f.updateErrTimes) {
		return f.updateErr
	}
	f.updatedMemberID = memberID
	f.updatedBelt = belt
	f.updatedStripes = stripes
	f.updatedPromoID = lastPromotionID
	if m, ok := f.members[memberID]; ok {
		m.Belt = belt
		m.Stripes = stripes
		m.LastPromotionID = &lastPromotionID
	}
	return nil
}

// fakeAttendanceStore is safe for concurrent use so tests can exercise
// simultaneous check-ins the way the database unique constraint would.
type fakeAttendanceStore struct {
	mu      sync.Mutex
	records map[int64]*model.Attendance
	nextID  int64

	createErr error
	listErr   error
	count     int
	countErr  error
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{records: make(map[int64]*model.Attendance), nextID: 1}
}

func (f *fakeAttendanceStore) Create(ctx context.Context, a *model.Attendance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.records {
		if existing.ClassID == a.ClassID && existing.MemberID == a.MemberID && existing.ClassDate.Equal(a.ClassDate) {
			return repository.ErrDuplicate
		}
	}
	a.ID = f.nextID
	f.nextID++
	a.CheckedInAt = time.Now()
	copied := *a
	f.records[a.ID] = &copied
	return nil
}

func (f *fakeAttendanceStore) GetByID(ctx context.Context, id int64) (*model.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeAttendanceStore) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	return nil
}

func (f *fakeAttendanceStore) ListByClassDate(ctx context.Context, classID int, date time.Time) ([]model.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Attendance
	for _, rec := range f.records {
		if rec.ClassID == classID && rec.ClassDate.Equal(date) {
			out = append(out, *rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceStore) CountByMemberSince(ctx context.Context, memberID int, since time.Time) (int, error) {
	return f.count, f.countErr
}

type fakePromotionStore struct {
	createErr error
	nextID    int64
	created   []*model.Promotion
}

func (f *fakePromotionStore) Create(ctx context.Context, p *model.Promotion) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	p.ID = f.nextID
	p.CreatedAt = time.Now()
	copied := *p
	f.created = append(f.created, &copied)
	return nil
}

func (f *fakePromotionStore) ListByMember(ctx context.Context, memberID int) ([]model.Promotion, error) {
	var out []model.Promotion
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].MemberID == memberID {
			out = append(out, *f.created[i])
		}
	}
	return out, nil
}

func (f *fakePromotionStore) GetLatestByMember(ctx context.Context, memberID int) (*model.Promotion, error) {
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].MemberID == memberID {
			copied := *f.created[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeAccessStore struct {
	grants map[[2]int]bool
	err    error
}

func (f *fakeAccessStore) HasGrant(ctx context.Context, graderID, classID int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.grants[[2]int{graderID, classID}], nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []ws.RosterEvent
}

func (f *fakePublisher) Publish(ctx context.Context, evt ws.RosterEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
}

func (f *fakePublisher) Events() []ws.RosterEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ws.RosterEvent, len(f.events))
	copy(out, f.events)
	return out
}
