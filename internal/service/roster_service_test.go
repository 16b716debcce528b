package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/tatamihq/tatami-backend/internal/model"
	ws "github.com/tatamihq/tatami-backend/internal/websocket"
)

func member(id int, first, last string) model.Member {
	return model.Member{
		ID:        id,
		FirstName: first,
		LastName:  last,
		Program:   model.ProgramAdult,
		Belt:      model.BeltWhite,
	}
}

type rosterFixture struct {
	service    *RosterService
	members    *fakeMemberStore
	attendance *fakeAttendanceStore
	publisher  *fakePublisher
}

func newRosterFixture(class *model.Class, eligible []model.Member) *rosterFixture {
	classStore := &fakeClassStore{classes: map[int]*model.Class{class.ID: class}}
	schedule := NewScheduleService(classStore, newFakeClassCache())

	memberStore := &fakeMemberStore{
		members:  make(map[int]*model.Member),
		eligible: eligible,
	}
	for i := range eligible {
		m := eligible[i]
		memberStore.members[m.ID] = &m
	}

	attendance := newFakeAttendanceStore()
	publisher := &fakePublisher{}

	return &rosterFixture{
		service:    NewRosterService(schedule, memberStore, attendance, publisher, zerolog.Nop()),
		members:    memberStore,
		attendance: attendance,
		publisher:  publisher,
	}
}

var monday = time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC) // a Monday

func TestRosterPassesClassRestrictionsToStore(t *testing.T) {
	typeID := 42
	class := mondayClass(7)
	class.LocationID = 3
	class.MembershipTypeID = &typeID

	f := newRosterFixture(class, nil)

	if _, err := f.service.Roster(context.Background(), 7, monday); err != nil {
		t.Fatalf("Roster: %v", err)
	}

	if f.members.eligibleLocationID != 3 {
		t.Errorf("eligible query used location %d, want 3", f.members.eligibleLocationID)
	}
	if f.members.eligibleTypeID == nil || *f.members.eligibleTypeID != 42 {
		t.Errorf("eligible query used type %v, want 42", f.members.eligibleTypeID)
	}
}

func TestRosterOpenClassPassesNilType(t *testing.T) {
	f := newRosterFixture(mondayClass(7), nil)

	if _, err := f.service.Roster(context.Background(), 7, monday); err != nil {
		t.Fatalf("Roster: %v", err)
	}

	if f.members.eligibleTypeID != nil {
		t.Errorf("open class should query with nil membership type, got %v", *f.members.eligibleTypeID)
	}
}

func TestRosterClassNotFound(t *testing.T) {
	f := newRosterFixture(mondayClass(7), nil)

	_, err := f.service.Roster(context.Background(), 99, monday)
	if !errors.Is(err, ErrClassNotFound) {
		t.Errorf("Roster error = %v, want ErrClassNotFound", err)
	}
}

func TestRosterOrderingCheckedInFirst(t *testing.T) {
	// B sorts first alphabetically but is not checked in; A and C are.
	eligible := []model.Member{
		member(1, "Aaron", "Keen"),
		member(2, "Walter", "Sousa"),
		member(3, "Zoe", "Tran"),
	}
	f := newRosterFixture(mondayClass(7), eligible)
	ctx := context.Background()

	if _, err := f.service.CheckIn(ctx, 7, monday, 2, 100, false); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if _, err := f.service.CheckIn(ctx, 7, monday, 3, 100, false); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	entries, err := f.service.Roster(ctx, 7, monday)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}

	var got []int
	for _, e := range entries {
		got = append(got, e.Member.ID)
	}
	// Checked-in members (Walter, Zoe) precede Aaron despite his name.
	want := []int{2, 3, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("roster order = %v, want %v", got, want)
		}
	}

	if !entries[0].CheckedIn || entries[0].CheckInTime == nil || entries[0].RecordID == nil {
		t.Error("checked-in entry missing check-in overlay fields")
	}
	if entries[2].CheckedIn || entries[2].CheckInTime != nil {
		t.Error("not-checked-in entry should have empty overlay fields")
	}
	for _, e := range entries {
		if !e.Eligible {
			t.Errorf("member %d should be eligible", e.Member.ID)
		}
	}
}

func TestRosterKeepsIneligibleCheckedInMember(t *testing.T) {
	f := newRosterFixture(mondayClass(7), []model.Member{member(1, "Ana", "Souza")})
	ctx := context.Background()

	// Bruno checked in, then his membership stopped matching the class.
	bruno := member(2, "Bruno", "Lima")
	f.members.members[bruno.ID] = &bruno
	if _, err := f.service.CheckIn(ctx, 7, monday, 2, 100, false); err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	entries, err := f.service.Roster(ctx, 7, monday)
	if err != nil {
		t.Fatalf("Roster: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("%d roster entries, want 2", len(entries))
	}

	var found bool
	for _, e := range entries {
		if e.Member.ID != 2 {
			continue
		}
		found = true
		if e.Eligible {
			t.Error("ineligible member reported as eligible")
		}
		if !e.CheckedIn || e.RecordID == nil {
			t.Error("ineligible member's check-in record dropped from the roster")
		}
	}
	if !found {
		t.Error("checked-in ineligible member missing from the roster")
	}
}

func TestCheckInDuplicate(t *testing.T) {
	f := newRosterFixture(mondayClass(7), []model.Member{member(1, "Ana", "Souza")})
	ctx := context.Background()

	if _, err := f.service.CheckIn(ctx, 7, monday, 1, 100, false); err != nil {
		t.Fatalf("first CheckIn: %v", err)
	}

	_, err := f.service.CheckIn(ctx, 7, monday, 1, 100, false)
	if !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Errorf("duplicate CheckIn error = %v, want ErrAlreadyCheckedIn", err)
	}

	if len(f.attendance.records) != 1 {
		t.Errorf("%d attendance records exist, want exactly 1", len(f.attendance.records))
	}
}

func TestCheckInConcurrentDuplicate(t *testing.T) {
	f := newRosterFixture(mondayClass(7), []model.Member{member(1, "Ana", "Souza")})
	ctx := context.Background()

	// The fake store serializes Create like the database constraint does;
	// exactly one goroutine may win.
	var mu sync.Mutex
	var successes, duplicates int
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.service.CheckIn(ctx, 7, monday, 1, 100, false)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrAlreadyCheckedIn):
				duplicates++
			default:
				t.Errorf("unexpected CheckIn error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || duplicates != 1 {
		t.Errorf("successes=%d duplicates=%d, want exactly one of each", successes, duplicates)
	}
	if len(f.attendance.records) != 1 {
		t.Errorf("%d attendance records survive, want 1", len(f.attendance.records))
	}
}

func TestCheckInOffScheduleRejected(t *testing.T) {
	f := newRosterFixture(mondayClass(7), []model.Member{member(1, "Ana", "Souza")})
	tuesday := monday.AddDate(0, 0, 1)

	_, err := f.service.CheckIn(context.Background(), 7, tuesday, 1, 100, false)
	if !errors.Is(err, ErrNotScheduled) {
		t.Errorf("off-schedule CheckIn error = %v, want ErrNotScheduled", err)
	}
}

func TestCheckInOffScheduleForcedBackfill(t *testing.T) {
	f := newRosterFixture(mondayClass(7), []model.Member{member(1, "Ana", "Souza")})
	tuesday := monday.AddDate(0, 0, 1)

	record, err := f.service.CheckIn(context.Background(), 7, tuesday, 1, 100, true)
	if err != nil {
		t.Fatalf("forced backfill CheckIn: %v", err)
	}
	if record.ID == 0 {
		t.Error("backfilled record has no ID")
	}
}

func TestCheckOutIdempotent(t *testing.T) {
	f := newRosterFixture(mondayClass(7), []model.Member{member(1, "Ana", "Souza")})
	ctx := context.Background()

	record, err := f.service.CheckIn(ctx, 7, monday, 1, 100, false)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	if err := f.service.CheckOut(ctx, record.ID, 100); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	// Second check-out of the same record is already satisfied.
	if err := f.service.CheckOut(ctx, record.ID, 100); err != nil {
		t.Errorf("repeat CheckOut error = %v, want nil", err)
	}
}

func TestCheckOutSurvivesScheduleMismatch(t *testing.T) {
	f := newRosterFixture(mondayClass(7), []model.Member{member(1, "Ana", "Souza")})
	ctx := context.Background()

	// Admin backfilled a Tuesday record; a later check-out must succeed
	// even though the class never runs on Tuesdays.
	tuesday := monday.AddDate(0, 0, 1)
	record, err := f.service.CheckIn(ctx, 7, tuesday, 1, 100, true)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}

	if err := f.service.CheckOut(ctx, record.ID, 100); err != nil {
		t.Errorf("CheckOut of off-schedule record: %v", err)
	}
}

func TestCheckInCheckOutRoundTrip(t *testing.T) {
	f := newRosterFixture(mondayClass(7), []model.Member{member(1, "Ana", "Souza")})
	ctx := context.Background()

	first, err := f.service.CheckIn(ctx, 7, monday, 1, 100, false)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if err := f.service.CheckOut(ctx, first.ID, 100); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}
	second, err := f.service.CheckIn(ctx, 7, monday, 1, 100, false)
	if err != nil {
		t.Fatalf("second CheckIn: %v", err)
	}

	if len(f.attendance.records) != 1 {
		t.Errorf("%d live records after round trip, want 1", len(f.attendance.records))
	}
	if second.ID == first.ID {
		t.Error("re-check-in reused the deleted record ID")
	}
}

func TestCheckInPublishesRosterEvent(t *testing.T) {
	f := newRosterFixture(mondayClass(7), []model.Member{member(1, "Ana", "Souza")})
	ctx := context.Background()

	record, err := f.service.CheckIn(ctx, 7, monday, 1, 100, false)
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if err := f.service.CheckOut(ctx, record.ID, 100); err != nil {
		t.Fatalf("CheckOut: %v", err)
	}

	events := f.publisher.Events()
	if len(events) != 2 {
		t.Fatalf("%d events published, want 2", len(events))
	}
	if events[0].Event != ws.EventCheckIn || events[1].Event != ws.EventCheckOut {
		t.Errorf("event sequence = %s, %s", events[0].Event, events[1].Event)
	}
	if events[0].ClassDate != "2026-08-24" {
		t.Errorf("event date = %s, want 2026-08-24", events[0].ClassDate)
	}
}

func TestCheckInUnknownMember(t *testing.T) {
	f := newRosterFixture(mondayClass(7), nil)

	_, err := f.service.CheckIn(context.Background(), 7, monday, 55, 100, false)
	if !errors.Is(err, ErrMemberNotFound) {
		t.Errorf("CheckIn error = %v, want ErrMemberNotFound", err)
	}
}

func TestCheckInStoreFailure(t *testing.T) {
	f := newRosterFixture(mondayClass(7), []model.Member{member(1, "Ana", "Souza")})
	f.attendance.createErr = errors.New("connection reset")

	_, err := f.service.CheckIn(context.Background(), 7, monday, 1, 100, false)
	if err == nil || errors.Is(err, ErrAlreadyCheckedIn) {
		t.Errorf("store failure should surface as a generic error, got %v", err)
	}
}
