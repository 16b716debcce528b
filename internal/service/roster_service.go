package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/tatamihq/tatami-backend/internal/model"
	"github.com/tatamihq/tatami-backend/internal/repository"
	ws "github.com/tatamihq/tatami-backend/internal/websocket"
)

// ClassDateLayout is the wire format for session dates.
const ClassDateLayout = "2006-01-02"

// RosterService computes class rosters and executes check-in/check-out
// commands against the attendance store.
type RosterService struct {
	schedule   *ScheduleService
	members    MemberStore
	attendance AttendanceStore
	events     RosterEventPublisher
	log        zerolog.Logger
}

// NewRosterService creates a new RosterService.
func NewRosterService(
	schedule *ScheduleService,
	members MemberStore,
	attendance AttendanceStore,
	events RosterEventPublisher,
	log zerolog.Logger,
) *RosterService {
	return &RosterService{
		schedule:   schedule,
		members:    members,
		attendance: attendance,
		events:     events,
		log:        log.With().Str("component", "roster_service").Logger(),
	}
}

// Roster resolves the eligible member set for a class session and overlays
// the attendance records for that date. Entries are ordered checked-in
// first, then by first and last name, so an instructor sees at a glance
// who is on the mat and who is missing.
func (s *RosterService) Roster(ctx context.Context, classID int, date time.Time) ([]model.RosterEntry, error) {
	class, err := s.schedule.Lookup(ctx, classID)
	if err != nil {
		return nil, err
	}

	// A class with no membership-type restriction is open to every active
	// member at its location.
	members, err := s.members.ListEligible(ctx, class.LocationID, class.MembershipTypeID)
	if err != nil {
		return nil, fmt.Errorf("list eligible members: %w", err)
	}

	records, err := s.attendance.ListByClassDate(ctx, classID, date)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	byMember := make(map[int]*model.Attendance, len(records))
	for i := range records {
		byMember[records[i].MemberID] = &records[i]
	}

	entries := make([]model.RosterEntry, 0, len(members))
	for _, m := range members {
		entry := model.RosterEntry{Member: m, Eligible: true}
		if rec, ok := byMember[m.ID]; ok {
			entry.CheckedIn = true
			t := rec.CheckedInAt
			entry.CheckInTime = &t
			id := rec.ID
			entry.RecordID = &id
			delete(byMember, m.ID)
		}
		entries = append(entries, entry)
	}

	// Leftover records belong to members who checked in but no longer match
	// the class's membership rules. Their attendance stays visible and
	// removable; it is never silently dropped from the roster.
	for _, rec := range byMember {
		m, err := s.members.GetByID(ctx, rec.MemberID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("get checked-in member: %w", err)
		}
		t := rec.CheckedInAt
		id := rec.ID
		entries = append(entries, model.RosterEntry{
			Member:      *m,
			CheckedIn:   true,
			CheckInTime: &t,
			RecordID:    &id,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CheckedIn != entries[j].CheckedIn {
			return entries[i].CheckedIn
		}
		if entries[i].Member.FirstName != entries[j].Member.FirstName {
			return entries[i].Member.FirstName < entries[j].Member.FirstName
		}
		return entries[i].Member.LastName < entries[j].Member.LastName
	})

	return entries, nil
}

// CheckIn records a member's attendance for a class session. A date whose
// weekday does not match the class schedule is rejected unless force is set
// (the handler only sets force for admins backfilling history). A concurrent
// duplicate surfaces as ErrAlreadyCheckedIn; the store's unique constraint
// is the authoritative de-duplication signal, there is no check-then-insert.
func (s *RosterService) CheckIn(ctx context.Context, classID int, date time.Time, memberID, checkedInBy int, force bool) (*model.Attendance, error) {
	class, err := s.schedule.Lookup(ctx, classID)
	if err != nil {
		return nil, err
	}

	if !class.IsScheduledOn(date) && !force {
		return nil, ErrNotScheduled
	}

	member, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}

	record := &model.Attendance{
		ClassID:     classID,
		MemberID:    memberID,
		ClassDate:   date,
		CheckedInBy: checkedInBy,
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("create attendance: %w", err)
	}

	s.events.Publish(ctx, ws.RosterEvent{
		Event:       ws.EventCheckIn,
		ClassID:     classID,
		ClassDate:   date.Format(ClassDateLayout),
		MemberID:    memberID,
		MemberName:  member.FirstName + " " + member.LastName,
		RecordID:    record.ID,
		CheckedInAt: record.CheckedInAt,
		ActorID:     checkedInBy,
	})

	return record, nil
}

// CheckOut removes an attendance record. The command is idempotent: a
// record that no longer exists is treated as already satisfied. The
// schedule is never consulted, so mismatched historical records stay
// removable.
func (s *RosterService) CheckOut(ctx context.Context, recordID int64, actorID int) error {
	record, err := s.attendance.GetByID(ctx, recordID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("get attendance: %w", err)
	}

	if err := s.attendance.Delete(ctx, recordID); err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}

	s.events.Publish(ctx, ws.RosterEvent{
		Event:     ws.EventCheckOut,
		ClassID:   record.ClassID,
		ClassDate: record.ClassDate.Format(ClassDateLayout),
		MemberID:  record.MemberID,
		RecordID:  record.ID,
		ActorID:   actorID,
	})

	return nil
}

// AttendanceCount returns how many sessions a member attended on or after
// the given date. Graders look at this before a stripe decision.
func (s *RosterService) AttendanceCount(ctx context.Context, memberID int, since time.Time) (int, error) {
	return s.attendance.CountByMemberSince(ctx, memberID, since)
}
