package model

import "time"

// Attendance records a member's check-in to a class session on a date.
// Rows are created by check-in and deleted by check-out, never updated.
// The database enforces at most one row per (class_id, member_id, class_date).
type Attendance struct {
	ID          int64     `json:"id"`
	ClassID     int       `json:"class_id"`
	MemberID    int       `json:"member_id"`
	ClassDate   time.Time `json:"class_date"`
	CheckedInAt time.Time `json:"checked_in_at"`
	CheckedInBy int       `json:"checked_in_by"`
}

// RosterEntry is one line of a class roster: a member overlaid with their
// check-in state for the session date. Eligible is false for a member who
// holds a check-in record but no longer matches the class's membership
// rules; the record stays visible and removable.
type RosterEntry struct {
	Member      Member     `json:"member"`
	Eligible    bool       `json:"eligible"`
	CheckedIn   bool       `json:"checked_in"`
	CheckInTime *time.Time `json:"check_in_time,omitempty"`
	RecordID    *int64     `json:"record_id,omitempty"`
}
