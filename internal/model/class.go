package model

import "time"

// Class represents a scheduled recurring class at a location.
// Weekday follows time.Weekday numbering (0 = Sunday).
// A nil MembershipTypeID means the class is open to every active member
// at the location.
type Class struct {
	ID               int       `json:"id"`
	LocationID       int       `json:"location_id"`
	Name             string    `json:"name"`
	Weekday          int       `json:"weekday"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	MembershipTypeID *int      `json:"membership_type_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// IsScheduledOn reports whether the class runs on the given date.
// This is the single weekday-matching helper; every call site that needs
// the mismatch check goes through it.
func (c *Class) IsScheduledOn(date time.Time) bool {
	return int(date.Weekday()) == c.Weekday
}
