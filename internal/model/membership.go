package model

import "time"

// MembershipStatus is the lifecycle state of a membership.
type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "active"
	MembershipPaused    MembershipStatus = "paused"
	MembershipCancelled MembershipStatus = "cancelled"
)

// Membership links a member to a location under a membership type.
// Owned by the membership subsystem; this service only reads active rows.
type Membership struct {
	ID               int              `json:"id"`
	MemberID         int              `json:"member_id"`
	LocationID       int              `json:"location_id"`
	MembershipTypeID int              `json:"membership_type_id"`
	Status           MembershipStatus `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}
