package model

import "time"

// Promotion is one immutable entry of the grading ledger. Rows are appended
// by the promotion engine and never mutated or deleted; the newest row for a
// member defines their current rank.
type Promotion struct {
	ID              int64     `json:"id"`
	MemberID        int       `json:"member_id"`
	ClassID         int       `json:"class_id"`
	PreviousBelt    Belt      `json:"previous_belt"`
	PreviousStripes int       `json:"previous_stripes"`
	NewBelt         Belt      `json:"new_belt"`
	NewStripes      int       `json:"new_stripes"`
	IsAdvancement   bool      `json:"is_advancement"`
	Comments        string    `json:"comments,omitempty"`
	GradedBy        int       `json:"graded_by"`
	CreatedAt       time.Time `json:"created_at"`
}
