package model

import "time"

// Member represents a gym member profile. Belt and stripes are a cached view
// of the newest promotions row; the ledger is the source of truth.
type Member struct {
	ID              int        `json:"id"`
	ExternalRef     string     `json:"external_ref"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	Program         Program    `json:"program"`
	Belt            Belt       `json:"belt"`
	Stripes         int        `json:"stripes"`
	LastPromotionID *int64     `json:"last_promotion_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Rank returns the member's cached current rank.
func (m *Member) Rank() Rank {
	return Rank{Program: m.Program, Belt: m.Belt, Stripes: m.Stripes}
}
