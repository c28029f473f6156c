package models

import "time"

// UserRelationship holds one user's side of the friend graph: who they are
// friends with, who they have asked, and who has asked them. Rows are
// created lazily on the first mutation that touches a user, so a missing
// row just means "no relationships yet" — it says nothing about whether
// the account itself exists (that is the users table's job).
//
// Invariants maintained by the relationship service:
//   - friends is symmetric across rows
//   - b ∈ a.requests_sent ⇔ a ∈ b.requests_received
//   - a pair is never simultaneously friends and pending
type UserRelationship struct {
	UID              string `gorm:"primaryKey;size:128"`
	Friends          IDSet  `gorm:"type:jsonb;not null;default:'[]'"`
	RequestsSent     IDSet  `gorm:"type:jsonb;not null;default:'[]'"`
	RequestsReceived IDSet  `gorm:"type:jsonb;not null;default:'[]'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the table name singular-owner plural-rows like the rest
// of the schema.
func (UserRelationship) TableName() string {
	return "user_relationships"
}
