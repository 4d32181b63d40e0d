package model

import (
	"time"
)

const (
	InteractionTypeCall    = "Call"
	InteractionTypeEmail   = "Email"
	InteractionTypeMeeting = "Meeting"
)

// InteractionTypes lists all accepted interaction type values
var InteractionTypes = []string{
	InteractionTypeCall,
	InteractionTypeEmail,
	InteractionTypeMeeting,
}

// IsValidInteractionType reports whether the given value is an accepted interaction type
func IsValidInteractionType(interactionType string) bool {
	for _, t := range InteractionTypes {
		if t == interactionType {
			return true
		}
	}
	return false
}

// Interaction represents a logged contact event belonging to exactly one lead.
// The cascade constraint is the backstop for concurrent deletes; the delete
// handler removes dependents explicitly in the same transaction.
type Interaction struct {
	ID              uint      `json:"id" gorm:"primarykey"`
	LeadID          uint      `json:"lead_id" gorm:"index;not null"`
	InteractionType string    `json:"interaction_type" gorm:"type:varchar(20);not null"`
	Notes           *string   `json:"notes" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at"`

	Lead Lead `json:"-" gorm:"foreignKey:LeadID;constraint:OnDelete:CASCADE"`
}
