package model

import (
	"time"
)

// Lead statuses form a closed set at the validation layer; the column
// itself stores plain text.
const (
	LeadStatusNew        = "New"
	LeadStatusInterested = "Interested"
	LeadStatusInProgress = "In Progress"
	LeadStatusClosed     = "Closed"
	LeadStatusLost       = "Lost"
)

// LeadStatuses lists all accepted lead status values
var LeadStatuses = []string{
	LeadStatusNew,
	LeadStatusInterested,
	LeadStatusInProgress,
	LeadStatusClosed,
	LeadStatusLost,
}

// IsValidLeadStatus reports whether the given value is an accepted lead status
func IsValidLeadStatus(status string) bool {
	for _, s := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Lead represents a prospective customer record
type Lead struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null;index"`
	Company   string    `json:"company" gorm:"type:varchar(100);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone     *string   `json:"phone" gorm:"type:varchar(50)"`
	Status    string    `json:"status" gorm:"type:varchar(20);default:'New';index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
