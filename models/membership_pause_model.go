package models

import (
	"time"

	"github.com/google/uuid"
)

type MembershipPause struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MemberID  uuid.UUID `gorm:"not null;index" json:"member_id"`
	StartDate time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate   time.Time `gorm:"type:date;not null" json:"end_date"`
	Reason    string    `gorm:"type:text;not null" json:"reason"`

	// approved, cancelled
	Status string `gorm:"size:20;not null;default:'approved'" json:"status"`

	OriginalEndDate time.Time `gorm:"type:date;not null" json:"original_end_date"`
	NewEndDate      time.Time `gorm:"type:date;not null" json:"new_end_date"`

	Member Member `gorm:"foreignkey:MemberID" json:"-"`

	CreatedBy  *uuid.UUID `json:"created_by"`
	ApprovedBy *uuid.UUID `json:"approved_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
