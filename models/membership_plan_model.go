package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type MembershipPlan struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string         `gorm:"size:255;not null;unique" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Duration    int            `gorm:"not null" json:"duration"`
	Price       float64        `gorm:"type:numeric(10,2);not null" json:"price"`
	Features    datatypes.JSON `gorm:"type:jsonb;default:'[]'" json:"features"`
	Status      string         `gorm:"size:20;not null;default:'active'" json:"status"`

	Members []Member `gorm:"foreignkey:MembershipType" json:"members,omitempty"`

	CreatedBy *uuid.UUID `json:"created_by"`
	UpdatedBy *uuid.UUID `json:"updated_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (MembershipPlan) TableName() string {
	return "memberships"
}
