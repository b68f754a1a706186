package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Member struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name           string     `gorm:"size:255;not null" json:"name"`
	Email          string     `gorm:"size:255;not null;unique" json:"email"`
	Phone          string     `gorm:"size:30;not null" json:"phone"`
	Password       *string    `gorm:"size:255" json:"-"`
	Address        *string    `gorm:"type:text" json:"address"`
	MembershipType *uuid.UUID `json:"membership_type"`

	StartDate *time.Time `gorm:"type:date" json:"start_date"`
	EndDate   *time.Time `gorm:"type:date" json:"end_date"`

	// pending (self registration), pending_payment, active, inactive, expired
	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	IsPaused       bool       `gorm:"not null;default:false" json:"is_paused"`
	CurrentPauseID *uuid.UUID `json:"current_pause_id"`

	EmergencyContact datatypes.JSON `json:"emergency_contact"`
	Age              *int           `json:"age"`
	Gender           *string        `gorm:"size:20" json:"gender"`
	DateOfBirth      *time.Time     `gorm:"type:date" json:"date_of_birth"`
	MedicalHistory   *string        `gorm:"type:text" json:"medical_history"`

	LastNotificationSent *time.Time `json:"last_notification_sent"`

	Plan       *MembershipPlan    `gorm:"foreignkey:MembershipType" json:"memberships,omitempty"`
	Payments   []Payment          `gorm:"foreignkey:MemberID" json:"payments,omitempty"`
	Attendance []AttendanceRecord `gorm:"foreignkey:MemberID" json:"attendance,omitempty"`

	CreatedBy *uuid.UUID `json:"created_by"`
	UpdatedBy *uuid.UUID `json:"updated_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
