package models

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceRecord struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MemberID uuid.UUID `gorm:"not null;index:idx_attendance_member_date,unique" json:"member_id"`
	Date     time.Time `gorm:"type:date;not null;index:idx_attendance_member_date,unique" json:"date"`

	// present, absent, late
	Status string  `gorm:"size:10;not null" json:"status"`
	Notes  *string `gorm:"type:text" json:"notes"`

	Member Member `gorm:"foreignkey:MemberID" json:"members,omitempty"`

	MarkedBy  *uuid.UUID `json:"marked_by"`
	UpdatedBy *uuid.UUID `json:"updated_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance"
}

var attendanceStatuses = map[string]bool{
	"present": true,
	"absent":  true,
	"late":    true,
}

func IsValidAttendanceStatus(status string) bool {
	return attendanceStatuses[status]
}
