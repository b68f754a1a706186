package models

import (
	"time"

	"github.com/google/uuid"
)

type Permission struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"size:100;not null;unique" json:"name"`

	CreatedAt time.Time `json:"created_at"`
}

type RolePermission struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Role         string    `gorm:"size:20;not null;index" json:"role"`
	PermissionID uuid.UUID `gorm:"not null" json:"permission_id"`

	Permission Permission `gorm:"foreignkey:PermissionID" json:"permission"`

	CreatedAt time.Time `json:"created_at"`
}
