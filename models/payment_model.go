package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	MemberID    uuid.UUID `gorm:"not null;index" json:"member_id"`
	Amount      float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentDate time.Time `gorm:"type:date;not null" json:"payment_date"`

	// cash, card, upi, bank_transfer, stripe
	PaymentMethod string `gorm:"size:20;not null" json:"payment_method"`
	// membership_fee, registration_fee, other
	PaymentType string `gorm:"size:30;not null" json:"payment_type"`
	// pending, completed, failed
	Status string `gorm:"size:20;not null;default:'pending'" json:"status"`

	Notes           *string `gorm:"type:text" json:"notes"`
	StripePaymentID *string `gorm:"size:255;unique" json:"stripe_payment_id"`
	ReceiptNumber   *string `gorm:"size:20;unique" json:"receipt_number"`
	ReceiptURL      *string `gorm:"size:255" json:"receipt_url"`

	Member Member `gorm:"foreignkey:MemberID" json:"members,omitempty"`

	RecordedBy *uuid.UUID `json:"recorded_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
