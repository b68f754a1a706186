package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/anjiri1684/stackfit/payments"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStripePaymentFromIntent(t *testing.T) {
	now := time.Date(2024, time.January, 15, 10, 30, 0, 0, time.UTC)
	memberID := uuid.New()

	intent := payments.PaymentIntentObject{
		ID:       "pi_123",
		Amount:   5000,
		Currency: "usd",
		Metadata: map[string]string{
			"memberId":    memberID.String(),
			"paymentType": "registration_fee",
		},
	}

	payment, err := stripePaymentFromIntent(intent, now)
	require.NoError(t, err)

	assert.Equal(t, memberID, payment.MemberID)
	assert.Equal(t, 50.0, payment.Amount)
	assert.Equal(t, "stripe", payment.PaymentMethod)
	assert.Equal(t, "registration_fee", payment.PaymentType)
	assert.Equal(t, "completed", payment.Status)
	require.NotNil(t, payment.StripePaymentID)
	assert.Equal(t, "pi_123", *payment.StripePaymentID)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), payment.PaymentDate)
}

func TestStripePaymentFromIntentDefaultsPaymentType(t *testing.T) {
	intent := payments.PaymentIntentObject{
		ID:       "pi_123",
		Amount:   5000,
		Metadata: map[string]string{"memberId": uuid.New().String()},
	}

	payment, err := stripePaymentFromIntent(intent, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "membership_fee", payment.PaymentType)
}

func TestStripePaymentFromIntentRejectsBadMemberID(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
	}{
		{"no metadata", nil},
		{"missing memberId", map[string]string{"paymentType": "membership_fee"}},
		{"malformed memberId", map[string]string{"memberId": "not-a-uuid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := payments.PaymentIntentObject{ID: "pi_123", Amount: 5000, Metadata: tt.metadata}
			_, err := stripePaymentFromIntent(intent, time.Now())
			assert.EqualError(t, err, "Missing or invalid memberId in payment metadata")
		})
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"translated gorm error", gorm.ErrDuplicatedKey, true},
		{"wrapped translated error", fmt.Errorf("create failed: %w", gorm.ErrDuplicatedKey), true},
		{"raw postgres message", fmt.Errorf(`ERROR: duplicate key value violates unique constraint "payments_stripe_payment_id_key" (SQLSTATE 23505)`), true},
		{"unrelated error", fmt.Errorf("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isDuplicateKeyError(tt.err))
		})
	}
}

func TestParseEventDate(t *testing.T) {
	got, err := parseEventDate("2024-06-01T18:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 1, 18, 0, 0, 0, time.UTC), got)

	got, err = parseEventDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = parseEventDate("June 1st")
	assert.Error(t, err)
}
