package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

func signPayload(t *testing.T, payload []byte, secret string, timestamp int64) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	return fmt.Sprintf("t=%d,v1=%s", timestamp, hex.EncodeToString(mac.Sum(nil)))
}

func TestConstructWebhookEventValidSignature(t *testing.T) {
	payload := []byte(`{
		"id": "evt_123",
		"type": "payment_intent.succeeded",
		"data": {
			"object": {
				"id": "pi_123",
				"amount": 5000,
				"currency": "usd",
				"metadata": {"member_id": "abc", "payment_type": "membership_fee"}
			}
		}
	}`)
	header := signPayload(t, payload, testWebhookSecret, time.Now().Unix())

	event, err := ConstructWebhookEvent(payload, header, testWebhookSecret)
	require.NoError(t, err)

	assert.Equal(t, "evt_123", event.ID)
	assert.Equal(t, "payment_intent.succeeded", event.Type)
	assert.Equal(t, "pi_123", event.Data.Object.ID)
	assert.Equal(t, int64(5000), event.Data.Object.Amount)
	assert.Equal(t, "membership_fee", event.Data.Object.Metadata["payment_type"])
}

func TestConstructWebhookEventWrongSecret(t *testing.T) {
	payload := []byte(`{"id": "evt_123", "type": "payment_intent.succeeded"}`)
	header := signPayload(t, payload, "whsec_wrong", time.Now().Unix())

	_, err := ConstructWebhookEvent(payload, header, testWebhookSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConstructWebhookEventTamperedPayload(t *testing.T) {
	payload := []byte(`{"id": "evt_123", "type": "payment_intent.succeeded"}`)
	header := signPayload(t, payload, testWebhookSecret, time.Now().Unix())

	tampered := []byte(`{"id": "evt_999", "type": "payment_intent.succeeded"}`)
	_, err := ConstructWebhookEvent(tampered, header, testWebhookSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConstructWebhookEventExpiredTimestamp(t *testing.T) {
	payload := []byte(`{"id": "evt_123", "type": "payment_intent.succeeded"}`)
	stale := time.Now().Add(-10 * time.Minute).Unix()
	header := signPayload(t, payload, testWebhookSecret, stale)

	_, err := ConstructWebhookEvent(payload, header, testWebhookSecret)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestConstructWebhookEventMalformedHeader(t *testing.T) {
	payload := []byte(`{"id": "evt_123"}`)

	tests := []struct {
		name   string
		header string
	}{
		{"empty header", ""},
		{"missing timestamp", "v1=deadbeef"},
		{"missing signature", fmt.Sprintf("t=%d", time.Now().Unix())},
		{"garbage timestamp", "t=notanumber,v1=deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ConstructWebhookEvent(payload, tt.header, testWebhookSecret)
			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}

func TestConstructWebhookEventAcceptsSecondSignature(t *testing.T) {
	// Stripe sends multiple v1 entries during secret rotation; any valid
	// one passes.
	payload := []byte(`{"id": "evt_123", "type": "payment_intent.succeeded"}`)
	timestamp := time.Now().Unix()

	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	valid := hex.EncodeToString(mac.Sum(nil))
	header := fmt.Sprintf("t=%d,v1=%s,v1=%s", timestamp, "00deadbeef", valid)

	event, err := ConstructWebhookEvent(payload, header, testWebhookSecret)
	require.NoError(t, err)
	assert.Equal(t, "evt_123", event.ID)
}
