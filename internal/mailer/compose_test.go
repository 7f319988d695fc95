package mailer

import (
	"testing"

	"github.com/roahoki/biomechanics-website-sub001/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payload = orders.OrderEventPayload{
	OrderID:        "2f1f2c1e-9a6b-4f3e-8c86-000000000000",
	BuyerName:      "Ana",
	BuyerContact:   "ana@example.com",
	Amount:         17000,
	RedemptionCode: "code-123",
}

func TestComposeCreated(t *testing.T) {
	subject, body, ok := Compose(orders.EventOrderCreated, payload)
	require.True(t, ok)
	assert.Contains(t, subject, "2f1f2c1e")
	assert.Contains(t, body, "Ana")
	assert.Contains(t, body, "17000")
	assert.Contains(t, body, "code-123")
}

func TestComposePaid(t *testing.T) {
	subject, body, ok := Compose(orders.EventOrderPaid, payload)
	require.True(t, ok)
	assert.Contains(t, subject, "confirmed")
	assert.Contains(t, body, "code-123")
}

func TestComposeCancelled(t *testing.T) {
	subject, body, ok := Compose(orders.EventOrderCancelled, payload)
	require.True(t, ok)
	assert.Contains(t, subject, "cancelled")
	assert.NotContains(t, body, "code-123")
}

func TestComposeUnknownEvent(t *testing.T) {
	_, _, ok := Compose("SensorReading", payload)
	assert.False(t, ok)
}

func TestComposeFallbackGreeting(t *testing.T) {
	p := payload
	p.BuyerName = ""
	_, body, ok := Compose(orders.EventOrderCreated, p)
	require.True(t, ok)
	assert.Contains(t, body, "Hi there")
}
