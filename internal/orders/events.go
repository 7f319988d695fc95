package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderCreated   = "OrderCreated"
	EventOrderPaid      = "OrderPaid"
	EventOrderCancelled = "OrderCancelled"
)

type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order_id
	Payload       json.RawMessage `json:"payload"`
}

// OrderEventPayload is shared by all three lifecycle events; the mailer
// picks subject and body from the envelope's event_type.
type OrderEventPayload struct {
	OrderID        string `json:"order_id"`
	BuyerName      string `json:"buyer_name,omitempty"`
	BuyerContact   string `json:"buyer_contact,omitempty"`
	Amount         int    `json:"amount"`
	Status         string `json:"status"`
	RedemptionCode string `json:"redemption_code,omitempty"`
}
