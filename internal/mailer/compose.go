package mailer

import (
	"fmt"

	"github.com/roahoki/biomechanics-website-sub001/internal/orders"
)

// Compose renders subject and plain-text body for a lifecycle event.
// Unknown event types return ok=false and are skipped.
func Compose(eventType string, p orders.OrderEventPayload) (subject, body string, ok bool) {
	name := p.BuyerName
	if name == "" {
		name = "there"
	}
	switch eventType {
	case orders.EventOrderCreated:
		subject = fmt.Sprintf("Your biomechanics.wav order %s", shortID(p.OrderID))
		body = fmt.Sprintf(
			"Hi %s,\n\nWe received your order for a total of %d.\n\n"+
				"Redemption code: %s\n\n"+
				"We'll confirm it as soon as your payment arrives.\n",
			name, p.Amount, p.RedemptionCode)
	case orders.EventOrderPaid:
		subject = fmt.Sprintf("Order %s confirmed", shortID(p.OrderID))
		body = fmt.Sprintf(
			"Hi %s,\n\nYour payment of %d is confirmed. Show your redemption code at the event:\n\n%s\n",
			name, p.Amount, p.RedemptionCode)
	case orders.EventOrderCancelled:
		subject = fmt.Sprintf("Order %s cancelled", shortID(p.OrderID))
		body = fmt.Sprintf("Hi %s,\n\nYour order %s has been cancelled.\n", name, p.OrderID)
	default:
		return "", "", false
	}
	return subject, body, true
}

// first uuid segment is enough for a subject line
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
