package redisx

import "time"

const (
	// Cached GET /api/orders/{id} payload: order:{order_id} -> JSON body.
	// Dropped on every lifecycle transition and redemption.
	KeyOrderCache = "order:%s"

	// Resolved role claim: role:{subject} -> role string.
	KeyRole = "role:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLOrderCache = 5 * time.Minute
	TTLDedup      = 48 * time.Hour
)
