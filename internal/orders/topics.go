package orders

// All lifecycle events share one topic; consumers switch on the envelope's
// event_type.
const TopicOrderEvents = "order.events"

// Partition key = order_id so events for one order stay ordered.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
