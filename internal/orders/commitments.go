package orders

import "github.com/roahoki/biomechanics-website-sub001/internal/catalog"

// ItemStock pairs an ordered quantity with its product's stock policy.
type ItemStock struct {
	ProductID int
	Quantity  int
	StockType catalog.StockType
}

// StockDecrements returns, per product, how much stock a confirm takes.
// Only quantity-type stock is decremented; boolean stock stays a flag.
// Cancelling never calls this: stock is not restored.
func StockDecrements(items []ItemStock) map[int]int {
	out := map[int]int{}
	for _, it := range items {
		if it.StockType == catalog.StockQuantity {
			out[it.ProductID] += it.Quantity
		}
	}
	return out
}

// CommitsAgainstCap reports whether an order in status st still claims
// stock of a product with the given stock policy. Created orders always
// claim. Paid orders claim only while their stock was never decremented
// (boolean stock); for quantity stock the confirm decrement already
// accounts for them. Cancelled orders release their claim.
//
// The committed-quantity query in CreateOrder must stay in sync with
// this predicate.
func CommitsAgainstCap(st Status, stockType catalog.StockType) bool {
	switch st {
	case StatusCreated:
		return true
	case StatusPaid:
		return stockType == catalog.StockBoolean
	}
	return false
}
