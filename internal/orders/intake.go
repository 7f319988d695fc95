package orders

import (
	"errors"
	"fmt"

	"github.com/roahoki/biomechanics-website-sub001/internal/catalog"
)

var (
	ErrInvalid  = errors.New("invalid order")
	ErrNotFound = errors.New("order not found")
	// ErrConflict marks a lifecycle transition that lost to an earlier one,
	// e.g. confirming an already-paid order.
	ErrConflict = errors.New("order state conflict")
)

// Line is a validated cart line bound to its product.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// ValidateCart checks cart lines against catalog rules and outstanding
// commitments. products holds every product referenced by the cart;
// committed holds, per product id, the quantity already claimed by orders
// still in created state. Quantities below 1 are clamped to 1. Returns the
// normalized lines (one per cart line, duplicates preserved) and the order
// total. Any failure leaves nothing to write: callers only persist on nil
// error.
func ValidateCart(items []CartLine, products map[int]catalog.Product, committed map[int]int) ([]Line, int, error) {
	if len(items) == 0 {
		return nil, 0, fmt.Errorf("%w: empty cart", ErrInvalid)
	}

	lines := make([]Line, 0, len(items))
	requested := map[int]int{}
	total := 0

	for _, it := range items {
		if it.ProductID == 0 {
			return nil, 0, fmt.Errorf("%w: item is missing productId", ErrInvalid)
		}
		p, ok := products[it.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: unknown product %d", ErrInvalid, it.ProductID)
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		if p.MaxPerOrder != nil && qty > *p.MaxPerOrder {
			return nil, 0, fmt.Errorf("%w: %q allows at most %d per order", ErrInvalid, p.Title, *p.MaxPerOrder)
		}
		if p.StockType == catalog.StockBoolean && !p.Available() {
			return nil, 0, fmt.Errorf("%w: %q is not available", ErrInvalid, p.Title)
		}
		requested[p.ID] += qty
		total += p.Price * qty
		lines = append(lines, Line{Product: p, Quantity: qty})
	}

	// Stock caps are checked on the aggregated request so duplicate lines
	// for one product cannot slip under the cap one line at a time. The
	// yoga add-on keeps its legacy aggregate cap even when its stock_type
	// is boolean.
	for pid, qty := range requested {
		p := products[pid]
		capped := p.StockType == catalog.StockQuantity || p.IsYogaAddOn
		if !capped {
			continue
		}
		remaining := p.StockValue - committed[pid]
		if remaining < 0 {
			remaining = 0
		}
		if qty > remaining {
			return nil, 0, fmt.Errorf("%w: insufficient stock for %q: %d left", ErrInvalid, p.Title, remaining)
		}
	}

	return lines, total, nil
}
