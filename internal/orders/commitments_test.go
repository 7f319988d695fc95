package orders

import (
	"testing"

	"github.com/roahoki/biomechanics-website-sub001/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockDecrements(t *testing.T) {
	decs := StockDecrements([]ItemStock{
		{ProductID: 1, Quantity: 2, StockType: catalog.StockQuantity},
		{ProductID: 1, Quantity: 1, StockType: catalog.StockQuantity},
		{ProductID: 2, Quantity: 3, StockType: catalog.StockBoolean},
	})
	assert.Equal(t, map[int]int{1: 3}, decs)
}

func TestStockDecrementsEmpty(t *testing.T) {
	assert.Empty(t, StockDecrements(nil))
	assert.Empty(t, StockDecrements([]ItemStock{
		{ProductID: 2, Quantity: 1, StockType: catalog.StockBoolean},
	}))
}

func TestCommitsAgainstCap(t *testing.T) {
	tests := []struct {
		status    Status
		stockType catalog.StockType
		want      bool
	}{
		{StatusCreated, catalog.StockQuantity, true},
		{StatusCreated, catalog.StockBoolean, true},
		// paid quantity stock is already decremented; paid boolean is not
		{StatusPaid, catalog.StockQuantity, false},
		{StatusPaid, catalog.StockBoolean, true},
		{StatusCancelled, catalog.StockQuantity, false},
		{StatusCancelled, catalog.StockBoolean, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CommitsAgainstCap(tt.status, tt.stockType),
			"%s/%s", tt.status, tt.stockType)
	}
}

// simOrder mirrors one persisted order for accounting checks: per-product
// quantities plus the lifecycle status.
type simOrder struct {
	status Status
	items  map[int]int
}

func committedFor(products map[int]catalog.Product, existing []simOrder) map[int]int {
	out := map[int]int{}
	for _, o := range existing {
		for pid, qty := range o.items {
			if CommitsAgainstCap(o.status, products[pid].StockType) {
				out[pid] += qty
			}
		}
	}
	return out
}

func stockAfterConfirm(p catalog.Product, o simOrder) int {
	var items []ItemStock
	for pid, qty := range o.items {
		if pid == p.ID {
			items = append(items, ItemStock{ProductID: pid, Quantity: qty, StockType: p.StockType})
		}
	}
	left := p.StockValue - StockDecrements(items)[p.ID]
	if left < 0 {
		left = 0
	}
	return left
}

func TestConfirmDecrementsQuantityStock(t *testing.T) {
	p := catalog.Product{ID: 1, Title: "Fiesta ticket", StockType: catalog.StockQuantity, StockValue: 5}
	o := simOrder{status: StatusPaid, items: map[int]int{1: 2}}

	assert.Equal(t, 3, stockAfterConfirm(p, o))
	// once paid, the order no longer counts against the cap
	assert.Empty(t, committedFor(map[int]catalog.Product{1: p}, []simOrder{o}))
}

func TestCancelLeavesStockAlone(t *testing.T) {
	p := catalog.Product{ID: 1, StockType: catalog.StockQuantity, StockValue: 5}
	products := map[int]catalog.Product{1: p}

	// a cancelled created order neither decrements nor claims stock
	o := simOrder{status: StatusCancelled, items: map[int]int{1: 2}}
	assert.Empty(t, committedFor(products, []simOrder{o}))

	_, _, err := ValidateCart([]CartLine{{ProductID: 1, Quantity: 5}}, products, committedFor(products, []simOrder{o}))
	assert.NoError(t, err)
}

func TestBooleanYogaCapHeldAcrossConfirm(t *testing.T) {
	yoga := catalog.Product{ID: 5, Title: "Yoga add-on", Price: 5000,
		StockType: catalog.StockBoolean, StockValue: 1, IsYogaAddOn: true}
	products := map[int]catalog.Product{5: yoga}
	cart := []CartLine{{ProductID: 5, Quantity: 1}}

	// first order takes the only unit
	first := simOrder{status: StatusCreated, items: map[int]int{5: 1}}
	_, _, err := ValidateCart(cart, products, committedFor(products, nil))
	require.NoError(t, err)

	// while the first order is pending, a second is rejected
	_, _, err = ValidateCart(cart, products, committedFor(products, []simOrder{first}))
	assert.ErrorIs(t, err, ErrInvalid)

	// confirming the first order does not touch boolean stock, and the
	// paid order must keep its claim: still rejected
	first.status = StatusPaid
	assert.Equal(t, 1, stockAfterConfirm(yoga, first))
	_, _, err = ValidateCart(cart, products, committedFor(products, []simOrder{first}))
	assert.ErrorIs(t, err, ErrInvalid)

	// only cancellation releases the unit
	first.status = StatusCancelled
	_, _, err = ValidateCart(cart, products, committedFor(products, []simOrder{first}))
	assert.NoError(t, err)
}
