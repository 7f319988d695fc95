package catalog

import "time"

type ProductType string

const (
	TypeTicket ProductType = "ticket"
	TypeItem   ProductType = "item"
)

type StockType string

const (
	// StockQuantity: stock_value is a finite remaining count.
	StockQuantity StockType = "quantity"
	// StockBoolean: stock_value is a 0/1 availability flag.
	StockBoolean StockType = "boolean"
)

type Product struct {
	ID          int         `json:"id"`
	Title       string      `json:"title"`
	Type        ProductType `json:"type"`
	Price       int         `json:"price"`
	Visible     bool        `json:"visible"`
	StockType   StockType   `json:"stock_type"`
	StockValue  int         `json:"stock_value"`
	MaxPerOrder *int        `json:"max_per_order,omitempty"`
	IsYogaAddOn bool        `json:"is_yoga_add_on"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// Available reports whether a boolean-stock product can be ordered.
func (p Product) Available() bool {
	return p.StockValue != 0
}
