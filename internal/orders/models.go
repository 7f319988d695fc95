package orders

import "time"

type Order struct {
	ID             string    `json:"id"`
	BuyerName      string    `json:"buyer_name"`
	BuyerContact   string    `json:"buyer_contact"`
	Amount         int       `json:"amount"`
	Status         Status    `json:"status"`
	RedemptionCode string    `json:"redemption_code"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// OrderItem freezes title and unit price at purchase time; later product
// edits do not reach past orders.
type OrderItem struct {
	ID            int    `json:"id"`
	OrderID       string `json:"order_id"`
	ProductID     int    `json:"product_id"`
	TitleSnapshot string `json:"title_snapshot"`
	UnitPrice     int    `json:"unit_price"`
	Quantity      int    `json:"quantity"`
	RedeemedQty   int    `json:"redeemed_qty"`
}

type OrderWithItems struct {
	Order
	Items []OrderItem `json:"items"`
}

// CartLine is one line of the intake payload.
type CartLine struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

type CreateOrderInput struct {
	BuyerName    string     `json:"buyerName"`
	BuyerContact string     `json:"buyerContact"`
	Items        []CartLine `json:"items"`
}

type RedeemLine struct {
	OrderItemID int `json:"orderItemId"`
	Quantity    int `json:"quantity"`
}
