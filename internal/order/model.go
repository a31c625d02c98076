package order

import "time"

type Order struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"`
	// NUMERIC -> string; fixed at creation from the item snapshots
	TotalPrice      string    `json:"total_price"`
	Status          Status    `json:"status"`
	ShippingAddress string    `json:"shipping_address"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Item snapshots product name and unit price at checkout so later catalog
// edits or deletes cannot rewrite order history.
type Item struct {
	ID          string `json:"id"`
	OrderID     string `json:"order_id"`
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
}

type OrderWithItems struct {
	Order
	Items []Item `json:"items"`
}

// CartLine is one cart row joined with the live product at checkout time.
type CartLine struct {
	ProductID   string
	ProductName string
	Quantity    int
	Price       string
}
