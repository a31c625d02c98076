package cart

// Line is a cart row joined with the live product: price and total reflect
// the catalog at read time, not at a later checkout.
type Line struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Total    string `json:"total"`
}

// AddItemRequest payload.
// swagger:model AddItemRequest
type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity" example:"2"`
}
