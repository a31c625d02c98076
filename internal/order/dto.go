package order

// CheckoutRequest payload for creating an order from the caller's cart.
// swagger:model CheckoutRequest
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address" example:"Jl. Merdeka No. 1, Jakarta"`
}

// UpdateStatusRequest payload for the status transition endpoint.
// swagger:model UpdateStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"processing"`
}
