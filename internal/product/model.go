package product

import "time"

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	// We store price as a string to avoid rounding errors (NUMERIC in Postgres)
	Price      string     `json:"price"`
	Stock      int        `json:"stock"`
	UserID     string     `json:"user_id"`
	CategoryID string     `json:"category_id"`
	ImageURL   *string    `json:"image_url,omitempty"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CreateProductRequest payload of creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Name        string  `json:"name"        example:"Mechanical Keyboard"`
	Description string  `json:"description" example:"RGB 60%"`
	Price       string  `json:"price"       example:"199.90"`
	Stock       int     `json:"stock"       example:"10"`
	CategoryID  string  `json:"category_id"`
	ImageURL    *string `json:"image_url"`
}

// UpdateProductRequest payload of partial update.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"image_url"`
}
