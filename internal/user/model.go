package user

import (
	"time"

	"github.com/princeofverry/backend-tugas-akhir/internal/auth"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// RegisterRequest payload.
// swagger:model RegisterRequest
type RegisterRequest struct {
	Name     string `json:"name"     example:"Verry"`
	Email    string `json:"email"    example:"verry@example.com"`
	Password string `json:"password" example:"secret123"`
	Role     string `json:"role"     example:"penjual"`
}

// LoginRequest payload.
// swagger:model LoginRequest
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
