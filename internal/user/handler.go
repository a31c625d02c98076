package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/princeofverry/backend-tugas-akhir/internal/auth"
	"github.com/princeofverry/backend-tugas-akhir/internal/httpx"
)

// RegisterHandler handles POST /auth/register.
// @Summary  Register a new account
// @Accept   json
// @Produce  json
// @Param    body body RegisterRequest true "account"
// @Success  201 {object} httpx.Message
// @Router   /auth/register [post]
func RegisterHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json body")
			return
		}
		if req.Name == "" || req.Email == "" || req.Password == "" {
			httpx.Fail(c, http.StatusBadRequest, "name, email and password are required")
			return
		}
		role, err := auth.ParseRole(req.Role)
		if err != nil {
			httpx.Fail(c, http.StatusBadRequest, "unknown role")
			return
		}
		hash, err := HashPassword(req.Password)
		if err != nil {
			httpx.Internal(c, "registration failed", err)
			return
		}
		u := &User{
			ID:           uuid.NewString(),
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
			Role:         role,
		}
		if err := repo.Create(c.Request.Context(), u); err != nil {
			httpx.Internal(c, "registration failed", err)
			return
		}
		c.JSON(http.StatusCreated, httpx.Message{Message: "registration successful"})
	}
}

// LoginHandler handles POST /auth/login.
// @Summary  Log in and receive a bearer token
// @Accept   json
// @Produce  json
// @Param    body body LoginRequest true "credentials"
// @Success  200 {object} map[string]string
// @Router   /auth/login [post]
func LoginHandler(repo Repository, tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json body")
			return
		}
		u, err := repo.GetByEmail(c.Request.Context(), req.Email)
		if err != nil {
			if err == ErrNotFound {
				httpx.Fail(c, http.StatusNotFound, "user not found")
				return
			}
			httpx.Internal(c, "login failed", err)
			return
		}
		if !CheckPassword(u.PasswordHash, req.Password) {
			httpx.Fail(c, http.StatusUnauthorized, "wrong password")
			return
		}
		token, err := tokens.Sign(auth.Identity{ID: u.ID, Email: u.Email, Role: u.Role})
		if err != nil {
			httpx.Internal(c, "login failed", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// ListHandler handles GET /auth/users with an optional ?role= filter.
func ListHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := repo.List(c.Request.Context(), c.Query("role"))
		if err != nil {
			httpx.Internal(c, "could not list users", err)
			return
		}
		if users == nil {
			users = []User{}
		}
		c.JSON(http.StatusOK, users)
	}
}
