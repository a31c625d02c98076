package cart

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/princeofverry/backend-tugas-akhir/internal/auth"
	"github.com/princeofverry/backend-tugas-akhir/internal/httpx"
)

// ListHandler handles GET /carts for the calling user.
// @Summary  List the caller's cart
// @Produce  json
// @Success  200 {array} Line
// @Router   /carts [get]
func ListHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		lines, err := repo.List(c.Request.Context(), id.ID)
		if err != nil {
			httpx.Internal(c, "could not read cart", err)
			return
		}
		if lines == nil {
			lines = []Line{}
		}
		c.JSON(http.StatusOK, lines)
	}
}

// AddHandler handles POST /carts.
func AddHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json body")
			return
		}
		if req.ProductID == "" || req.Quantity <= 0 {
			httpx.Fail(c, http.StatusBadRequest, "product_id and a positive quantity are required")
			return
		}
		if err := repo.Add(c.Request.Context(), id.ID, req.ProductID, req.Quantity); err != nil {
			httpx.Internal(c, "could not add to cart", err)
			return
		}
		c.JSON(http.StatusCreated, httpx.Message{Message: "item added to cart"})
	}
}

// RemoveHandler handles DELETE /carts/:id.
func RemoveHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err := repo.Remove(c.Request.Context(), c.Param("id"), id.ID); err != nil {
			httpx.Internal(c, "could not remove item", err)
			return
		}
		c.JSON(http.StatusOK, httpx.Message{Message: "item removed from cart"})
	}
}
