package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/princeofverry/backend-tugas-akhir/internal/auth"
	"github.com/princeofverry/backend-tugas-akhir/internal/httpx"
)

// CheckoutHandler handles POST /orders.
// @Summary  Create an order from the caller's cart
// @Accept   json
// @Produce  json
// @Param    body body CheckoutRequest true "shipping"
// @Success  201 {object} map[string]any
// @Failure  400 {object} httpx.Message "empty cart"
// @Router   /orders [post]
func CheckoutHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json body")
			return
		}
		orderID, err := svc.Checkout(c.Request.Context(), id.ID, req.ShippingAddress)
		if err != nil {
			if err == ErrEmptyCart {
				httpx.Fail(c, http.StatusBadRequest, "cart is empty")
				return
			}
			httpx.Internal(c, "could not create order", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "order created", "orderId": orderID})
	}
}

// ListHandler handles GET /orders (caller's orders, newest first).
func ListHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		orders, err := svc.ListByUser(c.Request.Context(), id.ID)
		if err != nil {
			httpx.Internal(c, "could not list orders", err)
			return
		}
		if orders == nil {
			orders = []Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetHandler handles GET /orders/:id. Foreign orders read as not found.
func GetHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		o, err := svc.GetOwned(c.Request.Context(), c.Param("id"), id.ID)
		if err != nil {
			if err == ErrNotFound {
				httpx.Fail(c, http.StatusNotFound, "order not found")
				return
			}
			httpx.Internal(c, "could not read order", err)
			return
		}
		c.JSON(http.StatusOK, o)
	}
}

// DetailHandler handles GET /orders/detail: caller's orders with items
// pre-joined and grouped.
func DetailHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		orders, err := svc.ListWithItemsByUser(c.Request.Context(), id.ID)
		if err != nil {
			httpx.Internal(c, "could not list orders", err)
			return
		}
		if orders == nil {
			orders = []OrderWithItems{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

// AllHandler handles GET /orders/all across every user (seller/admin only;
// the role gate sits in the route wiring).
func AllHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAllWithItems(c.Request.Context())
		if err != nil {
			httpx.Internal(c, "could not list orders", err)
			return
		}
		if orders == nil {
			orders = []OrderWithItems{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

// UpdateStatusHandler handles PATCH /orders/:id/status.
func UpdateStatusHandler(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json body")
			return
		}
		err := svc.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
		if err != nil {
			switch err {
			case ErrInvalidStatus:
				httpx.Fail(c, http.StatusBadRequest, "invalid status value")
			case ErrNotFound:
				httpx.Fail(c, http.StatusNotFound, "order not found")
			default:
				httpx.Internal(c, "could not update status", err)
			}
			return
		}
		c.JSON(http.StatusOK, httpx.Message{Message: "order status updated"})
	}
}
