package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/princeofverry/backend-tugas-akhir/internal/auth"
	"github.com/princeofverry/backend-tugas-akhir/internal/httpx"
)

// ListHandler handles GET /products (active catalog only).
// @Summary  List active products
// @Produce  json
// @Success  200 {array} Product
// @Router   /products [get]
func ListHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.ListActive(c.Request.Context())
		if err != nil {
			httpx.Internal(c, "could not list products", err)
			return
		}
		if items == nil {
			items = []Product{}
		}
		c.JSON(http.StatusOK, items)
	}
}

// GetHandler handles GET /products/:id.
func GetHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetActive(c.Request.Context(), c.Param("id"))
		if err != nil {
			httpx.Fail(c, http.StatusNotFound, "product not found")
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

// ListDeletedHandler handles GET /products/deleted, scoped to the calling seller.
func ListDeletedHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		items, err := repo.ListDeletedByOwner(c.Request.Context(), id.ID)
		if err != nil {
			httpx.Internal(c, "could not list deleted products", err)
			return
		}
		if items == nil {
			items = []Product{}
		}
		c.JSON(http.StatusOK, items)
	}
}

func validPrice(s string) bool {
	d, err := decimal.NewFromString(s)
	return err == nil && !d.IsNegative()
}

// CreateHandler handles POST /products. The caller becomes the owner.
// @Summary  Create a product
// @Accept   json
// @Produce  json
// @Param    body body CreateProductRequest true "product"
// @Success  201 {object} Product
// @Router   /products [post]
func CreateHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json body")
			return
		}
		if req.Name == "" || req.Price == "" || req.CategoryID == "" {
			httpx.Fail(c, http.StatusBadRequest, "name, price and category_id are required")
			return
		}
		if !validPrice(req.Price) || req.Stock < 0 {
			httpx.Fail(c, http.StatusBadRequest, "price must be a non-negative decimal and stock non-negative")
			return
		}
		p := &Product{
			ID:          uuid.NewString(),
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
			UserID:      id.ID,
			CategoryID:  req.CategoryID,
			ImageURL:    req.ImageURL,
		}
		if err := repo.Create(c.Request.Context(), p); err != nil {
			httpx.Internal(c, "could not create product", err)
			return
		}
		c.JSON(http.StatusCreated, p)
	}
}

// UpdateHandler handles PUT /products/:id. Owner-scoped, active rows only.
func UpdateHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httpx.Fail(c, http.StatusBadRequest, "invalid json body")
			return
		}
		if req.Stock < 0 {
			httpx.Fail(c, http.StatusBadRequest, "stock must be non-negative")
			return
		}
		updatePrice := req.Price != ""
		if updatePrice && !validPrice(req.Price) {
			httpx.Fail(c, http.StatusBadRequest, "price must be a non-negative decimal")
			return
		}
		p := &Product{
			ID:          c.Param("id"),
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Stock:       req.Stock,
			UserID:      id.ID,
			ImageURL:    req.ImageURL,
		}
		if err := repo.Update(c.Request.Context(), p, updatePrice); err != nil {
			if err == ErrNotFound {
				httpx.Fail(c, http.StatusNotFound, "product not found")
				return
			}
			httpx.Internal(c, "could not update product", err)
			return
		}
		c.JSON(http.StatusOK, httpx.Message{Message: "product updated"})
	}
}

// SoftDeleteHandler handles DELETE /products/:id.
func SoftDeleteHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err := repo.SoftDelete(c.Request.Context(), c.Param("id"), id.ID); err != nil {
			if err == ErrNotFound {
				httpx.Fail(c, http.StatusNotFound, "product not found")
				return
			}
			httpx.Internal(c, "could not delete product", err)
			return
		}
		c.JSON(http.StatusOK, httpx.Message{Message: "product moved to trash"})
	}
}

// RestoreHandler handles PUT /products/restore/:id.
func RestoreHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err := repo.Restore(c.Request.Context(), c.Param("id"), id.ID); err != nil {
			if err == ErrNotFound {
				httpx.Fail(c, http.StatusNotFound, "product not found")
				return
			}
			httpx.Internal(c, "could not restore product", err)
			return
		}
		c.JSON(http.StatusOK, httpx.Message{Message: "product restored"})
	}
}

// HardDeleteHandler handles DELETE /products/permanent/:id. Only products
// already in the trash can be removed for good.
func HardDeleteHandler(repo Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.IdentityFrom(c)
		if !ok {
			httpx.Fail(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err := repo.HardDelete(c.Request.Context(), c.Param("id"), id.ID); err != nil {
			switch err {
			case ErrStillActive:
				httpx.Fail(c, http.StatusBadRequest, "product must be soft-deleted first")
			case ErrNotFound:
				httpx.Fail(c, http.StatusNotFound, "product not found")
			default:
				httpx.Internal(c, "could not delete product", err)
			}
			return
		}
		c.JSON(http.StatusOK, httpx.Message{Message: "product permanently deleted"})
	}
}
