package product

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/princeofverry/backend-tugas-akhir/internal/auth"
)

//
// ===== in-memory stub implementing Repository =====
//

type stubRepo struct {
	items map[string]*Product
}

func newStubRepo() *stubRepo { return &stubRepo{items: make(map[string]*Product)} }

func (s *stubRepo) seed(p Product) *Product {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = time.Now().UTC()
	p.UpdatedAt = p.CreatedAt
	s.items[p.ID] = &p
	return &p
}

func (s *stubRepo) ListActive(ctx context.Context) ([]Product, error) {
	var out []Product
	for _, p := range s.items {
		if p.DeletedAt == nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubRepo) GetActive(ctx context.Context, id string) (*Product, error) {
	p, ok := s.items[id]
	if !ok || p.DeletedAt != nil {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *stubRepo) ListDeletedByOwner(ctx context.Context, ownerID string) ([]Product, error) {
	var out []Product
	for _, p := range s.items {
		if p.DeletedAt != nil && p.UserID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubRepo) Create(ctx context.Context, p *Product) error {
	cp := *p
	cp.CreatedAt = time.Now().UTC()
	cp.UpdatedAt = cp.CreatedAt
	s.items[p.ID] = &cp
	return nil
}

func (s *stubRepo) Update(ctx context.Context, p *Product, updatePrice bool) error {
	cur, ok := s.items[p.ID]
	if !ok || cur.DeletedAt != nil || cur.UserID != p.UserID {
		return ErrNotFound
	}
	if p.Name != "" {
		cur.Name = p.Name
	}
	if p.Description != "" {
		cur.Description = p.Description
	}
	if updatePrice {
		cur.Price = p.Price
	}
	cur.Stock = p.Stock
	if p.ImageURL != nil {
		cur.ImageURL = p.ImageURL
	}
	cur.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *stubRepo) SoftDelete(ctx context.Context, id, ownerID string) error {
	cur, ok := s.items[id]
	if !ok || cur.DeletedAt != nil || cur.UserID != ownerID {
		return ErrNotFound
	}
	now := time.Now().UTC()
	cur.DeletedAt = &now
	return nil
}

func (s *stubRepo) Restore(ctx context.Context, id, ownerID string) error {
	cur, ok := s.items[id]
	if !ok || cur.DeletedAt == nil || cur.UserID != ownerID {
		return ErrNotFound
	}
	cur.DeletedAt = nil
	return nil
}

func (s *stubRepo) HardDelete(ctx context.Context, id, ownerID string) error {
	cur, ok := s.items[id]
	if !ok || cur.UserID != ownerID {
		return ErrNotFound
	}
	if cur.DeletedAt == nil {
		return ErrStillActive
	}
	delete(s.items, id)
	return nil
}

//
// ===== router mirroring the wiring in cmd/api =====
//

func newRouter(repo Repository, id *auth.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if id != nil {
		r.Use(func(c *gin.Context) { auth.SetIdentity(c, *id) })
	}
	sellerOnly := auth.RequireRole(auth.RoleSeller)

	r.GET("/products", ListHandler(repo))
	r.GET("/products/deleted", sellerOnly, ListDeletedHandler(repo))
	r.GET("/products/:id", GetHandler(repo))
	r.POST("/products", sellerOnly, CreateHandler(repo))
	r.PUT("/products/restore/:id", sellerOnly, RestoreHandler(repo))
	r.PUT("/products/:id", sellerOnly, UpdateHandler(repo))
	r.DELETE("/products/permanent/:id", sellerOnly, HardDeleteHandler(repo))
	r.DELETE("/products/:id", sellerOnly, SoftDeleteHandler(repo))
	return r
}

func seller(id string) *auth.Identity {
	return &auth.Identity{ID: id, Email: id + "@example.com", Role: auth.RoleSeller}
}

func TestListProducts_HidesSoftDeleted(t *testing.T) {
	repo := newStubRepo()
	repo.seed(Product{ID: "live", Name: "Live", Price: "10.00", UserID: "s1", CategoryID: "c1"})
	gone := time.Now().UTC()
	repo.seed(Product{ID: "gone", Name: "Gone", Price: "10.00", UserID: "s1", CategoryID: "c1", DeletedAt: &gone})

	r := newRouter(repo, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got []Product
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(got) != 1 || got[0].ID != "live" {
		t.Fatalf("expected only the live product, got %+v", got)
	}
}

func TestGetProduct_DeletedReadsAsNotFound(t *testing.T) {
	repo := newStubRepo()
	gone := time.Now().UTC()
	repo.seed(Product{ID: "gone", Name: "Gone", Price: "10.00", UserID: "s1", DeletedAt: &gone})

	r := newRouter(repo, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/gone", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for soft-deleted product, got %d", w.Code)
	}
}

func TestCreateProduct_OwnerIsCaller(t *testing.T) {
	repo := newStubRepo()
	r := newRouter(repo, seller("s1"))

	body := `{"name":"Keyboard","description":"RGB","price":"199.90","stock":10,"category_id":"c1"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got Product
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.UserID != "s1" {
		t.Fatalf("owner must be the caller, got %q", got.UserID)
	}

	// negative price rejected
	bad := `{"name":"X","price":"-1.00","stock":1,"category_id":"c1"}`
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(bad))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative price, got %d", w.Code)
	}
}

func TestCreateProduct_BuyerForbidden(t *testing.T) {
	repo := newStubRepo()
	buyer := &auth.Identity{ID: "b1", Role: auth.RoleBuyer}
	r := newRouter(repo, buyer)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{"name":"X","price":"1.00","category_id":"c1"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for buyer, got %d", w.Code)
	}
}

func TestUpdateProduct_SoftDeletedIsNotFound(t *testing.T) {
	repo := newStubRepo()
	gone := time.Now().UTC()
	repo.seed(Product{ID: "p1", Name: "Old", Price: "10.00", UserID: "s1", DeletedAt: &gone})

	r := newRouter(repo, seller("s1"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/products/p1", bytes.NewBufferString(`{"name":"New","stock":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 updating a soft-deleted product, got %d", w.Code)
	}
}

func TestUpdateProduct_ForeignOwnerIsNotFound(t *testing.T) {
	repo := newStubRepo()
	repo.seed(Product{ID: "p1", Name: "Theirs", Price: "10.00", UserID: "s2"})

	r := newRouter(repo, seller("s1"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/products/p1", bytes.NewBufferString(`{"name":"Mine","stock":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign product, got %d", w.Code)
	}
}

func TestSoftDeleteRestoreRoundTrip(t *testing.T) {
	repo := newStubRepo()
	orig := repo.seed(Product{ID: "p1", Name: "Keyboard", Description: "RGB", Price: "199.90", Stock: 5, UserID: "s1", CategoryID: "c1"})
	r := newRouter(repo, seller("s1"))

	// soft delete
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/products/p1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("soft delete: status=%d body=%s", w.Code, w.Body.String())
	}
	if repo.items["p1"].DeletedAt == nil {
		t.Fatal("marker not set")
	}

	// restore
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/products/restore/p1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("restore: status=%d body=%s", w.Code, w.Body.String())
	}

	got := repo.items["p1"]
	if got.DeletedAt != nil {
		t.Fatal("marker not cleared")
	}
	if got.Name != orig.Name || got.Description != orig.Description || got.Price != orig.Price || got.Stock != orig.Stock {
		t.Fatalf("fields changed across the round trip: %+v", got)
	}
}

func TestHardDelete_Precondition(t *testing.T) {
	repo := newStubRepo()
	repo.seed(Product{ID: "p1", Name: "Active", Price: "1.00", UserID: "s1"})
	r := newRouter(repo, seller("s1"))

	// active product: rejected
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/products/permanent/p1", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 hard-deleting an active product, got %d", w.Code)
	}

	// after soft delete: removed for good
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/products/p1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("soft delete failed: %d", w.Code)
	}
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/products/permanent/p1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("hard delete failed: %d body=%s", w.Code, w.Body.String())
	}
	if _, ok := repo.items["p1"]; ok {
		t.Fatal("product still present after permanent delete")
	}
}

func TestListDeleted_ScopedToOwner(t *testing.T) {
	repo := newStubRepo()
	gone := time.Now().UTC()
	repo.seed(Product{ID: "mine", Name: "Mine", Price: "1.00", UserID: "s1", DeletedAt: &gone})
	repo.seed(Product{ID: "theirs", Name: "Theirs", Price: "1.00", UserID: "s2", DeletedAt: &gone})

	r := newRouter(repo, seller("s1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/deleted", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got []Product
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got) != 1 || got[0].ID != "mine" {
		t.Fatalf("deleted list must be scoped to the caller, got %+v", got)
	}
}
