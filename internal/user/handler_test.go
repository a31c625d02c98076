package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/princeofverry/backend-tugas-akhir/internal/auth"
)

type stubRepo struct {
	byEmail map[string]*User
}

func newStubRepo() *stubRepo { return &stubRepo{byEmail: make(map[string]*User)} }

func (s *stubRepo) Create(ctx context.Context, u *User) error {
	if _, ok := s.byEmail[u.Email]; ok {
		return ErrAlreadyExist
	}
	cp := *u
	s.byEmail[u.Email] = &cp
	return nil
}

func (s *stubRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *stubRepo) List(ctx context.Context, role string) ([]User, error) {
	var out []User
	for _, u := range s.byEmail {
		if role == "" || string(u.Role) == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func newRouter(repo Repository, tokens *auth.Tokens) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/register", RegisterHandler(repo))
	r.POST("/auth/login", LoginHandler(repo, tokens))
	r.GET("/auth/users", ListHandler(repo))
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterThenLogin(t *testing.T) {
	repo := newStubRepo()
	tokens := auth.NewTokens("rahasia")
	r := newRouter(repo, tokens)

	w := postJSON(r, "/auth/register", `{"name":"Verry","email":"v@example.com","password":"secret123","role":"penjual"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status=%d body=%s", w.Code, w.Body.String())
	}
	if u := repo.byEmail["v@example.com"]; u == nil || u.PasswordHash == "secret123" {
		t.Fatal("password must be stored hashed")
	}

	w = postJSON(r, "/auth/login", `{"email":"v@example.com","password":"secret123"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("login: status=%d body=%s", w.Code, w.Body.String())
	}
	var got struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.Token == "" {
		t.Fatalf("missing token in %s", w.Body.String())
	}

	id, err := tokens.Verify(got.Token)
	if err != nil {
		t.Fatalf("issued token must verify: %v", err)
	}
	if id.Role != auth.RoleSeller || id.Email != "v@example.com" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestRegister_UnknownRole(t *testing.T) {
	r := newRouter(newStubRepo(), auth.NewTokens("rahasia"))
	w := postJSON(r, "/auth/register", `{"name":"X","email":"x@example.com","password":"pw","role":"seller"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown role, got %d", w.Code)
	}
}

func TestLogin_Failures(t *testing.T) {
	repo := newStubRepo()
	tokens := auth.NewTokens("rahasia")
	r := newRouter(repo, tokens)
	_ = postJSON(r, "/auth/register", `{"name":"V","email":"v@example.com","password":"secret123","role":"pembeli"}`)

	// unknown user
	if w := postJSON(r, "/auth/login", `{"email":"nope@example.com","password":"x"}`); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", w.Code)
	}
	// wrong password
	if w := postJSON(r, "/auth/login", `{"email":"v@example.com","password":"wrong"}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}
}

func TestListUsers_RoleFilter(t *testing.T) {
	repo := newStubRepo()
	r := newRouter(repo, auth.NewTokens("rahasia"))
	_ = postJSON(r, "/auth/register", `{"name":"A","email":"a@example.com","password":"pw123456","role":"penjual"}`)
	_ = postJSON(r, "/auth/register", `{"name":"B","email":"b@example.com","password":"pw123456","role":"pembeli"}`)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/users?role=penjual", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var got []User
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if len(got) != 1 || got[0].Email != "a@example.com" {
		t.Fatalf("role filter not applied: %+v", got)
	}
}
