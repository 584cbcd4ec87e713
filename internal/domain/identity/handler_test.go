package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/careportal/careportal/internal/platform/auth"
)

func newTestHandler() (*Handler, *mockUserRepo) {
	svc, repo := newTestService()
	cfg := auth.JWTConfig{Secret: []byte("0123456789abcdef0123456789abcdef")}
	return NewHandler(svc, cfg), repo
}

func TestHandlerRegister(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	body := `{"username":"alice","email":"alice@example.com","password":"hunter2hunter2","password_confirm":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/users/register/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response must not expose password fields")
	}
}

func TestHandlerRegister_Conflict(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()

	existing := &User{Username: "alice", Email: "old@example.com", IsActive: true}
	repo.Create(context.Background(), existing)

	body := `{"username":"alice","email":"alice@example.com","password":"hunter2hunter2","password_confirm":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/users/register/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestHandlerLogin(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	reg := &RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "hunter2hunter2",
		PasswordConfirm: "hunter2hunter2",
	}
	if _, err := h.svc.Register(context.Background(), reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	body := `{"username":"alice","password":"hunter2hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/users/login/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"token"`) {
		t.Errorf("expected token in response, got %s", rec.Body.String())
	}
}

func TestHandlerLogin_WrongPassword(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	reg := &RegisterRequest{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "hunter2hunter2",
		PasswordConfirm: "hunter2hunter2",
	}
	if _, err := h.svc.Register(context.Background(), reg); err != nil {
		t.Fatalf("register: %v", err)
	}

	body := `{"username":"alice","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/users/login/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestHandlerGetUser(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()

	u := &User{Username: "bob", Email: "bob@example.com"}
	repo.Create(context.Background(), u)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(u.ID.String())

	if err := h.GetUser(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandlerGetUser_NotFound(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.NewString())

	err := h.GetUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandlerGetUser_InvalidID(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := h.GetUser(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandlerListUsers(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()

	repo.Create(context.Background(), &User{Username: "a", Email: "a@e.com"})
	repo.Create(context.Background(), &User{Username: "b", Email: "b@e.com"})

	req := httptest.NewRequest(http.MethodGet, "/?page=1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListUsers(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"count":2`) {
		t.Errorf("expected count 2 in response, got %s", rec.Body.String())
	}
}

func TestHandlerDeleteUser(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()

	u := &User{Username: "bob", Email: "bob@example.com"}
	repo.Create(context.Background(), u)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(u.ID.String())

	if err := h.DeleteUser(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
}

func TestHandlerListUnassigned_InvalidKind(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/?kind=bogus", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListUnassigned(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
