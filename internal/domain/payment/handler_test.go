package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockPaymentRepo) {
	svc, repo := newTestService()
	return NewHandler(svc), repo
}

func TestHandlerCreatePayment(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	body := `{"user_id":"` + uuid.NewString() + `","amount":150.0,"payment_method":"card"}`
	req := httptest.NewRequest(http.MethodPost, "/payments/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreatePayment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"USD"`) {
		t.Errorf("expected default USD currency, got %s", rec.Body.String())
	}
}

func TestHandlerCreatePayment_InvalidMethod(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	body := `{"user_id":"` + uuid.NewString() + `","amount":10,"payment_method":"barter"}`
	req := httptest.NewRequest(http.MethodPost, "/payments/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.CreatePayment(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandlerListPayments_ByUser(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()
	userID := uuid.New()
	repo.Create(context.Background(), &Payment{UserID: userID, Amount: 10, Currency: "USD", PaymentMethod: "cash", Status: "paid"})
	repo.Create(context.Background(), &Payment{UserID: uuid.New(), Amount: 20, Currency: "USD", PaymentMethod: "card", Status: "paid"})

	req := httptest.NewRequest(http.MethodGet, "/payments/?user_id="+userID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListPayments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Errorf("expected 1 payment for user, got %s", rec.Body.String())
	}
}

func TestHandlerUpdatePayment_PartialKeepsFields(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()
	p := &Payment{UserID: uuid.New(), Amount: 99.5, Currency: "USD", PaymentMethod: "card", Status: "pending"}
	repo.Create(context.Background(), p)

	body := `{"status":"paid"}`
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.UpdatePayment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := repo.items[p.ID]
	if got.Status != "paid" {
		t.Errorf("expected status paid, got %s", got.Status)
	}
	if got.Amount != 99.5 || got.PaymentMethod != "card" {
		t.Error("partial update must not clear untouched fields")
	}
}

func TestHandlerDeletePayment(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()
	p := &Payment{UserID: uuid.New(), Amount: 10, Currency: "USD", PaymentMethod: "cash", Status: "paid"}
	repo.Create(context.Background(), p)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())

	if err := h.DeletePayment(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if _, ok := repo.items[p.ID]; ok {
		t.Error("expected payment to be removed")
	}
}
