package appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *mockAppointmentRepo) {
	svc, repo, _ := newTestService()
	return NewHandler(svc), repo
}

func TestHandlerTakenSlots(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()
	repo.Create(context.Background(), &Appointment{
		UserID:   uuid.New(),
		DateTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Status:   "confirmed",
	})

	req := httptest.NewRequest(http.MethodGet, "/appointments/taken-slots/?date=2025-06-01", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.TakenSlots(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"10:00"`) {
		t.Errorf("expected taken slot 10:00 in response, got %s", rec.Body.String())
	}
}

func TestHandlerTakenSlots_MissingDate(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/appointments/taken-slots/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.TakenSlots(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandlerBook(t *testing.T) {
	h, _ := newTestHandler()
	e := echo.New()
	userID := uuid.New()

	body := `{"user_id":"` + userID.String() + `","name":"Alice","email":"alice@example.com","phone":"5551234567","date":"2025-06-01","time":"10:00 AM"}`
	req := httptest.NewRequest(http.MethodPost, "/appointments/book", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Book(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"confirmed"`) {
		t.Errorf("expected confirmed status in response, got %s", rec.Body.String())
	}
}

func TestHandlerBook_SlotTaken(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()
	repo.Create(context.Background(), &Appointment{
		UserID:   uuid.New(),
		DateTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		Status:   "confirmed",
	})

	body := `{"user_id":"` + uuid.NewString() + `","name":"Bob","email":"bob@example.com","phone":"5551234567","date":"2025-06-01","time":"10:00"}`
	req := httptest.NewRequest(http.MethodPost, "/appointments/book", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Book(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestHandlerReschedule(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()
	a := &Appointment{UserID: uuid.New(), DateTime: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC), Status: "confirmed"}
	repo.Create(context.Background(), a)

	body := `{"date":"2025-06-03","time":"2:00 PM"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(a.ID.String())

	if err := h.Reschedule(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := repo.items[a.ID]
	want := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)
	if !got.DateTime.Equal(want) {
		t.Errorf("got %v, want %v", got.DateTime, want)
	}
}

func TestHandlerListAppointments_ByUser(t *testing.T) {
	h, repo := newTestHandler()
	e := echo.New()
	userID := uuid.New()
	repo.Create(context.Background(), &Appointment{UserID: userID, DateTime: time.Now(), Status: "confirmed"})
	repo.Create(context.Background(), &Appointment{UserID: uuid.New(), DateTime: time.Now(), Status: "confirmed"})

	req := httptest.NewRequest(http.MethodGet, "/appointments/?user_id="+userID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListAppointments(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Errorf("expected count 1, got %s", rec.Body.String())
	}
}
