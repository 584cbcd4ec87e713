package payment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockPaymentRepo struct {
	items map[uuid.UUID]*Payment
}

func newMockPaymentRepo() *mockPaymentRepo {
	return &mockPaymentRepo{items: make(map[uuid.UUID]*Payment)}
}

func (m *mockPaymentRepo) Create(_ context.Context, p *Payment) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.items[p.ID] = p
	return nil
}

func (m *mockPaymentRepo) GetByID(_ context.Context, id uuid.UUID) (*Payment, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockPaymentRepo) Update(_ context.Context, p *Payment) error {
	m.items[p.ID] = p
	return nil
}

func (m *mockPaymentRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockPaymentRepo) List(_ context.Context, limit, offset int) ([]*Payment, int, error) {
	var result []*Payment
	for _, p := range m.items {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockPaymentRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*Payment, int, error) {
	var result []*Payment
	for _, p := range m.items {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, len(result), nil
}

func newTestService() (*Service, *mockPaymentRepo) {
	repo := newMockPaymentRepo()
	return NewService(repo), repo
}

func TestCreatePayment_Defaults(t *testing.T) {
	svc, _ := newTestService()
	p := &Payment{UserID: uuid.New(), Amount: 150, PaymentMethod: "card"}
	if err := svc.CreatePayment(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Currency != "USD" || p.Status != "pending" {
		t.Errorf("expected USD/pending defaults, got %s/%s", p.Currency, p.Status)
	}
}

func TestCreatePayment_Validation(t *testing.T) {
	svc, _ := newTestService()

	if err := svc.CreatePayment(context.Background(), &Payment{Amount: 10, PaymentMethod: "card"}); err == nil {
		t.Error("expected error for missing user")
	}
	if err := svc.CreatePayment(context.Background(), &Payment{UserID: uuid.New(), Amount: 0, PaymentMethod: "card"}); err == nil {
		t.Error("expected error for zero amount")
	}
	if err := svc.CreatePayment(context.Background(), &Payment{UserID: uuid.New(), Amount: 10, PaymentMethod: "bitcoin"}); err == nil {
		t.Error("expected error for invalid method")
	}
	if err := svc.CreatePayment(context.Background(), &Payment{UserID: uuid.New(), Amount: 10, PaymentMethod: "card", Currency: "DOLLARS"}); err == nil {
		t.Error("expected error for bad currency code")
	}
}

func TestUpdatePayment_InvalidStatus(t *testing.T) {
	svc, _ := newTestService()
	p := &Payment{UserID: uuid.New(), Amount: 50, PaymentMethod: "cash"}
	svc.CreatePayment(context.Background(), p)
	p.Status = "chargeback"
	if err := svc.UpdatePayment(context.Background(), p); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestListUserPayments(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	svc.CreatePayment(context.Background(), &Payment{UserID: userID, Amount: 10, PaymentMethod: "card"})
	svc.CreatePayment(context.Background(), &Payment{UserID: uuid.New(), Amount: 20, PaymentMethod: "cash"})

	_, total, err := svc.ListUserPayments(context.Background(), userID, 20, 0)
	if err != nil || total != 1 {
		t.Errorf("expected 1 payment for user, got %d (%v)", total, err)
	}
}
