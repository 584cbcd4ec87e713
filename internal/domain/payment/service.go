package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var validMethods = map[string]bool{
	"card": true, "cash": true, "insurance": true,
}

var validStatuses = map[string]bool{
	"pending": true, "paid": true, "refunded": true, "failed": true,
}

type Service struct {
	payments PaymentRepository
}

func NewService(payments PaymentRepository) *Service {
	return &Service{payments: payments}
}

func (s *Service) CreatePayment(ctx context.Context, p *Payment) error {
	if p.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if p.Amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if len(p.Currency) != 3 {
		return fmt.Errorf("currency must be a 3-letter code")
	}
	if !validMethods[p.PaymentMethod] {
		return fmt.Errorf("invalid payment_method: %s", p.PaymentMethod)
	}
	if p.Status == "" {
		p.Status = "pending"
	}
	if !validStatuses[p.Status] {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	return s.payments.Create(ctx, p)
}

func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) (*Payment, error) {
	return s.payments.GetByID(ctx, id)
}

func (s *Service) UpdatePayment(ctx context.Context, p *Payment) error {
	if p.Status != "" && !validStatuses[p.Status] {
		return fmt.Errorf("invalid status: %s", p.Status)
	}
	if p.PaymentMethod != "" && !validMethods[p.PaymentMethod] {
		return fmt.Errorf("invalid payment_method: %s", p.PaymentMethod)
	}
	return s.payments.Update(ctx, p)
}

func (s *Service) DeletePayment(ctx context.Context, id uuid.UUID) error {
	return s.payments.Delete(ctx, id)
}

func (s *Service) ListPayments(ctx context.Context, limit, offset int) ([]*Payment, int, error) {
	return s.payments.List(ctx, limit, offset)
}

func (s *Service) ListUserPayments(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Payment, int, error) {
	return s.payments.ListByUser(ctx, userID, limit, offset)
}
