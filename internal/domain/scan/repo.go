package scan

import (
	"context"

	"github.com/google/uuid"
)

type ScanRepository interface {
	Create(ctx context.Context, s *Scan) error
	GetByID(ctx context.Context, id uuid.UUID) (*Scan, error)
	Update(ctx context.Context, s *Scan) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Scan, int, error)
}
