package doctor

import (
	"context"

	"github.com/google/uuid"
)

type DoctorRepository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, specialty string, limit, offset int) ([]*Doctor, int, error)
	ExistsForUser(ctx context.Context, userID uuid.UUID, excluding uuid.UUID) (bool, error)
}
