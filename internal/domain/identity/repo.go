package identity

import (
	"context"

	"github.com/google/uuid"
)

// UnassignedKind selects which 1:1 companion row to exclude users by.
type UnassignedKind string

const (
	UnassignedDoctor  UnassignedKind = "doctor"
	UnassignedProfile UnassignedKind = "profile"
)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*User, int, error)
	// ListUnassigned returns users that do not yet have a doctor or profile
	// row, for the create-form pickers.
	ListUnassigned(ctx context.Context, kind UnassignedKind, limit, offset int) ([]*User, int, error)
	UsernameTaken(ctx context.Context, username string, excluding uuid.UUID) (bool, error)
	EmailTaken(ctx context.Context, email string, excluding uuid.UUID) (bool, error)
}
