package profile

import (
	"time"

	"github.com/google/uuid"
)

// Profile maps to the profile table. At most one per user.
type Profile struct {
	ID             uuid.UUID  `db:"id" json:"id"`
	UserID         uuid.UUID  `db:"user_id" json:"user_id"`
	PhoneNumber    *string    `db:"phone_number" json:"phone_number,omitempty"`
	Address        *string    `db:"address" json:"address,omitempty"`
	DateOfBirth    *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender         *string    `db:"gender" json:"gender,omitempty"`
	ProfilePicture *string    `db:"profile_picture" json:"profile_picture,omitempty"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}
