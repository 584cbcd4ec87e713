package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Doctor maps to the doctor table. At most one per user.
type Doctor struct {
	ID                uuid.UUID `db:"id" json:"id"`
	UserID            uuid.UUID `db:"user_id" json:"user_id"`
	Specialty         string    `db:"specialty" json:"specialty"`
	LicenseNumber     string    `db:"license_number" json:"license_number"`
	YearsOfExperience int       `db:"years_of_experience" json:"years_of_experience"`
	ConsultationFee   *float64  `db:"consultation_fee" json:"consultation_fee,omitempty"`
	Bio               *string   `db:"bio" json:"bio,omitempty"`
	Gender            *string   `db:"gender" json:"gender,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}
