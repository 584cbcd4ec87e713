package appointment

import (
	"time"

	"github.com/google/uuid"
)

// Appointment maps to the appointment table. DateTime is stored as a UTC
// instant; slot comparisons happen in the clinic's configured timezone.
type Appointment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	DateTime  time.Time `db:"date_time" json:"date_time"`
	Status    string    `db:"status" json:"status"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
