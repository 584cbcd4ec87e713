package consultation

import (
	"time"

	"github.com/google/uuid"
)

// Consultation links a patient and a doctor, optionally referencing the scan
// that prompted it.
type Consultation struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	PatientID        uuid.UUID  `db:"patient_id" json:"patient_id"`
	DoctorID         uuid.UUID  `db:"doctor_id" json:"doctor_id"`
	ConsultationType string     `db:"consultation_type" json:"consultation_type"`
	Status           string     `db:"status" json:"status"`
	ScanID           *uuid.UUID `db:"scan_id" json:"scan_id,omitempty"`
	Notes            *string    `db:"notes" json:"notes,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
