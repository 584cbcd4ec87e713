package scan

import (
	"time"

	"github.com/google/uuid"
)

// Scan is a system-generated imaging result. Scans are created by the
// processing pipeline, not through the public API, and stay out of the
// management console.
type Scan struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	ScanType      string    `db:"scan_type" json:"scan_type"`
	ImagePath     *string   `db:"image_path" json:"image_path,omitempty"`
	ResultSummary *string   `db:"result_summary" json:"result_summary,omitempty"`
	Status        string    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
