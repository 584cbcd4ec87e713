package notification

import (
	"time"

	"github.com/google/uuid"
)

// Notification is a single feed entry. RelatedID points at the referenced
// record for types that navigate somewhere (scan results).
type Notification struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	UserID           uuid.UUID  `db:"user_id" json:"user_id"`
	Title            string     `db:"title" json:"title"`
	Message          string     `db:"message" json:"message"`
	NotificationType string     `db:"notification_type" json:"notification_type"`
	IsRead           bool       `db:"is_read" json:"is_read"`
	RelatedID        *uuid.UUID `db:"related_id" json:"related_id,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}
