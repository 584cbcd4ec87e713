package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var validTypes = map[string]bool{
	"appointment_status":   true,
	"appointment_accepted": true,
	"appointment_rejected": true,
	"appointment_reminder": true,
	"xray":                 true,
	"scan":                 true,
	"other":                true,
}

type Service struct {
	notifications NotificationRepository
}

func NewService(notifications NotificationRepository) *Service {
	return &Service{notifications: notifications}
}

// Notify creates a feed entry. Not exposed over HTTP; producers (booking
// confirmations, the scan pipeline) call it directly.
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, title, message, notificationType string, relatedID *uuid.UUID) error {
	if userID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if title == "" {
		return fmt.Errorf("title is required")
	}
	if !validTypes[notificationType] {
		return fmt.Errorf("invalid notification_type: %s", notificationType)
	}
	return s.notifications.Create(ctx, &Notification{
		UserID:           userID,
		Title:            title,
		Message:          message,
		NotificationType: notificationType,
		RelatedID:        relatedID,
	})
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, onlyUnread bool, limit, offset int) ([]*Notification, int, error) {
	return s.notifications.List(ctx, userID, onlyUnread, limit, offset)
}

func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.notifications.UnreadCount(ctx, userID)
}

// MarkRead only touches the caller's own notifications.
func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	return s.notifications.MarkRead(ctx, userID, id)
}

func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.notifications.MarkAllRead(ctx, userID)
}

// ResolveTarget maps a notification to the path it navigates to. Only scan
// results lead anywhere; everything else renders without a link so the feed
// never dead-ends. Every type stays markable as read regardless.
func ResolveTarget(n *Notification) string {
	if (n.NotificationType == "xray" || n.NotificationType == "scan") && n.RelatedID != nil {
		return fmt.Sprintf("/api/v1/scans/%s/", n.RelatedID)
	}
	return ""
}

// RelativeTime renders a feed timestamp against the given current time.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		m := int(d.Minutes())
		if m == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", m)
	case d < 24*time.Hour:
		h := int(d.Hours())
		if h == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", h)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	default:
		return t.Format("January 2, 2006")
	}
}
