package notification

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockNotificationRepo struct {
	items map[uuid.UUID]*Notification
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{items: make(map[uuid.UUID]*Notification)}
}

func (m *mockNotificationRepo) Create(_ context.Context, n *Notification) error {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	m.items[n.ID] = n
	return nil
}

func (m *mockNotificationRepo) GetByID(_ context.Context, id uuid.UUID) (*Notification, error) {
	n, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return n, nil
}

func (m *mockNotificationRepo) List(_ context.Context, userID uuid.UUID, onlyUnread bool, limit, offset int) ([]*Notification, int, error) {
	var result []*Notification
	for _, n := range m.items {
		if n.UserID != userID {
			continue
		}
		if onlyUnread && n.IsRead {
			continue
		}
		result = append(result, n)
	}
	return result, len(result), nil
}

func (m *mockNotificationRepo) UnreadCount(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	for _, n := range m.items {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (m *mockNotificationRepo) MarkRead(_ context.Context, userID, id uuid.UUID) error {
	n, ok := m.items[id]
	if !ok || n.UserID != userID {
		return fmt.Errorf("not found")
	}
	n.IsRead = true
	return nil
}

func (m *mockNotificationRepo) MarkAllRead(_ context.Context, userID uuid.UUID) error {
	for _, n := range m.items {
		if n.UserID == userID {
			n.IsRead = true
		}
	}
	return nil
}

func newTestService() (*Service, *mockNotificationRepo) {
	repo := newMockNotificationRepo()
	return NewService(repo), repo
}

func TestNotify(t *testing.T) {
	svc, repo := newTestService()
	userID := uuid.New()
	if err := svc.Notify(context.Background(), userID, "Scan ready", "Your x-ray is ready", "xray", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.items) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(repo.items))
	}
	for _, n := range repo.items {
		if n.IsRead {
			t.Error("new notifications must start unread")
		}
	}
}

func TestNotify_InvalidType(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.Notify(context.Background(), uuid.New(), "T", "m", "carrier_pigeon", nil); err == nil {
		t.Error("expected error for invalid type")
	}
}

func TestMarkRead_OtherUsersNotification(t *testing.T) {
	svc, repo := newTestService()
	owner := uuid.New()
	n := &Notification{UserID: owner, Title: "T", NotificationType: "other"}
	repo.Create(context.Background(), n)

	if err := svc.MarkRead(context.Background(), uuid.New(), n.ID); err == nil {
		t.Error("expected error marking another user's notification")
	}
	if err := svc.MarkRead(context.Background(), owner, n.ID); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestMarkAllRead(t *testing.T) {
	svc, repo := newTestService()
	userID := uuid.New()
	svc.Notify(context.Background(), userID, "A", "", "other", nil)
	svc.Notify(context.Background(), userID, "B", "", "other", nil)
	svc.Notify(context.Background(), uuid.New(), "C", "", "other", nil)

	if err := svc.MarkAllRead(context.Background(), userID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	count, _ := svc.UnreadCount(context.Background(), userID)
	if count != 0 {
		t.Errorf("expected 0 unread, got %d", count)
	}
	for _, n := range repo.items {
		if n.Title == "C" && n.IsRead {
			t.Error("mark-all-read must not touch other users")
		}
	}
}

func TestResolveTarget(t *testing.T) {
	scanID := uuid.New()

	n := &Notification{NotificationType: "xray", RelatedID: &scanID}
	if got := ResolveTarget(n); got != "/api/v1/scans/"+scanID.String()+"/" {
		t.Errorf("unexpected target: %s", got)
	}

	n = &Notification{NotificationType: "scan", RelatedID: &scanID}
	if ResolveTarget(n) == "" {
		t.Error("scan type with related id must navigate")
	}

	n = &Notification{NotificationType: "xray"}
	if ResolveTarget(n) != "" {
		t.Error("xray without related id must not navigate")
	}

	n = &Notification{NotificationType: "appointment_reminder", RelatedID: &scanID}
	if ResolveTarget(n) != "" {
		t.Error("appointment_reminder must never navigate")
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-10 * time.Second), "just now"},
		{now.Add(-1 * time.Minute), "1 minute ago"},
		{now.Add(-45 * time.Minute), "45 minutes ago"},
		{now.Add(-1 * time.Hour), "1 hour ago"},
		{now.Add(-5 * time.Hour), "5 hours ago"},
		{now.Add(-24 * time.Hour), "1 day ago"},
		{now.Add(-6 * 24 * time.Hour), "6 days ago"},
		{now.Add(-8 * 24 * time.Hour), "June 7, 2025"},
	}
	for _, tc := range cases {
		if got := RelativeTime(tc.t, now); got != tc.want {
			t.Errorf("RelativeTime(%v) = %q, want %q", tc.t, got, tc.want)
		}
	}
}
