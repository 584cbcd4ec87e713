package scan

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockScanRepo struct {
	items map[uuid.UUID]*Scan
}

func newMockScanRepo() *mockScanRepo {
	return &mockScanRepo{items: make(map[uuid.UUID]*Scan)}
}

func (m *mockScanRepo) Create(_ context.Context, s *Scan) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()
	s.UpdatedAt = time.Now()
	m.items[s.ID] = s
	return nil
}

func (m *mockScanRepo) GetByID(_ context.Context, id uuid.UUID) (*Scan, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return s, nil
}

func (m *mockScanRepo) Update(_ context.Context, s *Scan) error {
	m.items[s.ID] = s
	return nil
}

func (m *mockScanRepo) ListByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*Scan, int, error) {
	var result []*Scan
	for _, s := range m.items {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	return result, len(result), nil
}

func newTestService() (*Service, *mockScanRepo) {
	repo := newMockScanRepo()
	return NewService(repo), repo
}

func TestRecord(t *testing.T) {
	svc, _ := newTestService()
	s := &Scan{UserID: uuid.New(), ScanType: "xray"}
	if err := svc.Record(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != "ready" {
		t.Errorf("expected default status ready, got %s", s.Status)
	}
}

func TestRecord_InvalidType(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.Record(context.Background(), &Scan{UserID: uuid.New(), ScanType: "palm_reading"}); err == nil {
		t.Error("expected error for invalid scan type")
	}
}

func TestMarkReviewed(t *testing.T) {
	svc, repo := newTestService()
	s := &Scan{UserID: uuid.New(), ScanType: "mri"}
	svc.Record(context.Background(), s)

	got, err := svc.MarkReviewed(context.Background(), s.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != "reviewed" {
		t.Errorf("expected reviewed, got %s", got.Status)
	}
	if repo.items[s.ID].Status != "reviewed" {
		t.Error("expected the stored scan to be updated")
	}
}

func TestListUserScans(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	svc.Record(context.Background(), &Scan{UserID: userID, ScanType: "xray"})
	svc.Record(context.Background(), &Scan{UserID: uuid.New(), ScanType: "ct"})

	_, total, err := svc.ListUserScans(context.Background(), userID, 20, 0)
	if err != nil || total != 1 {
		t.Errorf("expected 1 scan for user, got %d (%v)", total, err)
	}
}
