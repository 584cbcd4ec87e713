package scan

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var validStatuses = map[string]bool{
	"processing": true, "ready": true, "reviewed": true, "failed": true,
}

var validTypes = map[string]bool{
	"xray": true, "mri": true, "ct": true, "ultrasound": true,
}

type Service struct {
	scans ScanRepository
}

func NewService(scans ScanRepository) *Service {
	return &Service{scans: scans}
}

// Record stores a pipeline-produced scan result.
func (s *Service) Record(ctx context.Context, sc *Scan) error {
	if sc.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if !validTypes[sc.ScanType] {
		return fmt.Errorf("invalid scan_type: %s", sc.ScanType)
	}
	if sc.Status == "" {
		sc.Status = "ready"
	}
	if !validStatuses[sc.Status] {
		return fmt.Errorf("invalid status: %s", sc.Status)
	}
	return s.scans.Create(ctx, sc)
}

func (s *Service) GetScan(ctx context.Context, id uuid.UUID) (*Scan, error) {
	return s.scans.GetByID(ctx, id)
}

func (s *Service) MarkReviewed(ctx context.Context, id uuid.UUID) (*Scan, error) {
	sc, err := s.scans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sc.Status = "reviewed"
	if err := s.scans.Update(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Service) ListUserScans(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Scan, int, error) {
	return s.scans.ListByUser(ctx, userID, limit, offset)
}
