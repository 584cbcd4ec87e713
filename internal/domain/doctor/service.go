package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrConflict reports a second doctor record being attached to a user.
var ErrConflict = errors.New("conflict")

type Service struct {
	doctors DoctorRepository
}

func NewService(doctors DoctorRepository) *Service {
	return &Service{doctors: doctors}
}

func (s *Service) CreateDoctor(ctx context.Context, d *Doctor) error {
	if d.UserID == uuid.Nil {
		return fmt.Errorf("user reference is required")
	}
	if d.Specialty == "" {
		return fmt.Errorf("specialty is required")
	}
	if d.LicenseNumber == "" {
		return fmt.Errorf("license_number is required")
	}
	if d.YearsOfExperience < 0 {
		return fmt.Errorf("years_of_experience must not be negative")
	}
	if d.ConsultationFee != nil && *d.ConsultationFee < 0 {
		return fmt.Errorf("consultation_fee must not be negative")
	}
	exists, err := s.doctors.ExistsForUser(ctx, d.UserID, uuid.Nil)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("user %s already has a doctor record: %w", d.UserID, ErrConflict)
	}
	return s.doctors.Create(ctx, d)
}

func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByID(ctx, id)
}

func (s *Service) GetDoctorByUser(ctx context.Context, userID uuid.UUID) (*Doctor, error) {
	return s.doctors.GetByUserID(ctx, userID)
}

func (s *Service) UpdateDoctor(ctx context.Context, d *Doctor) error {
	if d.Specialty == "" {
		return fmt.Errorf("specialty is required")
	}
	if d.YearsOfExperience < 0 {
		return fmt.Errorf("years_of_experience must not be negative")
	}
	if d.ConsultationFee != nil && *d.ConsultationFee < 0 {
		return fmt.Errorf("consultation_fee must not be negative")
	}
	return s.doctors.Update(ctx, d)
}

func (s *Service) DeleteDoctor(ctx context.Context, id uuid.UUID) error {
	return s.doctors.Delete(ctx, id)
}

// ListDoctors filters by specialty substring when one is given.
func (s *Service) ListDoctors(ctx context.Context, specialty string, limit, offset int) ([]*Doctor, int, error) {
	return s.doctors.List(ctx, specialty, limit, offset)
}
