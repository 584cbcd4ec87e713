package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrConflict reports a second profile being attached to a user.
var ErrConflict = errors.New("conflict")

var validGenders = map[string]bool{
	"male": true, "female": true, "other": true,
}

type Service struct {
	profiles ProfileRepository
}

func NewService(profiles ProfileRepository) *Service {
	return &Service{profiles: profiles}
}

func (s *Service) CreateProfile(ctx context.Context, p *Profile) error {
	if p.UserID == uuid.Nil {
		return fmt.Errorf("user reference is required")
	}
	if p.Gender != nil && !validGenders[*p.Gender] {
		return fmt.Errorf("invalid gender: %s", *p.Gender)
	}
	if p.DateOfBirth != nil && p.DateOfBirth.After(time.Now()) {
		return fmt.Errorf("date of birth is in the future")
	}
	exists, err := s.profiles.ExistsForUser(ctx, p.UserID, uuid.Nil)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("user %s already has a profile: %w", p.UserID, ErrConflict)
	}
	return s.profiles.Create(ctx, p)
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.profiles.GetByID(ctx, id)
}

func (s *Service) GetProfileByUser(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, p *Profile) error {
	if p.Gender != nil && !validGenders[*p.Gender] {
		return fmt.Errorf("invalid gender: %s", *p.Gender)
	}
	return s.profiles.Update(ctx, p)
}

// SetPicture records a stored picture path on an existing profile.
func (s *Service) SetPicture(ctx context.Context, id uuid.UUID, path string) (*Profile, error) {
	p, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.ProfilePicture = &path
	if err := s.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	return s.profiles.Delete(ctx, id)
}

func (s *Service) ListProfiles(ctx context.Context, limit, offset int) ([]*Profile, int, error) {
	return s.profiles.List(ctx, limit, offset)
}
