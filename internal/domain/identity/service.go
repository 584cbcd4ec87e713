package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrConflict reports a uniqueness violation (username or email already taken).
var ErrConflict = errors.New("conflict")

var validRoles = map[string]bool{
	"patient": true, "doctor": true, "assistant": true, "admin": true,
}

var validSubscriptions = map[string]bool{
	"free": true, "premium": true,
}

type Service struct {
	users UserRepository
}

func NewService(users UserRepository) *Service {
	return &Service{users: users}
}

func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	if req.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}
	if req.Password != req.PasswordConfirm {
		return nil, fmt.Errorf("passwords do not match")
	}

	if taken, err := s.users.UsernameTaken(ctx, req.Username, uuid.Nil); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("username %q: %w", req.Username, ErrConflict)
	}
	if taken, err := s.users.EmailTaken(ctx, req.Email, uuid.Nil); err != nil {
		return nil, err
	} else if taken {
		return nil, fmt.Errorf("email %q: %w", req.Email, ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Username:         req.Username,
		Email:            req.Email,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Location:         req.Location,
		Role:             "patient",
		SubscriptionType: "free",
		IsActive:         true,
		PasswordHash:     string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) CreateUser(ctx context.Context, u *User) error {
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if u.Role == "" {
		u.Role = "patient"
	}
	if !validRoles[u.Role] {
		return fmt.Errorf("invalid role: %s", u.Role)
	}
	if u.SubscriptionType == "" {
		u.SubscriptionType = "free"
	}
	if !validSubscriptions[u.SubscriptionType] {
		return fmt.Errorf("invalid subscription type: %s", u.SubscriptionType)
	}
	if taken, err := s.users.UsernameTaken(ctx, u.Username, uuid.Nil); err != nil {
		return err
	} else if taken {
		return fmt.Errorf("username %q: %w", u.Username, ErrConflict)
	}
	return s.users.Create(ctx, u)
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *Service) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *Service) UpdateUser(ctx context.Context, u *User) error {
	if u.Role != "" && !validRoles[u.Role] {
		return fmt.Errorf("invalid role: %s", u.Role)
	}
	if u.SubscriptionType != "" && !validSubscriptions[u.SubscriptionType] {
		return fmt.Errorf("invalid subscription type: %s", u.SubscriptionType)
	}
	if u.Username != "" {
		if taken, err := s.users.UsernameTaken(ctx, u.Username, u.ID); err != nil {
			return err
		} else if taken {
			return fmt.Errorf("username %q: %w", u.Username, ErrConflict)
		}
	}
	return s.users.Update(ctx, u)
}

func (s *Service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.users.Delete(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*User, int, error) {
	return s.users.List(ctx, limit, offset)
}

func (s *Service) ListUnassignedUsers(ctx context.Context, kind UnassignedKind, limit, offset int) ([]*User, int, error) {
	if kind != UnassignedDoctor && kind != UnassignedProfile {
		return nil, 0, fmt.Errorf("invalid kind: %s", kind)
	}
	return s.users.ListUnassigned(ctx, kind, limit, offset)
}

// CheckPassword verifies a login attempt against the stored hash.
func (s *Service) CheckPassword(ctx context.Context, username, password string) (*User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if !u.IsActive {
		return nil, fmt.Errorf("account is inactive")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return u, nil
}
