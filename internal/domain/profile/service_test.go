package profile

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockProfileRepo struct {
	items map[uuid.UUID]*Profile
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{items: make(map[uuid.UUID]*Profile)}
}

func (m *mockProfileRepo) Create(_ context.Context, p *Profile) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()
	m.items[p.ID] = p
	return nil
}

func (m *mockProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*Profile, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return p, nil
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*Profile, error) {
	for _, p := range m.items {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("not found")
}

func (m *mockProfileRepo) Update(_ context.Context, p *Profile) error {
	m.items[p.ID] = p
	return nil
}

func (m *mockProfileRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockProfileRepo) List(_ context.Context, limit, offset int) ([]*Profile, int, error) {
	var result []*Profile
	for _, p := range m.items {
		result = append(result, p)
	}
	return result, len(result), nil
}

func (m *mockProfileRepo) ExistsForUser(_ context.Context, userID uuid.UUID, excluding uuid.UUID) (bool, error) {
	for _, p := range m.items {
		if p.UserID == userID && p.ID != excluding {
			return true, nil
		}
	}
	return false, nil
}

func newTestService() (*Service, *mockProfileRepo) {
	repo := newMockProfileRepo()
	return NewService(repo), repo
}

func TestCreateProfile(t *testing.T) {
	svc, _ := newTestService()
	p := &Profile{UserID: uuid.New()}
	if err := svc.CreateProfile(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
}

func TestCreateProfile_UserRequired(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.CreateProfile(context.Background(), &Profile{}); err == nil {
		t.Error("expected error for missing user reference")
	}
}

func TestCreateProfile_SecondProfileConflicts(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	if err := svc.CreateProfile(context.Background(), &Profile{UserID: userID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := svc.CreateProfile(context.Background(), &Profile{UserID: userID})
	if err == nil {
		t.Fatal("expected conflict for second profile on same user")
	}
}

func TestCreateProfile_InvalidGender(t *testing.T) {
	svc, _ := newTestService()
	g := "unknown"
	err := svc.CreateProfile(context.Background(), &Profile{UserID: uuid.New(), Gender: &g})
	if err == nil {
		t.Error("expected error for invalid gender")
	}
}

func TestCreateProfile_FutureDateOfBirth(t *testing.T) {
	svc, _ := newTestService()
	dob := time.Now().Add(48 * time.Hour)
	err := svc.CreateProfile(context.Background(), &Profile{UserID: uuid.New(), DateOfBirth: &dob})
	if err == nil {
		t.Error("expected error for future date of birth")
	}
}

func TestSetPicture(t *testing.T) {
	svc, _ := newTestService()
	p := &Profile{UserID: uuid.New()}
	svc.CreateProfile(context.Background(), p)

	got, err := svc.SetPicture(context.Background(), p.ID, "/media/profiles/x.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ProfilePicture == nil || *got.ProfilePicture != "/media/profiles/x.png" {
		t.Error("expected picture path to be recorded")
	}
}

func TestSetPicture_UnknownProfile(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.SetPicture(context.Background(), uuid.New(), "/media/x.png"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestGetProfileByUser(t *testing.T) {
	svc, _ := newTestService()
	userID := uuid.New()
	p := &Profile{UserID: userID}
	svc.CreateProfile(context.Background(), p)

	got, err := svc.GetProfileByUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != p.ID {
		t.Error("unexpected profile returned")
	}
}
