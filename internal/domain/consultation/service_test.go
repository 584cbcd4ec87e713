package consultation

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockConsultationRepo struct {
	items map[uuid.UUID]*Consultation
}

func newMockConsultationRepo() *mockConsultationRepo {
	return &mockConsultationRepo{items: make(map[uuid.UUID]*Consultation)}
}

func (m *mockConsultationRepo) Create(_ context.Context, c *Consultation) error {
	c.ID = uuid.New()
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	m.items[c.ID] = c
	return nil
}

func (m *mockConsultationRepo) GetByID(_ context.Context, id uuid.UUID) (*Consultation, error) {
	c, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return c, nil
}

func (m *mockConsultationRepo) Update(_ context.Context, c *Consultation) error {
	m.items[c.ID] = c
	return nil
}

func (m *mockConsultationRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.items, id)
	return nil
}

func (m *mockConsultationRepo) List(_ context.Context, limit, offset int) ([]*Consultation, int, error) {
	var result []*Consultation
	for _, c := range m.items {
		result = append(result, c)
	}
	return result, len(result), nil
}

func (m *mockConsultationRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	var result []*Consultation
	for _, c := range m.items {
		if c.PatientID == patientID {
			result = append(result, c)
		}
	}
	return result, len(result), nil
}

func (m *mockConsultationRepo) ListByDoctor(_ context.Context, doctorID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	var result []*Consultation
	for _, c := range m.items {
		if c.DoctorID == doctorID {
			result = append(result, c)
		}
	}
	return result, len(result), nil
}

func newTestService() (*Service, *mockConsultationRepo) {
	repo := newMockConsultationRepo()
	return NewService(repo), repo
}

func TestCreateConsultation_Defaults(t *testing.T) {
	svc, _ := newTestService()
	c := &Consultation{PatientID: uuid.New(), DoctorID: uuid.New()}
	if err := svc.CreateConsultation(context.Background(), c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ConsultationType != "general" || c.Status != "pending" {
		t.Errorf("expected general/pending defaults, got %s/%s", c.ConsultationType, c.Status)
	}
}

func TestCreateConsultation_RequiredParticipants(t *testing.T) {
	svc, _ := newTestService()
	if err := svc.CreateConsultation(context.Background(), &Consultation{DoctorID: uuid.New()}); err == nil {
		t.Error("expected error for missing patient")
	}
	if err := svc.CreateConsultation(context.Background(), &Consultation{PatientID: uuid.New()}); err == nil {
		t.Error("expected error for missing doctor")
	}
}

func TestCreateConsultation_InvalidType(t *testing.T) {
	svc, _ := newTestService()
	c := &Consultation{PatientID: uuid.New(), DoctorID: uuid.New(), ConsultationType: "astrology"}
	if err := svc.CreateConsultation(context.Background(), c); err == nil {
		t.Error("expected error for invalid type")
	}
}

func TestUpdateConsultation_InvalidStatus(t *testing.T) {
	svc, _ := newTestService()
	c := &Consultation{PatientID: uuid.New(), DoctorID: uuid.New()}
	svc.CreateConsultation(context.Background(), c)
	c.Status = "paused"
	if err := svc.UpdateConsultation(context.Background(), c); err == nil {
		t.Error("expected error for invalid status")
	}
}

func TestListByParticipant(t *testing.T) {
	svc, _ := newTestService()
	patientID := uuid.New()
	doctorID := uuid.New()
	svc.CreateConsultation(context.Background(), &Consultation{PatientID: patientID, DoctorID: doctorID})
	svc.CreateConsultation(context.Background(), &Consultation{PatientID: uuid.New(), DoctorID: doctorID})

	_, total, err := svc.ListByPatient(context.Background(), patientID, 20, 0)
	if err != nil || total != 1 {
		t.Errorf("expected 1 consultation for patient, got %d (%v)", total, err)
	}
	_, total, err = svc.ListByDoctor(context.Background(), doctorID, 20, 0)
	if err != nil || total != 2 {
		t.Errorf("expected 2 consultations for doctor, got %d (%v)", total, err)
	}
}
