package consultation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

var validStatuses = map[string]bool{
	"pending": true, "in_progress": true, "completed": true, "cancelled": true,
}

var validTypes = map[string]bool{
	"general": true, "follow_up": true, "second_opinion": true, "emergency": true,
}

type Service struct {
	consultations ConsultationRepository
}

func NewService(consultations ConsultationRepository) *Service {
	return &Service{consultations: consultations}
}

func (s *Service) CreateConsultation(ctx context.Context, c *Consultation) error {
	if c.PatientID == uuid.Nil {
		return fmt.Errorf("patient_id is required")
	}
	if c.DoctorID == uuid.Nil {
		return fmt.Errorf("doctor_id is required")
	}
	if c.ConsultationType == "" {
		c.ConsultationType = "general"
	}
	if !validTypes[c.ConsultationType] {
		return fmt.Errorf("invalid consultation_type: %s", c.ConsultationType)
	}
	if c.Status == "" {
		c.Status = "pending"
	}
	if !validStatuses[c.Status] {
		return fmt.Errorf("invalid status: %s", c.Status)
	}
	return s.consultations.Create(ctx, c)
}

func (s *Service) GetConsultation(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	return s.consultations.GetByID(ctx, id)
}

func (s *Service) UpdateConsultation(ctx context.Context, c *Consultation) error {
	if c.Status != "" && !validStatuses[c.Status] {
		return fmt.Errorf("invalid status: %s", c.Status)
	}
	if c.ConsultationType != "" && !validTypes[c.ConsultationType] {
		return fmt.Errorf("invalid consultation_type: %s", c.ConsultationType)
	}
	return s.consultations.Update(ctx, c)
}

func (s *Service) DeleteConsultation(ctx context.Context, id uuid.UUID) error {
	return s.consultations.Delete(ctx, id)
}

func (s *Service) ListConsultations(ctx context.Context, limit, offset int) ([]*Consultation, int, error) {
	return s.consultations.List(ctx, limit, offset)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	return s.consultations.ListByPatient(ctx, patientID, limit, offset)
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	return s.consultations.ListByDoctor(ctx, doctorID, limit, offset)
}
