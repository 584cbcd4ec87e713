package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrSlotTaken reports a booking or reschedule into an occupied slot.
var ErrSlotTaken = errors.New("slot already taken")

var validStatuses = map[string]bool{
	"scheduled": true, "confirmed": true, "pending": true,
	"completed": true, "cancelled": true,
}

// Notifier receives booking events. Wired to the notification store in main;
// nil disables fan-out.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, title, message, notificationType string, relatedID *uuid.UUID) error
}

type Service struct {
	appointments AppointmentRepository
	notifier     Notifier
	loc          *time.Location
	now          func() time.Time
}

func NewService(appointments AppointmentRepository, notifier Notifier, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		appointments: appointments,
		notifier:     notifier,
		loc:          loc,
		now:          time.Now,
	}
}

func (s *Service) CreateAppointment(ctx context.Context, a *Appointment) error {
	if a.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if a.DateTime.IsZero() {
		return fmt.Errorf("date_time is required")
	}
	if a.Status == "" {
		a.Status = "scheduled"
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return s.appointments.Create(ctx, a)
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.appointments.GetByID(ctx, id)
}

func (s *Service) UpdateAppointment(ctx context.Context, a *Appointment) error {
	if a.Status != "" && !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return s.appointments.Update(ctx, a)
}

func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	return s.appointments.Delete(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.List(ctx, limit, offset)
}

func (s *Service) ListUserAppointments(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Appointment, int, error) {
	return s.appointments.ListByUser(ctx, userID, limit, offset)
}

// TakenSlots returns the occupied 24h slot values for a YYYY-MM-DD date.
// Cancelled appointments do not hold their slot.
func (s *Service) TakenSlots(ctx context.Context, date string) ([]string, error) {
	dayStart, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
	}
	items, err := s.appointments.ListActiveBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	taken := make([]string, 0, len(items))
	for _, a := range items {
		taken = append(taken, a.DateTime.In(s.loc).Format("15:04"))
	}
	return taken, nil
}

// Reschedule moves an appointment to a new date and slot after the same
// availability check booking uses. Either textual slot form is accepted.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, date, slotText string) (*Appointment, error) {
	a, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	slot, err := NormalizeSlot(slotText)
	if err != nil {
		return nil, err
	}
	if !IsBookableSlot(slot) {
		return nil, fmt.Errorf("%s is not a bookable time", slotText)
	}
	taken, err := s.TakenSlots(ctx, date)
	if err != nil {
		return nil, err
	}
	instant, err := SlotInstant(date, slot, s.loc)
	if err != nil {
		return nil, err
	}
	// Moving within the same slot is a no-op, not a conflict.
	if slotTaken(slot, taken) && !instant.Equal(a.DateTime) {
		return nil, fmt.Errorf("%s on %s: %w", slotText, date, ErrSlotTaken)
	}
	a.DateTime = instant
	if err := s.appointments.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
