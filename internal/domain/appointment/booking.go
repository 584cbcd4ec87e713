package appointment

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BookingRequest is the wizard submission: contact details plus the chosen
// date and time. Time accepts both "HH:MM" and "h:MM AM/PM".
type BookingRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Phone  string    `json:"phone"`
	Date   string    `json:"date"`
	Time   string    `json:"time"`
	Notes  string    `json:"notes,omitempty"`
}

// BookingResult echoes the entered contact details alongside the created
// appointment.
type BookingResult struct {
	Appointment *Appointment `json:"appointment"`
	Name        string       `json:"name"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// validateDetails is the wizard's first step.
func validateDetails(req *BookingRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if !emailPattern.MatchString(req.Email) {
		return fmt.Errorf("invalid email address")
	}
	if n := digitCount(req.Phone); n < 7 || n > 15 {
		return fmt.Errorf("phone number must have 7 to 15 digits")
	}
	return nil
}

// validateTiming is the wizard's second step: the date must not be in the
// past and the slot must be on the grid and free.
func (s *Service) validateTiming(ctx context.Context, req *BookingRequest) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", req.Date)
	}
	today := s.now().In(s.loc)
	todayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.loc)
	if day.Before(todayStart) {
		return time.Time{}, fmt.Errorf("date %s is in the past", req.Date)
	}

	slot, err := NormalizeSlot(req.Time)
	if err != nil {
		return time.Time{}, err
	}
	if !IsBookableSlot(slot) {
		return time.Time{}, fmt.Errorf("%s is not a bookable time", req.Time)
	}
	taken, err := s.TakenSlots(ctx, req.Date)
	if err != nil {
		return time.Time{}, err
	}
	if slotTaken(slot, taken) {
		return time.Time{}, fmt.Errorf("%s on %s: %w", req.Time, req.Date, ErrSlotTaken)
	}
	return SlotInstant(req.Date, slot, s.loc)
}

// Book runs the full wizard: details, timing, then confirmation. The created
// appointment is confirmed immediately and carries the contact details in its
// note, which downstream consumers rely on.
func (s *Service) Book(ctx context.Context, req *BookingRequest) (*BookingResult, error) {
	if req.UserID == uuid.Nil {
		return nil, fmt.Errorf("user_id is required")
	}
	if err := validateDetails(req); err != nil {
		return nil, err
	}
	instant, err := s.validateTiming(ctx, req)
	if err != nil {
		return nil, err
	}

	note := fmt.Sprintf("Booked by %s (%s, %s)", req.Name, req.Email, req.Phone)
	if strings.TrimSpace(req.Notes) != "" {
		note += ": " + strings.TrimSpace(req.Notes)
	}
	a := &Appointment{
		UserID:   req.UserID,
		DateTime: instant,
		Status:   "confirmed",
		Notes:    &note,
	}
	if err := s.appointments.Create(ctx, a); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("Your appointment on %s at %s is confirmed.",
			instant.In(s.loc).Format("January 2, 2006"), instant.In(s.loc).Format("15:04"))
		// Fan-out failures never unwind a confirmed booking.
		_ = s.notifier.Notify(ctx, req.UserID, "Appointment confirmed", msg, "appointment_status", &a.ID)
	}

	return &BookingResult{Appointment: a, Name: req.Name, Email: req.Email, Phone: req.Phone}, nil
}
