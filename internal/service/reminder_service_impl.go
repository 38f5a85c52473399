package service

import (
	"context"
	"time"

	"github.com/rmaciel/fundiario/internal/db"
	"github.com/rmaciel/fundiario/internal/repository"

	"github.com/rmaciel/fundiario/internal/domain"
)

type reminderService struct {
	appointments repository.AppointmentRepo
	marks        repository.ReminderMarkRepo
}

// NewReminderService creates the same-day appointment reminder service.
func NewReminderService(appointments repository.AppointmentRepo, marks repository.ReminderMarkRepo) ReminderService {
	return &reminderService{appointments: appointments, marks: marks}
}

// DueToday returns the owner's appointments for the day exactly once per
// day. The per-day marker is persisted and claimed atomically, so reminders
// do not repeat across process restarts or concurrent sessions.
func (s *reminderService) DueToday(ctx context.Context, ownerID string, now time.Time) ([]*domain.Appointment, error) {
	day := now.UTC().Truncate(24 * time.Hour)

	claimed, err := s.marks.Claim(ctx, ownerID, day)
	if err != nil {
		return nil, db.Normalize(err)
	}
	if !claimed {
		return nil, nil
	}

	appts, err := s.appointments.ListOnDay(ctx, ownerID, day)
	if err != nil {
		return nil, db.Normalize(err)
	}
	if appts == nil {
		// Non-nil result distinguishes "claimed, nothing due" from the
		// nil "already shown today".
		appts = []*domain.Appointment{}
	}
	return appts, nil
}
