package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Priyanshi004/Schedula-sub001/internal/domain"
	"github.com/Priyanshi004/Schedula-sub001/internal/event"
	"github.com/Priyanshi004/Schedula-sub001/internal/repository"
	apperrors "github.com/Priyanshi004/Schedula-sub001/pkg/errors"
	"github.com/Priyanshi004/Schedula-sub001/pkg/pagination"
	"github.com/Priyanshi004/Schedula-sub001/pkg/validator"
)

const appointmentResourceName = "appointment"

// AppointmentEvents publishes appointment changes.
type AppointmentEvents interface {
	PublishAppointment(ctx context.Context, action string, a domain.Appointment, at time.Time) error
}

// BookAppointmentInput holds the fields of a new appointment.
type BookAppointmentInput struct {
	PatientID   string `json:"patientId" validate:"required,notblank,max=64"`
	PatientName string `json:"patientName" validate:"required,notblank,max=200"`
	DoctorID    string `json:"doctorId" validate:"omitempty,max=64"`
	DoctorName  string `json:"doctorName" validate:"required,notblank,max=200"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
	Type        string `json:"type" validate:"omitempty,max=64"`
	Reason      string `json:"reason" validate:"omitempty,max=1000"`
	Notes       string `json:"notes" validate:"omitempty,max=2000"`
}

// RescheduleInput moves an appointment. Nil fields are left unchanged.
type RescheduleInput struct {
	Date  *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time  *string `json:"time" validate:"omitempty,datetime=15:04"`
	Notes *string `json:"notes" validate:"omitempty,max=2000"`
}

// AppointmentFilter narrows List. Empty fields match everything.
type AppointmentFilter struct {
	PatientID  string
	DoctorID   string
	DoctorName string
	Status     domain.AppointmentStatus
}

func (f AppointmentFilter) match(a domain.Appointment) bool {
	return (f.PatientID == "" || a.PatientID == f.PatientID) &&
		(f.DoctorID == "" || a.DoctorID == f.DoctorID) &&
		(f.DoctorName == "" || a.DoctorName == f.DoctorName) &&
		(f.Status == "" || a.Status == f.Status)
}

// AppointmentService books and manages appointments.
type AppointmentService struct {
	repo   repository.RecordStore[domain.Appointment]
	events AppointmentEvents
	clock  Clock
	logger *slog.Logger

	mu sync.Mutex
}

// NewAppointmentService creates an appointment service. A nil clock uses
// time.Now.
func NewAppointmentService(repo repository.RecordStore[domain.Appointment], events AppointmentEvents, clock Clock, logger *slog.Logger) *AppointmentService {
	return &AppointmentService{
		repo:   repo,
		events: events,
		clock:  clock,
		logger: logger,
	}
}

// List returns one page of the appointments matching filter.
func (s *AppointmentService) List(ctx context.Context, filter AppointmentFilter, page pagination.Params) (*pagination.Result[domain.Appointment], error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, apperrors.InvalidInput(fmt.Sprintf("Unknown status %q", filter.Status))
	}

	all, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	matched := slices.DeleteFunc(all, func(a domain.Appointment) bool { return !filter.match(a) })
	result := pagination.Paginate(matched, page)
	return &result, nil
}

// Get returns the appointment with id.
func (s *AppointmentService) Get(ctx context.Context, id string) (*domain.Appointment, error) {
	all, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}

	i := indexOfAppointment(all, id)
	if i < 0 {
		return nil, apperrors.NotFound(appointmentResourceName, id)
	}
	return &all[i], nil
}

// Book validates input and stores a new scheduled appointment. Overlapping
// bookings are not detected.
func (s *AppointmentService) Book(ctx context.Context, input BookAppointmentInput) (*domain.Appointment, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.now()
	appt := domain.Appointment{
		ID:          uuid.NewString(),
		PatientID:   input.PatientID,
		PatientName: input.PatientName,
		DoctorID:    input.DoctorID,
		DoctorName:  input.DoctorName,
		Date:        input.Date,
		Time:        input.Time,
		Type:        input.Type,
		Reason:      input.Reason,
		Notes:       input.Notes,
		Status:      domain.AppointmentScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	all, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}
	if err := s.repo.WriteAll(ctx, append(all, appt)); err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}

	s.logger.InfoContext(ctx, "appointment booked",
		slog.String("appointment_id", appt.ID),
		slog.String("patient_id", appt.PatientID),
		slog.String("date", appt.Date),
		slog.String("time", appt.Time),
	)
	s.publish(ctx, event.AppointmentBooked, appt, now)
	return &appt, nil
}

// Reschedule changes the date, time or notes of a scheduled appointment.
func (s *AppointmentService) Reschedule(ctx context.Context, id string, input RescheduleInput) (*domain.Appointment, error) {
	if input.Date == nil && input.Time == nil && input.Notes == nil {
		return nil, apperrors.InvalidInput("At least one of date, time or notes is required")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, event.AppointmentRescheduled, func(a *domain.Appointment, now time.Time) error {
		if a.Status != domain.AppointmentScheduled {
			return apperrors.Conflict(fmt.Sprintf("Cannot reschedule a %s appointment", a.Status))
		}
		if input.Date != nil {
			a.Date = *input.Date
		}
		if input.Time != nil {
			a.Time = *input.Time
		}
		if input.Notes != nil {
			a.Notes = *input.Notes
		}
		a.UpdatedAt = now
		return nil
	})
}

// Cancel moves a scheduled appointment to cancelled.
func (s *AppointmentService) Cancel(ctx context.Context, id string) (*domain.Appointment, error) {
	return s.mutate(ctx, id, event.AppointmentCancelled, transitionTo(domain.AppointmentCancelled))
}

// Complete moves a scheduled appointment to completed.
func (s *AppointmentService) Complete(ctx context.Context, id string) (*domain.Appointment, error) {
	return s.mutate(ctx, id, event.AppointmentCompleted, transitionTo(domain.AppointmentCompleted))
}

// Delete removes appointment id regardless of status.
func (s *AppointmentService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.now()

	all, err := s.repo.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	i := indexOfAppointment(all, id)
	if i < 0 {
		return apperrors.NotFound(appointmentResourceName, id)
	}

	removed := all[i]
	if err := s.repo.WriteAll(ctx, slices.Delete(all, i, i+1)); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	s.logger.InfoContext(ctx, "appointment deleted", slog.String("appointment_id", id))
	s.publish(ctx, event.AppointmentDeleted, removed, now)
	return nil
}

func transitionTo(next domain.AppointmentStatus) func(*domain.Appointment, time.Time) error {
	return func(a *domain.Appointment, now time.Time) error {
		var te *domain.TransitionError
		if err := a.Transition(next, now); errors.As(err, &te) {
			return apperrors.Conflict(fmt.Sprintf("Appointment is already %s", te.From))
		} else if err != nil {
			return err
		}
		return nil
	}
}

// mutate runs fn on appointment id under the write lock and persists the
// result.
func (s *AppointmentService) mutate(ctx context.Context, id, action string, fn func(*domain.Appointment, time.Time) error) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.now()

	all, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s appointment: %w", action, err)
	}

	i := indexOfAppointment(all, id)
	if i < 0 {
		return nil, apperrors.NotFound(appointmentResourceName, id)
	}

	appt := all[i]
	if err := fn(&appt, now); err != nil {
		return nil, err
	}
	all[i] = appt

	if err := s.repo.WriteAll(ctx, all); err != nil {
		return nil, fmt.Errorf("%s appointment: %w", action, err)
	}

	s.logger.InfoContext(ctx, "appointment "+action,
		slog.String("appointment_id", id),
		slog.String("status", string(appt.Status)),
	)
	s.publish(ctx, action, appt, now)
	return &appt, nil
}

func (s *AppointmentService) publish(ctx context.Context, action string, a domain.Appointment, at time.Time) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishAppointment(ctx, action, a, at); err != nil {
		s.logger.WarnContext(ctx, "failed to publish appointment event",
			slog.String("action", action),
			slog.String("appointment_id", a.ID),
			slog.String("error", err.Error()),
		)
	}
}

func validateInput(input any) error {
	err := validator.Validate(input)
	if err == nil {
		return nil
	}
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		return apperrors.InvalidFields("Request validation failed", ve.Fields())
	}
	return apperrors.InvalidInput(err.Error())
}

func indexOfAppointment(all []domain.Appointment, id string) int {
	return slices.IndexFunc(all, func(a domain.Appointment) bool { return a.ID == id })
}
