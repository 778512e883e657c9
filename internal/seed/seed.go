// Package seed loads demo appointments and reviews from a YAML fixture
// through the regular services, so every seeded record passes the same
// validation as an API request.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Priyanshi004/Schedula-sub001/internal/domain"
	"github.com/Priyanshi004/Schedula-sub001/internal/service"
)

// Fixture is the document layout of a seed file.
type Fixture struct {
	Appointments []AppointmentFixture `yaml:"appointments"`
	Reviews      []ReviewFixture      `yaml:"reviews"`
}

// AppointmentFixture is one appointment to book. A status of completed or
// cancelled is applied after booking.
type AppointmentFixture struct {
	PatientID   string `yaml:"patientId"`
	PatientName string `yaml:"patientName"`
	DoctorID    string `yaml:"doctorId"`
	DoctorName  string `yaml:"doctorName"`
	Date        string `yaml:"date"`
	Time        string `yaml:"time"`
	Type        string `yaml:"type"`
	Reason      string `yaml:"reason"`
	Notes       string `yaml:"notes"`
	Status      string `yaml:"status"`
}

// ReviewFixture is one review. Appointment refers to an entry of
// Fixture.Appointments by index and fills in the appointment, patient and
// doctor fields. AgeHours backdates the review so locked reviews can be
// seeded.
type ReviewFixture struct {
	Appointment   *int    `yaml:"appointment"`
	AppointmentID string  `yaml:"appointmentId"`
	PatientID     string  `yaml:"patientId"`
	PatientName   string  `yaml:"patientName"`
	DoctorName    string  `yaml:"doctorName"`
	Rating        int     `yaml:"rating"`
	ReviewText    string  `yaml:"reviewText"`
	AgeHours      float64 `yaml:"ageHours"`
}

// Decode parses a fixture, rejecting unknown keys.
func Decode(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed fixture: %w", err)
	}
	return &f, nil
}

// Result counts what Apply created.
type Result struct {
	Appointments int
	Reviews      int
}

// Seeder applies fixtures through the services.
type Seeder struct {
	reviews      *service.ReviewService
	appointments *service.AppointmentService
	now          func() time.Time
	logger       *slog.Logger
}

// New creates a seeder. A nil now uses time.Now.
func New(reviews *service.ReviewService, appointments *service.AppointmentService, now func() time.Time, logger *slog.Logger) *Seeder {
	if now == nil {
		now = time.Now
	}
	return &Seeder{
		reviews:      reviews,
		appointments: appointments,
		now:          now,
		logger:       logger,
	}
}

// Apply books every appointment, then creates every review. It stops at the
// first failure; records created before it are kept.
func (s *Seeder) Apply(ctx context.Context, f *Fixture) (Result, error) {
	var res Result
	booked := make([]*domain.Appointment, 0, len(f.Appointments))

	for i, af := range f.Appointments {
		appt, err := s.book(ctx, af)
		if err != nil {
			return res, fmt.Errorf("appointment %d: %w", i, err)
		}
		booked = append(booked, appt)
		res.Appointments++
	}

	now := s.now()
	for i, rf := range f.Reviews {
		input := service.CreateReviewInput{
			AppointmentID: rf.AppointmentID,
			PatientID:     rf.PatientID,
			PatientName:   rf.PatientName,
			DoctorName:    rf.DoctorName,
			Rating:        &rf.Rating,
			ReviewText:    rf.ReviewText,
		}
		if rf.Appointment != nil {
			idx := *rf.Appointment
			if idx < 0 || idx >= len(booked) {
				return res, fmt.Errorf("review %d: appointment index %d out of range", i, idx)
			}
			appt := booked[idx]
			input.AppointmentID = appt.ID
			input.PatientID = appt.PatientID
			input.PatientName = appt.PatientName
			input.DoctorName = appt.DoctorName
		}
		if rf.AgeHours > 0 {
			createdAt := now.Add(-time.Duration(rf.AgeHours * float64(time.Hour)))
			input.CreatedAt = &createdAt
		}

		if _, err := s.reviews.Create(ctx, input); err != nil {
			return res, fmt.Errorf("review %d: %w", i, err)
		}
		res.Reviews++
	}

	s.logger.InfoContext(ctx, "seed fixture applied",
		slog.Int("appointments", res.Appointments),
		slog.Int("reviews", res.Reviews),
	)
	return res, nil
}

func (s *Seeder) book(ctx context.Context, af AppointmentFixture) (*domain.Appointment, error) {
	status := domain.AppointmentStatus(af.Status)
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("unknown status %q", af.Status)
	}

	appt, err := s.appointments.Book(ctx, service.BookAppointmentInput{
		PatientID:   af.PatientID,
		PatientName: af.PatientName,
		DoctorID:    af.DoctorID,
		DoctorName:  af.DoctorName,
		Date:        af.Date,
		Time:        af.Time,
		Type:        af.Type,
		Reason:      af.Reason,
		Notes:       af.Notes,
	})
	if err != nil {
		return nil, err
	}

	switch status {
	case domain.AppointmentCompleted:
		return s.appointments.Complete(ctx, appt.ID)
	case domain.AppointmentCancelled:
		return s.appointments.Cancel(ctx, appt.ID)
	default:
		return appt, nil
	}
}
