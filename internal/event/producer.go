package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Priyanshi004/Schedula-sub001/internal/domain"
	pkgkafka "github.com/Priyanshi004/Schedula-sub001/pkg/kafka"
	"github.com/Priyanshi004/Schedula-sub001/pkg/logger"
)

// Aggregate types.
const (
	AggregateTypeReview      = "review"
	AggregateTypeAppointment = "appointment"
)

// SourceSchedula identifies events originating from this service.
const SourceSchedula = "schedula-api"

// Review actions.
const (
	ReviewCreated = "created"
	ReviewUpdated = "updated"
	ReviewDeleted = "deleted"
)

// Appointment actions.
const (
	AppointmentBooked      = "booked"
	AppointmentRescheduled = "rescheduled"
	AppointmentCancelled   = "cancelled"
	AppointmentCompleted   = "completed"
	AppointmentDeleted     = "deleted"
)

// Publisher delivers an event envelope to a topic. *pkgkafka.Producer
// satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// NopPublisher drops every event. It is wired when Kafka is disabled.
type NopPublisher struct{}

// Publish does nothing.
func (NopPublisher) Publish(context.Context, string, *pkgkafka.Event) error { return nil }

// ReviewData is the payload of review events.
type ReviewData struct {
	ReviewID      string    `json:"review_id"`
	AppointmentID string    `json:"appointment_id"`
	PatientID     string    `json:"patient_id,omitempty"`
	DoctorName    string    `json:"doctor_name,omitempty"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
}

// AppointmentData is the payload of appointment events.
type AppointmentData struct {
	AppointmentID string     `json:"appointment_id"`
	PatientID     string     `json:"patient_id"`
	DoctorID      string     `json:"doctor_id,omitempty"`
	DoctorName    string     `json:"doctor_name"`
	Date          string     `json:"date"`
	Time          string     `json:"time"`
	Status        string     `json:"status"`
	StartsAt      *time.Time `json:"starts_at,omitempty"`
}

// Producer turns domain changes into events.
type Producer struct {
	pub    Publisher
	logger *slog.Logger
}

// NewProducer creates a producer publishing through pub.
func NewProducer(pub Publisher, logger *slog.Logger) *Producer {
	if pub == nil {
		pub = NopPublisher{}
	}
	return &Producer{pub: pub, logger: logger}
}

// PublishReview publishes review.<action> for r.
func (p *Producer) PublishReview(ctx context.Context, action string, r domain.Review, at time.Time) error {
	data := ReviewData{
		ReviewID:      r.ID,
		AppointmentID: r.AppointmentID,
		PatientID:     r.PatientID,
		DoctorName:    r.DoctorName,
		Rating:        r.Rating,
		CreatedAt:     r.CreatedAt,
	}
	return p.publish(ctx, AggregateTypeReview, action, r.ID, at, data)
}

// PublishAppointment publishes appointment.<action> for a.
func (p *Producer) PublishAppointment(ctx context.Context, action string, a domain.Appointment, at time.Time) error {
	data := AppointmentData{
		AppointmentID: a.ID,
		PatientID:     a.PatientID,
		DoctorID:      a.DoctorID,
		DoctorName:    a.DoctorName,
		Date:          a.Date,
		Time:          a.Time,
		Status:        string(a.Status),
	}
	if starts, err := a.StartsAt(time.UTC); err == nil {
		data.StartsAt = &starts
	}
	return p.publish(ctx, AggregateTypeAppointment, action, a.ID, at, data)
}

func (p *Producer) publish(ctx context.Context, aggregate, action, id string, at time.Time, data any) error {
	eventType := aggregate + "." + action
	topic := pkgkafka.Topic(aggregate, action)

	evt, err := pkgkafka.NewEvent(eventType, id, aggregate, SourceSchedula, at, data)
	if err != nil {
		return fmt.Errorf("create %s event: %w", eventType, err)
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt.WithCorrelationID(cid)
	}
	if pid := logger.PatientIDFromContext(ctx); pid != "" {
		evt.WithMetadata("acting_patient_id", pid)
	}

	if err := p.pub.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", eventType, err)
	}

	p.logger.DebugContext(ctx, "published domain event",
		slog.String("event_type", eventType),
		slog.String("aggregate_id", id),
	)
	return nil
}
