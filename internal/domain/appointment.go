package domain

import (
	"fmt"
	"time"
)

// AppointmentStatus is the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentScheduled, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled
}

// Layouts of the Date and Time fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment is a booked visit between a patient and a doctor.
type Appointment struct {
	ID          string            `json:"id"`
	PatientID   string            `json:"patientId"`
	PatientName string            `json:"patientName"`
	DoctorID    string            `json:"doctorId,omitempty"`
	DoctorName  string            `json:"doctorName"`
	Date        string            `json:"date"`
	Time        string            `json:"time"`
	Type        string            `json:"type,omitempty"`
	Reason      string            `json:"reason,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// StartsAt combines Date and Time in loc.
func (a Appointment) StartsAt(loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, a.Date+" "+a.Time, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("appointment %s: %w", a.ID, err)
	}
	return t, nil
}

// TransitionError is returned when an appointment cannot move to the
// requested status.
type TransitionError struct {
	From AppointmentStatus
	To   AppointmentStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move appointment from %s to %s", e.From, e.To)
}

// Transition moves a scheduled appointment to next. Only scheduled
// appointments change state; completed and cancelled are final.
func (a *Appointment) Transition(next AppointmentStatus, at time.Time) error {
	if a.Status.Terminal() || !next.Valid() {
		return &TransitionError{From: a.Status, To: next}
	}
	a.Status = next
	a.UpdatedAt = at
	return nil
}
