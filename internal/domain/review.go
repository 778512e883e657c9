package domain

import (
	"math"
	"time"
)

// Rating bounds for a review.
const (
	MinRating = 1
	MaxRating = 5
)

// Review is one patient's feedback on one completed appointment.
type Review struct {
	ID            string    `json:"id"`
	AppointmentID string    `json:"appointmentId"`
	PatientID     string    `json:"patientId,omitempty"`
	PatientName   string    `json:"patientName,omitempty"`
	DoctorName    string    `json:"doctorName,omitempty"`
	Rating        int       `json:"rating"`
	ReviewText    string    `json:"reviewText"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ValidRating reports whether r is within [MinRating, MaxRating].
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// Editable reports whether the review may still be changed at now.
func (r Review) Editable(now time.Time) bool {
	return IsEditable(r.CreatedAt, now)
}

// View returns the review as clients see it, with CanEdit evaluated at now.
func (r Review) View(now time.Time) ReviewView {
	return ReviewView{Review: r, CanEdit: r.Editable(now)}
}

// ReviewView is a Review plus the computed canEdit flag. CanEdit is never
// persisted.
type ReviewView struct {
	Review
	CanEdit bool `json:"canEdit"`
}

// ReviewSummary aggregates the ratings one doctor has received.
type ReviewSummary struct {
	DoctorName    string  `json:"doctorName"`
	AverageRating float64 `json:"averageRating"`
	TotalCount    int     `json:"totalCount"`
}

// Summarize groups reviews by doctor name in order of first appearance.
// Averages are rounded to one decimal place.
func Summarize(reviews []Review) []ReviewSummary {
	type acc struct {
		sum, count int
	}
	order := make([]string, 0)
	totals := make(map[string]*acc)

	for _, r := range reviews {
		a, ok := totals[r.DoctorName]
		if !ok {
			a = &acc{}
			totals[r.DoctorName] = a
			order = append(order, r.DoctorName)
		}
		a.sum += r.Rating
		a.count++
	}

	out := make([]ReviewSummary, 0, len(order))
	for _, name := range order {
		a := totals[name]
		avg := float64(a.sum) / float64(a.count)
		out = append(out, ReviewSummary{
			DoctorName:    name,
			AverageRating: math.Round(avg*10) / 10,
			TotalCount:    a.count,
		})
	}
	return out
}
