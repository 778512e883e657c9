package service

import (
	"context"
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
)

// Client-facing review messages.
const (
	MsgMissingFields   = "Missing required fields"
	MsgRatingRange     = "Rating must be between 1 and 5"
	MsgReviewLocked    = "Review can no longer be edited (24-hour limit exceeded)"
	reviewResourceName = "review"
)

// ReviewEvents publishes review changes.
type ReviewEvents interface {
	PublishReview(ctx context.Context, action string, r domain.Review, at time.Time) error
}

// CreateReviewInput is a candidate review. Rating is a pointer so a missing
// rating can be told apart from an out-of-range one.
type CreateReviewInput struct {
	AppointmentID string     `json:"appointmentId"`
	PatientID     string     `json:"patientId"`
	PatientName   string     `json:"patientName"`
	DoctorName    string     `json:"doctorName"`
	Rating        *int       `json:"rating"`
	ReviewText    string     `json:"reviewText"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
}

// UpdateReviewInput is a partial update. Nil fields are left unchanged.
type UpdateReviewInput struct {
	Rating     *int    `json:"rating"`
	ReviewText *string `json:"reviewText"`
}

// ReviewService owns the review lifecycle. Mutations are serialized by mu so
// concurrent read-modify-write cycles cannot overwrite each other.
type ReviewService struct {
	repo   repository.RecordStore[domain.Review]
	events ReviewEvents
	clock  Clock
	logger *slog.Logger

	mu sync.Mutex
}

// NewReviewService creates a review service. A nil clock uses time.Now.
func NewReviewService(repo repository.RecordStore[domain.Review], events ReviewEvents, clock Clock, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:   repo,
		events: events,
		clock:  clock,
		logger: logger,
	}
}

// List returns every review in insertion order. A store that cannot be read
// is logged and yields an empty list.
func (s *ReviewService) List(ctx context.Context) []domain.Review {
	reviews, err := s.repo.ReadAll(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to read reviews, returning empty list",
			slog.String("error", err.Error()),
		)
		return []domain.Review{}
	}
	return reviews
}

// Get returns the review with id and whether it can still be edited.
func (s *ReviewService) Get(ctx context.Context, id string) (*domain.ReviewView, error) {
	now := s.clock.now()

	reviews, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}

	i := indexOfReview(reviews, id)
	if i < 0 {
		return nil, apperrors.NotFound(reviewResourceName, id)
	}

	view := reviews[i].View(now)
	return &view, nil
}

// Summaries aggregates ratings per doctor. A non-empty doctorName limits the
// result to that doctor.
func (s *ReviewService) Summaries(ctx context.Context, doctorName string) ([]domain.ReviewSummary, error) {
	reviews, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("summarize reviews: %w", err)
	}

	if doctorName != "" {
		reviews = slices.DeleteFunc(reviews, func(r domain.Review) bool {
			return r.DoctorName != doctorName
		})
	}
	return domain.Summarize(reviews), nil
}

// Create validates input, assigns an id and timestamps, and appends the
// review.
func (s *ReviewService) Create(ctx context.Context, input CreateReviewInput) (*domain.ReviewView, error) {
	if input.AppointmentID == "" || input.Rating == nil {
		return nil, apperrors.InvalidInput(MsgMissingFields)
	}
	if !domain.ValidRating(*input.Rating) {
		return nil, apperrors.InvalidInput(MsgRatingRange)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.now()
	// A supplied createdAt may backdate a review but never move it past now,
	// otherwise the edit window would never close.
	createdAt := now
	if input.CreatedAt != nil && !input.CreatedAt.IsZero() && input.CreatedAt.Before(now) {
		createdAt = input.CreatedAt.UTC()
	}

	review := domain.Review{
		ID:            uuid.NewString(),
		AppointmentID: input.AppointmentID,
		PatientID:     input.PatientID,
		PatientName:   input.PatientName,
		DoctorName:    input.DoctorName,
		Rating:        *input.Rating,
		ReviewText:    input.ReviewText,
		CreatedAt:     createdAt,
		UpdatedAt:     now,
	}

	reviews, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	reviews = append(reviews, review)
	if err := s.repo.WriteAll(ctx, reviews); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("appointment_id", review.AppointmentID),
		slog.Int("rating", review.Rating),
	)
	s.publish(ctx, event.ReviewCreated, review, now)

	view := review.View(now)
	return &view, nil
}

// Update applies the supplied fields of input to review id. The checks run
// in a fixed order: existence, then the edit window, then field validation.
func (s *ReviewService) Update(ctx context.Context, id string, input UpdateReviewInput) (*domain.ReviewView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.now()

	reviews, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	i := indexOfReview(reviews, id)
	if i < 0 {
		return nil, apperrors.NotFound(reviewResourceName, id)
	}
	if !reviews[i].Editable(now) {
		return nil, apperrors.WindowExpired(MsgReviewLocked)
	}
	if input.Rating != nil && !domain.ValidRating(*input.Rating) {
		return nil, apperrors.InvalidInput(MsgRatingRange)
	}

	review := reviews[i]
	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.ReviewText != nil {
		review.ReviewText = *input.ReviewText
	}
	review.UpdatedAt = now
	if review.UpdatedAt.Before(review.CreatedAt) {
		review.UpdatedAt = review.CreatedAt
	}
	reviews[i] = review

	if err := s.repo.WriteAll(ctx, reviews); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}

	s.logger.InfoContext(ctx, "review updated", slog.String("review_id", id))
	s.publish(ctx, event.ReviewUpdated, review, now)

	view := review.View(now)
	return &view, nil
}

// Remove deletes review id while it is still inside the edit window.
func (s *ReviewService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.now()

	reviews, err := s.repo.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("remove review: %w", err)
	}

	i := indexOfReview(reviews, id)
	if i < 0 {
		return apperrors.NotFound(reviewResourceName, id)
	}
	if !reviews[i].Editable(now) {
		return apperrors.WindowExpired(MsgReviewLocked)
	}

	removed := reviews[i]
	reviews = slices.Delete(reviews, i, i+1)
	if err := s.repo.WriteAll(ctx, reviews); err != nil {
		return fmt.Errorf("remove review: %w", err)
	}

	s.logger.InfoContext(ctx, "review deleted", slog.String("review_id", id))
	s.publish(ctx, event.ReviewDeleted, removed, now)
	return nil
}

func (s *ReviewService) publish(ctx context.Context, action string, r domain.Review, at time.Time) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishReview(ctx, action, r, at); err != nil {
		s.logger.WarnContext(ctx, "failed to publish review event",
			slog.String("action", action),
			slog.String("review_id", r.ID),
			slog.String("error", err.Error()),
		)
	}
}

func indexOfReview(reviews []domain.Review, id string) int {
	return slices.IndexFunc(reviews, func(r domain.Review) bool { return r.ID == id })
}
