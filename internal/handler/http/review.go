package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Priyanshi004/Schedula-sub001/internal/service"
	"github.com/Priyanshi004/Schedula-sub001/pkg/httputil"
)

// ReviewHandler serves the /reviews resource.
type ReviewHandler struct {
	service *service.ReviewService
	logger  *slog.Logger
}

// NewReviewHandler creates a review handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: svc,
		logger:  logger,
	}
}

// ListReviews handles GET /reviews.
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.service.List(r.Context()))
}

// GetReview handles GET /reviews/{id}.
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

// CreateReview handles POST /reviews.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var input service.CreateReviewInput
	if err := decodeJSON(r, &input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := h.service.Create(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, view)
}

// UpdateReview handles PUT /reviews/{id}.
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var input service.UpdateReviewInput
	if err := decodeJSON(r, &input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.SuccessBody{Success: true, Review: view})
}

// DeleteReview handles DELETE /reviews/{id}.
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.SuccessBody{Success: true})
}

// ReviewSummaries handles GET /reviews/summary.
func (h *ReviewHandler) ReviewSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.service.Summaries(r.Context(), r.URL.Query().Get("doctorName"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, summaries)
}
