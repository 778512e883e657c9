package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Priyanshi004/Schedula-sub001/internal/domain"
	"github.com/Priyanshi004/Schedula-sub001/internal/service"
	"github.com/Priyanshi004/Schedula-sub001/pkg/httputil"
	"github.com/Priyanshi004/Schedula-sub001/pkg/pagination"
)

// AppointmentHandler serves the /appointments resource.
type AppointmentHandler struct {
	service *service.AppointmentService
	logger  *slog.Logger
}

// NewAppointmentHandler creates an appointment handler.
func NewAppointmentHandler(svc *service.AppointmentService, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		service: svc,
		logger:  logger,
	}
}

// ListAppointments handles GET /appointments.
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := service.AppointmentFilter{
		PatientID:  q.Get("patientId"),
		DoctorID:   q.Get("doctorId"),
		DoctorName: q.Get("doctorName"),
		Status:     domain.AppointmentStatus(q.Get("status")),
	}

	page, err := h.service.List(r.Context(), filter, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, page)
}

// GetAppointment handles GET /appointments/{id}.
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, appt)
}

// BookAppointment handles POST /appointments.
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var input service.BookAppointmentInput
	if err := decodeJSON(r, &input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	appt, err := h.service.Book(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, appt)
}

// RescheduleAppointment handles PUT /appointments/{id}.
func (h *AppointmentHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	var input service.RescheduleInput
	if err := decodeJSON(r, &input); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	appt, err := h.service.Reschedule(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, appt)
}

// CancelAppointment handles POST /appointments/{id}/cancel.
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, appt)
}

// CompleteAppointment handles POST /appointments/{id}/complete.
func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := h.service.Complete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, appt)
}

// DeleteAppointment handles DELETE /appointments/{id}.
func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.SuccessBody{Success: true})
}
