package appointment

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/dentalpoint/clinic-service/internal/pagination"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

// AppointmentEntry pairs an appointment with its storage key in responses.
type AppointmentEntry struct {
	Key         string      `json:"key"`
	Appointment Appointment `json:"appointment"`
}

type AppointmentResponse struct {
	Success     bool         `json:"success"`
	Key         string       `json:"key"`
	Appointment *Appointment `json:"appointment"`
}

type AppointmentListResponse struct {
	Success      bool               `json:"success"`
	Appointments []AppointmentEntry `json:"appointments"`
	Pagination   pagination.Meta    `json:"pagination"`
}

// ListAppointments serves appointments filtered by date, phone or name.
// Without a filter it lists from today forward. Results are ordered by key,
// which is chronological order.
func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)
	filter := Filter{
		Date:  r.URL.Query().Get("date"),
		Phone: r.URL.Query().Get("phone"),
		Name:  r.URL.Query().Get("name"),
	}

	appts, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	keys := make([]string, 0, len(appts))
	for key := range appts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	page := pagination.Page(keys, params)
	entries := make([]AppointmentEntry, 0, len(page))
	for _, key := range page {
		entries = append(entries, AppointmentEntry{Key: key, Appointment: appts[key]})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentListResponse{
		Success:      true,
		Appointments: entries,
		Pagination:   params.CalculateMeta(len(keys)),
	})
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	appt, err := h.service.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Appointment not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(AppointmentResponse{
		Success:     true,
		Key:         key,
		Appointment: appt,
	})
}

func (h *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	if err := h.service.Delete(r.Context(), key); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respondError(w, http.StatusNotFound, "not_found", "Appointment not found")
		case errors.Is(err, ErrMissingKey):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "deletion_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Appointment deleted successfully",
	})
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
