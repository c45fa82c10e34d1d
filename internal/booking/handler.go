package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dentalpoint/clinic-service/internal/appointment"
)

type Handler struct {
	coordinator *Coordinator
}

func NewHandler(coordinator *Coordinator) *Handler {
	return &Handler{coordinator: coordinator}
}

type SaveAppointmentRequest struct {
	FirstName     string    `json:"firstName"`
	LastName      string    `json:"lastName"`
	Phone         string    `json:"phone"`
	CabinetNumber int       `json:"cabinetNumber"`
	Date          time.Time `json:"date"`
	Description   string    `json:"description"`
	// PreviousKey identifies the appointment being rescheduled; empty for a
	// new booking.
	PreviousKey string `json:"previousKey,omitempty"`
}

type SaveSuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Result  *SaveResult `json:"result"`
}

type ConflictResponse struct {
	Success       bool             `json:"success"`
	Error         string           `json:"error"`
	ConflictToken string           `json:"conflict_token"`
	Conflict      *ConflictDetails `json:"conflict"`
}

type ResolveConflictRequest struct {
	Choice Choice `json:"choice"`
}

// SaveAppointment books or reschedules an appointment. A registration
// conflict answers 409 with a token; the save stays suspended until the
// token is resolved or cancelled.
func (h *Handler) SaveAppointment(w http.ResponseWriter, r *http.Request) {
	var req SaveAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	appt := appointment.Appointment{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		CabinetNumber: req.CabinetNumber,
		Date:          req.Date,
		Description:   req.Description,
	}

	outcome, err := h.coordinator.Save(r.Context(), appt, req.PreviousKey)
	if err != nil {
		status := http.StatusInternalServerError
		errType := "save_failed"
		if errors.Is(err, ErrMissingFirstName) || errors.Is(err, ErrMissingLastName) ||
			errors.Is(err, ErrMissingPhone) || errors.Is(err, ErrMissingDate) {
			status = http.StatusBadRequest
			errType = "validation_error"
		}
		respondError(w, status, errType, err.Error())
		return
	}

	if outcome.Conflict != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(ConflictResponse{
			Success:       false,
			Error:         "registration_conflict",
			ConflictToken: outcome.ConflictToken,
			Conflict:      outcome.Conflict,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SaveSuccessResponse{
		Success: true,
		Message: "Appointment saved successfully",
		Result:  outcome.Result,
	})
}

// ResolveConflict feeds a choice to a suspended save and reports how the
// save concluded.
func (h *Handler) ResolveConflict(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	var req ResolveConflictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if !req.Choice.Valid() {
		respondError(w, http.StatusBadRequest, "invalid_choice", "Choice must be cancel, override_appointment or override_patient")
		return
	}

	result, err := h.coordinator.Resolve(r.Context(), token, req.Choice)
	if err != nil {
		if errors.Is(err, ErrConflictNotFound) {
			respondError(w, http.StatusNotFound, "conflict_not_found", "No pending conflict for this token")
			return
		}
		respondError(w, http.StatusInternalServerError, "resolve_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SaveSuccessResponse{
		Success: true,
		Message: "Conflict resolved",
		Result:  result,
	})
}

// CancelConflict abandons a suspended save. Closing the conflict dialog in
// the client maps here.
func (h *Handler) CancelConflict(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	if err := h.coordinator.Cancel(r.Context(), token); err != nil {
		if errors.Is(err, ErrConflictNotFound) {
			respondError(w, http.StatusNotFound, "conflict_not_found", "No pending conflict for this token")
			return
		}
		respondError(w, http.StatusInternalServerError, "cancel_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Save cancelled",
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
