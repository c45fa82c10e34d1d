package settings

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dentalpoint/clinic-service/internal/chart"
)

type Handler struct {
	repo RepositoryInterface
}

func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

type NotationResponse struct {
	Success  bool           `json:"success"`
	Notation chart.Notation `json:"notation"`
	// Chart is the 32-position chart labelled in the selected notation.
	Chart []chart.ToothNotation `json:"chart"`
}

type SetNotationRequest struct {
	Notation chart.Notation `json:"notation"`
}

type CurrencyResponse struct {
	Success  bool     `json:"success"`
	Currency Currency `json:"currency"`
}

type SetCurrencyRequest struct {
	Currency Currency `json:"currency"`
}

func (h *Handler) GetNotation(w http.ResponseWriter, r *http.Request) {
	n, err := h.repo.Notation(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(NotationResponse{
		Success:  true,
		Notation: n,
		Chart:    chart.NotationChart(n),
	})
}

func (h *Handler) SetNotation(w http.ResponseWriter, r *http.Request) {
	var req SetNotationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	if err := h.repo.SetNotation(r.Context(), req.Notation); err != nil {
		if errors.Is(err, ErrInvalidNotation) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Notation system saved",
	})
}

func (h *Handler) GetCurrency(w http.ResponseWriter, r *http.Request) {
	c, err := h.repo.Currency(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CurrencyResponse{Success: true, Currency: c})
}

func (h *Handler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	var req SetCurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	if err := h.repo.SetCurrency(r.Context(), req.Currency); err != nil {
		if errors.Is(err, ErrInvalidCurrency) {
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Currency saved",
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
