package chart

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

type Handler struct {
	repo RepositoryInterface
}

func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

type ChartResponse struct {
	Success bool    `json:"success"`
	Chart   []Tooth `json:"chart"`
}

type ToothResponse struct {
	Success bool   `json:"success"`
	Tooth   *Tooth `json:"tooth"`
}

type AddPreviousCareRequest struct {
	Treatment   string    `json:"treatment"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	teeth, err := h.repo.GetChart(r.Context(), key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ChartResponse{Success: true, Chart: teeth})
}

// SaveChart replaces the whole 32-position chart.
func (h *Handler) SaveChart(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	var teeth []Tooth
	if err := json.NewDecoder(r.Body).Decode(&teeth); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	if err := h.repo.SaveChart(r.Context(), key, teeth); err != nil {
		respondError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Chart saved successfully",
	})
}

// SaveTooth replaces one tooth by chart index (0-based, chart position minus
// one).
func (h *Handler) SaveTooth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	index, err := strconv.Atoi(vars["index"])
	if err != nil || index < 0 || index >= ChartSize {
		respondError(w, http.StatusBadRequest, "invalid_index", "Tooth index must be between 0 and 31")
		return
	}

	var tooth Tooth
	if err := json.NewDecoder(r.Body).Decode(&tooth); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	tooth.ID = index + 1

	if err := h.repo.SaveTooth(r.Context(), key, tooth); err != nil {
		respondError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ToothResponse{Success: true, Tooth: &tooth})
}

// AddPreviousCare appends a treatment event to one tooth.
func (h *Handler) AddPreviousCare(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	key := vars["key"]

	index, err := strconv.Atoi(vars["index"])
	if err != nil || index < 0 || index >= ChartSize {
		respondError(w, http.StatusBadRequest, "invalid_index", "Tooth index must be between 0 and 31")
		return
	}

	var req AddPreviousCareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if req.Treatment == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Treatment is required")
		return
	}

	position := index + 1
	tooth, err := h.repo.GetTooth(r.Context(), key, position)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	care := NewPreviousCare(req.Treatment, req.Description, req.Date)
	careIndex := len(tooth.PreviousCares)
	if err := h.repo.SavePreviousCare(r.Context(), key, position, careIndex, care); err != nil {
		respondError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Treatment recorded",
		"index":   careIndex,
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
