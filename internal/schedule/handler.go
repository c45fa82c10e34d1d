package schedule

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type WeekResponse struct {
	Success bool  `json:"success"`
	Week    *Week `json:"week"`
}

// GetWeek serves the weekly grid. anchor defaults to today, delta to 0.
func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	anchor := time.Now()
	if raw := r.URL.Query().Get("anchor"); raw != "" {
		parsed, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_anchor", "Anchor must be formatted as yyyy-MM-dd")
			return
		}
		anchor = parsed
	}

	delta := 0
	if raw := r.URL.Query().Get("delta"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_delta", "Delta must be an integer number of weeks")
			return
		}
		delta = parsed
	}

	week, err := h.service.Week(r.Context(), anchor, delta)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(WeekResponse{Success: true, Week: week})
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
