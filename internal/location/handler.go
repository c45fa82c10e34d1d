package location

import (
	"encoding/json"
	"net/http"
)

type Handler struct {
	repo RepositoryInterface
}

func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

type CountryListResponse struct {
	Success   bool      `json:"success"`
	Countries []Country `json:"countries"`
}

type CountyListResponse struct {
	Success  bool     `json:"success"`
	Counties []County `json:"counties"`
}

func (h *Handler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.repo.Countries(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CountryListResponse{Success: true, Countries: countries})
}

func (h *Handler) ListCounties(w http.ResponseWriter, r *http.Request) {
	counties, err := h.repo.Counties(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(CountyListResponse{Success: true, Counties: counties})
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
