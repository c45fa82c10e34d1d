package catalog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

type Handler struct {
	repo RepositoryInterface
}

func NewHandler(repo RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

type GroupListResponse struct {
	Success bool    `json:"success"`
	Groups  []Group `json:"groups"`
}

type ItemListResponse struct {
	Success bool   `json:"success"`
	Items   []Item `json:"items"`
}

type UpdatePriceRequest struct {
	Price float64 `json:"price"`
}

func (h *Handler) ListAllServices(w http.ResponseWriter, r *http.Request) {
	groups, err := h.repo.AllServices(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GroupListResponse{Success: true, Groups: groups})
}

func (h *Handler) ListAvailableServices(w http.ResponseWriter, r *http.Request) {
	items, err := h.repo.AvailableServices(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ItemListResponse{Success: true, Items: items})
}

// ReplaceAvailableServices overwrites the clinic's priced list with the
// submitted one.
func (h *Handler) ReplaceAvailableServices(w http.ResponseWriter, r *http.Request) {
	var items []Item
	if err := json.NewDecoder(r.Body).Decode(&items); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	for _, item := range items {
		if item.Name == "" {
			respondError(w, http.StatusBadRequest, "validation_error", "Every service needs a name")
			return
		}
		if item.Price < 0 {
			respondError(w, http.StatusBadRequest, "validation_error", "Prices cannot be negative")
			return
		}
	}

	if err := h.repo.ReplaceAvailableServices(r.Context(), items); err != nil {
		respondError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Available services saved successfully",
	})
}

// UpdatePrice changes one price without rewriting the list.
func (h *Handler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["index"])
	if err != nil || index < 0 {
		respondError(w, http.StatusBadRequest, "invalid_index", "Index must be a non-negative integer")
		return
	}

	var req UpdatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if req.Price < 0 {
		respondError(w, http.StatusBadRequest, "validation_error", "Prices cannot be negative")
		return
	}

	items, err := h.repo.AvailableServices(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	if index >= len(items) {
		respondError(w, http.StatusNotFound, "not_found", "No service at this index")
		return
	}

	if err := h.repo.UpdatePrice(r.Context(), index, req.Price); err != nil {
		respondError(w, http.StatusInternalServerError, "save_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Price updated successfully",
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
