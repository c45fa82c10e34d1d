package maintenance

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

type ReportErrorRequest struct {
	Message   string `json:"message"`
	Component string `json:"component"`
	Detail    string `json:"detail,omitempty"`
}

// ReportError records a client-side failure so it survives the session.
func (h *Handler) ReportError(w http.ResponseWriter, r *http.Request) {
	var req ReportErrorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Message is required")
		return
	}

	key, err := h.repo.Report(r.Context(), ErrorLog{
		Message:   req.Message,
		Component: req.Component,
		Detail:    req.Detail,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "report_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"key":     key,
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
