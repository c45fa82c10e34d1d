package patient

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/dentalpoint/clinic-service/internal/filestore"
	"github.com/dentalpoint/clinic-service/internal/pagination"
)

// maxXRayBytes caps a single upload at 10 MiB.
const maxXRayBytes = 10 << 20

type Handler struct {
	service ServiceInterface
	xrays   filestore.Interface
}

func NewHandler(service ServiceInterface, xrays filestore.Interface) *Handler {
	return &Handler{service: service, xrays: xrays}
}

// PatientEntry pairs a patient with their phone key in listings.
type PatientEntry struct {
	Key     string  `json:"key"`
	Patient Patient `json:"patient"`
}

type PatientResponse struct {
	Success bool     `json:"success"`
	Key     string   `json:"key"`
	Patient *Patient `json:"patient"`
}

type PatientListResponse struct {
	Success    bool            `json:"success"`
	Patients   []PatientEntry  `json:"patients"`
	Pagination pagination.Meta `json:"pagination"`
}

type SavePatientRequest struct {
	Patient
	// DialCode and PhoneNumber let the client send the raw number; the phone
	// key is then derived server side.
	DialCode    string `json:"dialCode,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	// PreviousKey identifies the record being edited; empty registers a new
	// patient.
	PreviousKey string `json:"previousKey,omitempty"`
}

type SavePatientResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Outcome *SaveOutcome `json:"outcome"`
}

type XRayListResponse struct {
	Success bool             `json:"success"`
	XRays   []filestore.Info `json:"xrays"`
}

func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)
	phone := r.URL.Query().Get("phone")
	name := r.URL.Query().Get("name")

	patients, err := h.service.List(r.Context(), phone, name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	keys := make([]string, 0, len(patients))
	for key := range patients {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	page := pagination.Page(keys, params)
	entries := make([]PatientEntry, 0, len(page))
	for _, key := range page {
		entries = append(entries, PatientEntry{Key: key, Patient: patients[key]})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PatientListResponse{
		Success:    true,
		Patients:   entries,
		Pagination: params.CalculateMeta(len(keys)),
	})
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	p, err := h.service.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Patient not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(PatientResponse{Success: true, Key: key, Patient: p})
}

// SavePatient registers or edits a patient. A phone number that belongs to
// another patient answers 409 with that patient's name.
func (h *Handler) SavePatient(w http.ResponseWriter, r *http.Request) {
	var req SavePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}
	if req.Phone == "" && req.DialCode != "" && req.PhoneNumber != "" {
		req.Phone = GenerateKey(req.DialCode, req.PhoneNumber)
	}

	outcome, err := h.service.Save(r.Context(), req.Patient, req.PreviousKey)
	if err != nil {
		var registered *PhoneRegisteredError
		switch {
		case errors.As(err, &registered):
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error":      "phone_registered",
				"message":    registered.Error(),
				"first_name": registered.FirstName,
				"last_name":  registered.LastName,
			})
		case errors.Is(err, ErrMissingFirstName), errors.Is(err, ErrMissingLastName), errors.Is(err, ErrMissingPhone):
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		case errors.Is(err, ErrNotFound):
			respondError(w, http.StatusNotFound, "not_found", "Patient being edited no longer exists")
		default:
			respondError(w, http.StatusInternalServerError, "save_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SavePatientResponse{
		Success: true,
		Message: "Patient saved successfully",
		Outcome: outcome,
	})
}

func (h *Handler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	if err := h.service.Delete(r.Context(), key); err != nil {
		respondError(w, http.StatusInternalServerError, "deletion_failed", err.Error())
		return
	}
	// X-rays have no value without the record they belong to.
	_ = h.xrays.DeleteAll(r.Context(), key)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "Patient deleted successfully",
	})
}

func (h *Handler) ListXRays(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	infos, err := h.xrays.List(r.Context(), key)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(XRayListResponse{Success: true, XRays: infos})
}

// UploadXRay stores one image from a multipart form field named "file".
func (h *Handler) UploadXRay(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	if err := r.ParseMultipartForm(maxXRayBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Form field 'file' is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxXRayBytes+1))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "upload_failed", err.Error())
		return
	}
	if len(data) > maxXRayBytes {
		respondError(w, http.StatusRequestEntityTooLarge, "file_too_large", "X-ray images are limited to 10 MiB")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if err := h.xrays.Save(r.Context(), key, header.Filename, contentType, data); err != nil {
		respondError(w, http.StatusInternalServerError, "upload_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "X-ray uploaded successfully",
		"name":    header.Filename,
	})
}

func (h *Handler) GetXRay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	f, err := h.xrays.Get(r.Context(), vars["key"], vars["name"])
	if err != nil {
		if errors.Is(err, filestore.ErrFileNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "X-ray not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	if f.ContentType != "" {
		w.Header().Set("Content-Type", f.ContentType)
	}
	w.Write(f.Data)
}

func (h *Handler) DeleteXRay(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.xrays.Delete(r.Context(), vars["key"], vars["name"]); err != nil {
		if errors.Is(err, filestore.ErrFileNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "X-ray not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "deletion_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": "X-ray deleted successfully",
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
