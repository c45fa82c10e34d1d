package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/dentalpoint/clinic-service/internal/appointment"
	"github.com/dentalpoint/clinic-service/internal/booking"
	"github.com/dentalpoint/clinic-service/internal/catalog"
	"github.com/dentalpoint/clinic-service/internal/chart"
	"github.com/dentalpoint/clinic-service/internal/config"
	"github.com/dentalpoint/clinic-service/internal/filestore"
	"github.com/dentalpoint/clinic-service/internal/location"
	"github.com/dentalpoint/clinic-service/internal/maintenance"
	"github.com/dentalpoint/clinic-service/internal/messaging"
	"github.com/dentalpoint/clinic-service/internal/patient"
	"github.com/dentalpoint/clinic-service/internal/schedule"
	"github.com/dentalpoint/clinic-service/internal/settings"
	"github.com/dentalpoint/clinic-service/internal/store"
	"github.com/dentalpoint/clinic-service/internal/telemetry"
)

// SetupRouter initializes all routes for the application. metrics may be
// nil when the meter provider did not come up.
func SetupRouter(cfg *config.Config, st store.Interface, publisher messaging.PublisherInterface, xrays filestore.Interface, metrics *telemetry.Metrics) *mux.Router {
	var norm appointment.Normalizer
	if cfg.SessionUTCOffsetMinutes != nil {
		norm = appointment.NewFixedNormalizer(*cfg.SessionUTCOffsetMinutes)
	} else {
		norm = appointment.NewNormalizer()
	}

	// Initialize appointment components
	apptRepo := appointment.NewRepository(st, norm)
	apptService := appointment.NewService(apptRepo, publisher)
	apptHandler := appointment.NewHandler(apptService)

	// Initialize patient components
	patientRepo := patient.NewRepository(st)
	patientService := patient.NewService(patientRepo, apptRepo, publisher)
	patientHandler := patient.NewHandler(patientService, xrays)

	// Initialize booking components
	bookingService := booking.NewService(apptRepo, patientRepo, norm, publisher)
	coordinator := booking.NewCoordinator(bookingService, bookingMetrics(metrics))
	bookingHandler := booking.NewHandler(coordinator)

	// Initialize schedule components
	scheduleService := schedule.NewService(apptRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	// Initialize chart components
	chartRepo := chart.NewRepository(st)
	chartHandler := chart.NewHandler(chartRepo)

	// Initialize catalog components
	catalogRepo := catalog.NewRepository(st)
	catalogHandler := catalog.NewHandler(catalogRepo)

	// Initialize location components
	locationRepo := location.NewRepository(st)
	locationHandler := location.NewHandler(locationRepo)

	// Initialize settings components
	settingsRepo := settings.NewRepository(st)
	settingsHandler := settings.NewHandler(settingsRepo)

	// Initialize maintenance components
	errorRepo := maintenance.NewRepository(st)
	errorHandler := maintenance.NewHandler(errorRepo)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("clinic-service"))
	r.Use(MetricsMiddleware(metrics))
	r.Use(CORSMiddleware(cfg.AllowedOrigins))

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"clinic-service"}`))
	}).Methods("GET")

	// Booking routes
	r.HandleFunc("/appointments", bookingHandler.SaveAppointment).Methods("POST")
	r.HandleFunc("/appointments/conflicts/{token}", bookingHandler.ResolveConflict).Methods("POST")
	r.HandleFunc("/appointments/conflicts/{token}", bookingHandler.CancelConflict).Methods("DELETE")

	// Appointment routes
	r.HandleFunc("/appointments", apptHandler.ListAppointments).Methods("GET")
	r.HandleFunc("/appointments/{key}", apptHandler.GetAppointment).Methods("GET")
	r.HandleFunc("/appointments/{key}", apptHandler.DeleteAppointment).Methods("DELETE")

	// Schedule routes
	r.HandleFunc("/schedule/week", scheduleHandler.GetWeek).Methods("GET")

	// Patient routes
	r.HandleFunc("/patients", patientHandler.ListPatients).Methods("GET")
	r.HandleFunc("/patients", patientHandler.SavePatient).Methods("PUT")
	r.HandleFunc("/patients/{key}", patientHandler.GetPatient).Methods("GET")
	r.HandleFunc("/patients/{key}", patientHandler.DeletePatient).Methods("DELETE")

	// X-ray routes
	r.HandleFunc("/patients/{key}/xrays", patientHandler.ListXRays).Methods("GET")
	r.HandleFunc("/patients/{key}/xrays", patientHandler.UploadXRay).Methods("POST")
	r.HandleFunc("/patients/{key}/xrays/{name}", patientHandler.GetXRay).Methods("GET")
	r.HandleFunc("/patients/{key}/xrays/{name}", patientHandler.DeleteXRay).Methods("DELETE")

	// Dental chart routes
	r.HandleFunc("/patients/{key}/chart", chartHandler.GetChart).Methods("GET")
	r.HandleFunc("/patients/{key}/chart", chartHandler.SaveChart).Methods("PUT")
	r.HandleFunc("/patients/{key}/chart/teeth/{index}", chartHandler.SaveTooth).Methods("PUT")
	r.HandleFunc("/patients/{key}/chart/teeth/{index}/cares", chartHandler.AddPreviousCare).Methods("POST")

	// Service catalog routes
	r.HandleFunc("/services/all", catalogHandler.ListAllServices).Methods("GET")
	r.HandleFunc("/services/available", catalogHandler.ListAvailableServices).Methods("GET")
	r.HandleFunc("/services/available", catalogHandler.ReplaceAvailableServices).Methods("PUT")
	r.HandleFunc("/services/available/{index}/price", catalogHandler.UpdatePrice).Methods("PUT")

	// Location routes
	r.HandleFunc("/locations/countries", locationHandler.ListCountries).Methods("GET")
	r.HandleFunc("/locations/counties", locationHandler.ListCounties).Methods("GET")

	// Doctor preference routes
	r.HandleFunc("/settings/notation", settingsHandler.GetNotation).Methods("GET")
	r.HandleFunc("/settings/notation", settingsHandler.SetNotation).Methods("PUT")
	r.HandleFunc("/settings/currency", settingsHandler.GetCurrency).Methods("GET")
	r.HandleFunc("/settings/currency", settingsHandler.SetCurrency).Methods("PUT")

	// Error reporting
	r.HandleFunc("/errors", errorHandler.ReportError).Methods("POST")

	return r
}

// bookingMetrics keeps a nil metrics handle a nil interface, so the
// coordinator's nil check still works.
func bookingMetrics(m *telemetry.Metrics) booking.MetricsRecorder {
	if m == nil {
		return nil
	}
	return m
}
