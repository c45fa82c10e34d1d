package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Event routing keys as constants
const (
	// Patient events
	EventPatientCreated  = "patient.created"
	EventPatientUpdated  = "patient.updated"
	EventPatientDeleted  = "patient.deleted"
	EventPatientMigrated = "patient.migrated"

	// Appointment events
	EventAppointmentSaved           = "appointment.saved"
	EventAppointmentDeleted         = "appointment.deleted"
	EventAppointmentNamesRewritten  = "appointment.names_rewritten"
	EventAppointmentConflictPending = "appointment.conflict_pending"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// PatientEvent covers patient lifecycle changes keyed by phone.
type PatientEvent struct {
	BaseEvent
	Data PatientData `json:"data"`
}

type PatientData struct {
	PhoneKey  string `json:"phone_key"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// PatientMigratedEvent records a patient record moving to a new phone key.
type PatientMigratedEvent struct {
	BaseEvent
	Data PatientMigratedData `json:"data"`
}

type PatientMigratedData struct {
	OldPhoneKey string `json:"old_phone_key"`
	NewPhoneKey string `json:"new_phone_key"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

// AppointmentEvent covers appointment saves and deletions.
type AppointmentEvent struct {
	BaseEvent
	Data AppointmentData `json:"data"`
}

type AppointmentData struct {
	Key           string    `json:"key"`
	PhoneKey      string    `json:"phone_key"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	CabinetNumber int       `json:"cabinet_number"`
	Date          time.Time `json:"date"`
}

// ConflictPendingEvent records a booking suspended on a registration
// conflict, waiting for the caller's decision.
type ConflictPendingEvent struct {
	BaseEvent
	Data ConflictPendingData `json:"data"`
}

type ConflictPendingData struct {
	PhoneKey        string `json:"phone_key"`
	RegisteredFirst string `json:"registered_first_name"`
	RegisteredLast  string `json:"registered_last_name"`
	SubmittedFirst  string `json:"submitted_first_name"`
	SubmittedLast   string `json:"submitted_last_name"`
}

// NamesRewrittenEvent records a bulk name/phone rewrite across a patient's
// appointments after an edit or a phone-key migration.
type NamesRewrittenEvent struct {
	BaseEvent
	Data NamesRewrittenData `json:"data"`
}

type NamesRewrittenData struct {
	PhoneKey  string `json:"phone_key"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Count     int    `json:"count"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.New().String(),
		Timestamp:   time.Now().UTC(), // Explicitly set to UTC
		ServiceName: "clinic-service",
	}
}

func NewPatientEvent(eventType, phoneKey, firstName, lastName string) PatientEvent {
	return PatientEvent{
		BaseEvent: NewBaseEvent(eventType),
		Data: PatientData{
			PhoneKey:  phoneKey,
			FirstName: firstName,
			LastName:  lastName,
		},
	}
}

func NewPatientMigratedEvent(oldKey, newKey, firstName, lastName string) PatientMigratedEvent {
	return PatientMigratedEvent{
		BaseEvent: NewBaseEvent(EventPatientMigrated),
		Data: PatientMigratedData{
			OldPhoneKey: oldKey,
			NewPhoneKey: newKey,
			FirstName:   firstName,
			LastName:    lastName,
		},
	}
}

func NewAppointmentEvent(eventType, key, phoneKey, firstName, lastName string, cabinet int, date time.Time) AppointmentEvent {
	return AppointmentEvent{
		BaseEvent: NewBaseEvent(eventType),
		Data: AppointmentData{
			Key:           key,
			PhoneKey:      phoneKey,
			FirstName:     firstName,
			LastName:      lastName,
			CabinetNumber: cabinet,
			Date:          date,
		},
	}
}

func NewConflictPendingEvent(phoneKey, registeredFirst, registeredLast, submittedFirst, submittedLast string) ConflictPendingEvent {
	return ConflictPendingEvent{
		BaseEvent: NewBaseEvent(EventAppointmentConflictPending),
		Data: ConflictPendingData{
			PhoneKey:        phoneKey,
			RegisteredFirst: registeredFirst,
			RegisteredLast:  registeredLast,
			SubmittedFirst:  submittedFirst,
			SubmittedLast:   submittedLast,
		},
	}
}

func NewNamesRewrittenEvent(phoneKey, firstName, lastName string, count int) NamesRewrittenEvent {
	return NamesRewrittenEvent{
		BaseEvent: NewBaseEvent(EventAppointmentNamesRewritten),
		Data: NamesRewrittenData{
			PhoneKey:  phoneKey,
			FirstName: firstName,
			LastName:  lastName,
			Count:     count,
		},
	}
}
