// Package booking drives the appointment save flow, including the
// registration conflict that arises when the submitted patient name differs
// from the record already stored under the phone key.
package booking

import (
	"context"
	"fmt"
)

// Choice is the front desk's answer to a registration conflict.
type Choice string

const (
	// ChoiceCancel abandons the save entirely.
	ChoiceCancel Choice = "cancel"
	// ChoiceOverrideAppointment books under the registered patient's name.
	ChoiceOverrideAppointment Choice = "override_appointment"
	// ChoiceOverridePatient renames the patient record to the submitted
	// name, rewriting every existing appointment under the phone key.
	ChoiceOverridePatient Choice = "override_patient"
)

// Valid reports whether c is one of the three defined choices.
func (c Choice) Valid() bool {
	switch c {
	case ChoiceCancel, ChoiceOverrideAppointment, ChoiceOverridePatient:
		return true
	}
	return false
}

// ConflictDetails describes a name mismatch for whoever has to resolve it.
type ConflictDetails struct {
	PhoneKey        string `json:"phone_key"`
	RegisteredFirst string `json:"registered_first_name"`
	RegisteredLast  string `json:"registered_last_name"`
	SubmittedFirst  string `json:"submitted_first_name"`
	SubmittedLast   string `json:"submitted_last_name"`
}

// Decider resolves a registration conflict mid-save. Decide blocks until a
// choice is available or ctx is done; a ctx error cancels the save.
type Decider interface {
	Decide(ctx context.Context, details ConflictDetails) (Choice, error)
}

// SaveResult reports how a save concluded. Cancelled is set when the
// conflict was resolved with ChoiceCancel; nothing was written in that case.
type SaveResult struct {
	Key                 string `json:"key"`
	Cancelled           bool   `json:"cancelled"`
	PatientCreated      bool   `json:"patient_created"`
	PatientOverridden   bool   `json:"patient_overridden"`
	UpdatedAppointments int    `json:"updated_appointments"`
}

// ConflictError is returned when a conflict arises and no Decider was
// supplied to resolve it.
type ConflictError struct {
	Details ConflictDetails
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("phone key %s is registered to %s %s",
		e.Details.PhoneKey, e.Details.RegisteredFirst, e.Details.RegisteredLast)
}
