package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/dentalpoint/clinic-service/internal/appointment"
	"github.com/dentalpoint/clinic-service/internal/messaging"
	"github.com/dentalpoint/clinic-service/internal/patient"
)

var (
	ErrMissingFirstName = errors.New("first name is required")
	ErrMissingLastName  = errors.New("last name is required")
	ErrMissingPhone     = errors.New("phone is required")
	ErrMissingDate      = errors.New("appointment date is required")
	ErrUnknownChoice    = errors.New("unknown conflict choice")
)

type Service struct {
	appointments appointment.RepositoryInterface
	patients     patient.RepositoryInterface
	norm         appointment.Normalizer
	publisher    messaging.PublisherInterface
}

func NewService(appointments appointment.RepositoryInterface, patients patient.RepositoryInterface, norm appointment.Normalizer, publisher messaging.PublisherInterface) *Service {
	return &Service{
		appointments: appointments,
		patients:     patients,
		norm:         norm,
		publisher:    publisher,
	}
}

// Save books an appointment, keeping the patient collection consistent with
// it. An unregistered phone key gets a minimal patient record created on the
// fly. A registered key whose stored name matches the submitted one saves
// straight through. A name mismatch is handed to the decider; the choice
// determines whether the save is abandoned, booked under the registered
// name, or the patient record is renamed with all its appointments rewritten
// before the new one is saved. A nil decider turns a mismatch into a
// *ConflictError with nothing written.
func (s *Service) Save(ctx context.Context, appt appointment.Appointment, decider Decider) (*SaveResult, error) {
	if appt.FirstName == "" {
		return nil, ErrMissingFirstName
	}
	if appt.LastName == "" {
		return nil, ErrMissingLastName
	}
	if appt.Phone == "" {
		return nil, ErrMissingPhone
	}
	if appt.Date.IsZero() {
		return nil, ErrMissingDate
	}
	appt.DeriveSearchKeys()

	registered, err := s.patients.Keys(ctx)
	if err != nil {
		return nil, err
	}

	if !registered[appt.Phone] {
		minimal := patient.NewMinimal(appt.FirstName, appt.LastName, appt.Phone)
		if err := s.patients.Save(ctx, appt.Phone, minimal); err != nil {
			return nil, err
		}
		s.publish(ctx, messaging.EventPatientCreated,
			messaging.NewPatientEvent(messaging.EventPatientCreated, appt.Phone, appt.FirstName, appt.LastName))

		key, err := s.saveAppointment(ctx, appt)
		if err != nil {
			return nil, err
		}
		return &SaveResult{Key: key, PatientCreated: true}, nil
	}

	record, found, err := s.patients.Get(ctx, appt.Phone)
	if err != nil {
		return nil, err
	}
	if !found {
		// The shallow key listing and the record fetch disagree; treat the
		// key as registered but unreadable rather than creating a duplicate.
		return nil, fmt.Errorf("patient %s listed but not readable", appt.Phone)
	}

	if record.FirstName == appt.FirstName && record.LastName == appt.LastName {
		key, err := s.saveAppointment(ctx, appt)
		if err != nil {
			return nil, err
		}
		return &SaveResult{Key: key}, nil
	}

	details := ConflictDetails{
		PhoneKey:        appt.Phone,
		RegisteredFirst: record.FirstName,
		RegisteredLast:  record.LastName,
		SubmittedFirst:  appt.FirstName,
		SubmittedLast:   appt.LastName,
	}
	if decider == nil {
		return nil, &ConflictError{Details: details}
	}

	s.publish(ctx, messaging.EventAppointmentConflictPending,
		messaging.NewConflictPendingEvent(details.PhoneKey, details.RegisteredFirst,
			details.RegisteredLast, details.SubmittedFirst, details.SubmittedLast))

	choice, err := decider.Decide(ctx, details)
	if err != nil {
		return nil, err
	}

	switch choice {
	case ChoiceCancel:
		return &SaveResult{Cancelled: true}, nil

	case ChoiceOverrideAppointment:
		appt.FirstName = record.FirstName
		appt.LastName = record.LastName
		appt.DeriveSearchKeys()
		key, err := s.saveAppointment(ctx, appt)
		if err != nil {
			return nil, err
		}
		return &SaveResult{Key: key}, nil

	case ChoiceOverridePatient:
		return s.overridePatient(ctx, appt, *record)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownChoice, choice)
	}
}

// Update re-saves an appointment that may have moved to a new time slot. The
// key is derived from the date, so a date change produces a new key and the
// old record must be deleted afterwards.
func (s *Service) Update(ctx context.Context, oldKey string, appt appointment.Appointment, decider Decider) (*SaveResult, error) {
	result, err := s.Save(ctx, appt, decider)
	if err != nil {
		return nil, err
	}
	if result.Cancelled || result.Key == oldKey {
		return result, nil
	}
	if err := s.appointments.Delete(ctx, oldKey); err != nil {
		return nil, fmt.Errorf("saved under %s but failed to delete %s: %w", result.Key, oldKey, err)
	}
	return result, nil
}

// overridePatient renames the patient record to the submitted name, then
// rewrites the name on every appointment already stored under the phone key,
// and finally books the triggering appointment. The writes are sequential
// and not atomic.
func (s *Service) overridePatient(ctx context.Context, appt appointment.Appointment, record patient.Patient) (*SaveResult, error) {
	record.FirstName = appt.FirstName
	record.LastName = appt.LastName
	record.DeriveSearchKeys()
	if err := s.patients.Save(ctx, appt.Phone, record); err != nil {
		return nil, err
	}
	s.publish(ctx, messaging.EventPatientUpdated,
		messaging.NewPatientEvent(messaging.EventPatientUpdated, appt.Phone, record.FirstName, record.LastName))

	existing, err := s.appointments.ListByPhone(ctx, appt.Phone)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(existing))
	for key := range existing {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	updated := 0
	for _, key := range keys {
		stored := existing[key]
		if stored.FirstName == appt.FirstName && stored.LastName == appt.LastName {
			continue
		}
		stored.FirstName = appt.FirstName
		stored.LastName = appt.LastName
		stored.DeriveSearchKeys()
		if err := s.appointments.Save(ctx, key, stored); err != nil {
			return nil, fmt.Errorf("failed to rewrite appointment %s: %w", key, err)
		}
		updated++
	}
	if updated > 0 {
		s.publish(ctx, messaging.EventAppointmentNamesRewritten,
			messaging.NewNamesRewrittenEvent(appt.Phone, appt.FirstName, appt.LastName, updated))
	}

	key, err := s.saveAppointment(ctx, appt)
	if err != nil {
		return nil, err
	}
	return &SaveResult{Key: key, PatientOverridden: true, UpdatedAppointments: updated}, nil
}

func (s *Service) saveAppointment(ctx context.Context, appt appointment.Appointment) (string, error) {
	key := appointment.GenerateKey(appt.Date, s.norm)
	if err := s.appointments.Save(ctx, key, appt); err != nil {
		return "", err
	}
	s.publish(ctx, messaging.EventAppointmentSaved,
		messaging.NewAppointmentEvent(messaging.EventAppointmentSaved,
			key, appt.Phone, appt.FirstName, appt.LastName, appt.CabinetNumber, appt.Date))
	return key, nil
}

func (s *Service) publish(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(ctx, routingKey, event)
}
