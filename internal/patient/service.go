package patient

import (
	"context"
	"fmt"
	"sort"

	"github.com/dentalpoint/clinic-service/internal/appointment"
	"github.com/dentalpoint/clinic-service/internal/messaging"
	"github.com/dentalpoint/clinic-service/internal/search"
)

type Service struct {
	repo         RepositoryInterface
	appointments appointment.RepositoryInterface
	publisher    messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, appointments appointment.RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, appointments: appointments, publisher: publisher}
}

// SaveOutcome reports what a patient save actually did, since a save can
// fan out into appointment rewrites and a key migration.
type SaveOutcome struct {
	Key                 string `json:"key"`
	Created             bool   `json:"created"`
	Migrated            bool   `json:"migrated"`
	UpdatedAppointments int    `json:"updated_appointments"`
}

func (s *Service) Get(ctx context.Context, key string) (*Patient, error) {
	p, found, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return p, nil
}

// List searches patients by phone-key prefix or by name. A name search runs
// against both composite search keys and merges the results.
func (s *Service) List(ctx context.Context, phone, name string) (Collection, error) {
	if phone != "" {
		return s.repo.ListByPhone(ctx, phone)
	}
	if name != "" {
		normalized := search.Normalize(name)
		byName, err := s.repo.ListByName(ctx, normalized, false)
		if err != nil {
			return nil, err
		}
		byReversed, err := s.repo.ListByName(ctx, normalized, true)
		if err != nil {
			return nil, err
		}
		for key, p := range byReversed {
			byName[key] = p
		}
		return byName, nil
	}
	return s.repo.ListByPhone(ctx, "")
}

// Save persists a patient record. previousKey identifies the record being
// edited and is empty for a new registration. There are six cases:
//
//  1. Editing, phone and name unchanged: plain save.
//  2. Editing, phone unchanged, name changed: save, then rewrite the name
//     on every appointment under the phone key.
//  3. Editing, phone changed to a registered number: rejected, surfacing
//     the registered patient's name; nothing is written.
//  4. Editing, phone changed to a free number: save under the new key,
//     rewrite phone and name on every appointment under the old key, then
//     delete the old record. The steps are sequential and not atomic; a
//     failure mid-way leaves the old and new records both present.
//  5. New registration with a registered number: rejected as in case 3.
//  6. New registration with a free number: plain save.
func (s *Service) Save(ctx context.Context, p Patient, previousKey string) (*SaveOutcome, error) {
	if p.FirstName == "" {
		return nil, ErrMissingFirstName
	}
	if p.LastName == "" {
		return nil, ErrMissingLastName
	}
	if p.Phone == "" {
		return nil, ErrMissingPhone
	}
	p.DeriveSearchKeys()

	if previousKey == "" {
		return s.register(ctx, p)
	}

	previous, found, err := s.repo.Get(ctx, previousKey)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	if p.Phone == previousKey {
		if err := s.repo.Save(ctx, p.Phone, p); err != nil {
			return nil, err
		}

		updated := 0
		if p.FirstName != previous.FirstName || p.LastName != previous.LastName {
			updated, err = s.rewriteAppointments(ctx, p.Phone, p)
			if err != nil {
				return nil, err
			}
		}

		s.publish(ctx, messaging.EventPatientUpdated, messaging.NewPatientEvent(messaging.EventPatientUpdated, p.Phone, p.FirstName, p.LastName))
		return &SaveOutcome{Key: p.Phone, UpdatedAppointments: updated}, nil
	}

	if err := s.ensurePhoneFree(ctx, p.Phone); err != nil {
		return nil, err
	}

	// The new number is free: re-create the record under the new key,
	// repoint the appointments, then drop the old key.
	if err := s.repo.Save(ctx, p.Phone, p); err != nil {
		return nil, err
	}
	updated, err := s.rewriteAppointments(ctx, previousKey, p)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, previousKey); err != nil {
		return nil, err
	}

	s.publish(ctx, messaging.EventPatientMigrated, messaging.NewPatientMigratedEvent(previousKey, p.Phone, p.FirstName, p.LastName))
	return &SaveOutcome{Key: p.Phone, Migrated: true, UpdatedAppointments: updated}, nil
}

func (s *Service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrMissingPhone
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}
	s.publish(ctx, messaging.EventPatientDeleted, messaging.NewPatientEvent(messaging.EventPatientDeleted, key, "", ""))
	return nil
}

func (s *Service) register(ctx context.Context, p Patient) (*SaveOutcome, error) {
	if err := s.ensurePhoneFree(ctx, p.Phone); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p.Phone, p); err != nil {
		return nil, err
	}
	s.publish(ctx, messaging.EventPatientCreated, messaging.NewPatientEvent(messaging.EventPatientCreated, p.Phone, p.FirstName, p.LastName))
	return &SaveOutcome{Key: p.Phone, Created: true}, nil
}

func (s *Service) ensurePhoneFree(ctx context.Context, phone string) error {
	registered, err := s.repo.ListByPhone(ctx, phone)
	if err != nil {
		return err
	}
	for _, existing := range registered {
		return &PhoneRegisteredError{FirstName: existing.FirstName, LastName: existing.LastName}
	}
	return nil
}

// rewriteAppointments updates the displayed name and phone key on every
// appointment currently stored under fromPhone, one write per appointment.
// Appointments already carrying the target values are skipped. Not
// transactional: a failure leaves the earlier rewrites in place.
func (s *Service) rewriteAppointments(ctx context.Context, fromPhone string, p Patient) (int, error) {
	appts, err := s.appointments.ListByPhone(ctx, fromPhone)
	if err != nil {
		return 0, err
	}

	keys := make([]string, 0, len(appts))
	for key := range appts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	updated := 0
	for _, key := range keys {
		appt := appts[key]
		if appt.FirstName == p.FirstName && appt.LastName == p.LastName && appt.Phone == p.Phone {
			continue
		}
		appt.FirstName = p.FirstName
		appt.LastName = p.LastName
		appt.Phone = p.Phone
		appt.DeriveSearchKeys()
		if err := s.appointments.Save(ctx, key, appt); err != nil {
			return updated, fmt.Errorf("failed to update appointment %s: %w", key, err)
		}
		updated++
	}

	if updated > 0 {
		s.publish(ctx, messaging.EventAppointmentNamesRewritten, messaging.NewNamesRewrittenEvent(p.Phone, p.FirstName, p.LastName, updated))
	}
	return updated, nil
}

func (s *Service) publish(ctx context.Context, routingKey string, event interface{}) {
	if s.publisher == nil {
		return
	}
	// Event delivery is best effort; a broker outage must not fail the save.
	_ = s.publisher.Publish(ctx, routingKey, event)
}
