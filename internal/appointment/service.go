package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/dentalpoint/clinic-service/internal/messaging"
	"github.com/dentalpoint/clinic-service/internal/search"
)

var (
	ErrMissingKey = errors.New("appointment key is required")
	ErrNotFound   = errors.New("appointment not found")
)

// Filter narrows an appointment listing. Zero value lists everything from
// today forward.
type Filter struct {
	Date  string
	Phone string
	Name  string
}

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// List applies at most one filter dimension, matching the front-end search
// field. Name searches run against both composite search keys and merge the
// results, so "ana pop" and "pop ana" find the same appointments.
func (s *Service) List(ctx context.Context, f Filter) (Collection, error) {
	switch {
	case f.Name != "":
		normalized := search.Normalize(f.Name)
		byName, err := s.repo.ListByName(ctx, normalized, false)
		if err != nil {
			return nil, err
		}
		byReversed, err := s.repo.ListByName(ctx, normalized, true)
		if err != nil {
			return nil, err
		}
		for key, appt := range byReversed {
			byName[key] = appt
		}
		return byName, nil
	case f.Phone != "":
		return s.repo.ListByPhone(ctx, f.Phone)
	case f.Date != "":
		return s.repo.ListByDate(ctx, f.Date)
	default:
		return s.repo.ListFromDate(ctx, time.Now())
	}
}

func (s *Service) Get(ctx context.Context, key string) (*Appointment, error) {
	appt, found, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return appt, nil
}

func (s *Service) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrMissingKey
	}
	appt, found, err := s.repo.Get(ctx, key)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		return err
	}
	if s.publisher != nil {
		event := messaging.NewAppointmentEvent(messaging.EventAppointmentDeleted,
			key, appt.Phone, appt.FirstName, appt.LastName, appt.CabinetNumber, appt.Date)
		_ = s.publisher.Publish(ctx, messaging.EventAppointmentDeleted, event)
	}
	return nil
}
