package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/dentalpoint/clinic-service/internal/appointment"
)

type Service struct {
	appointments appointment.RepositoryInterface
}

func NewService(appointments appointment.RepositoryInterface) *Service {
	return &Service{appointments: appointments}
}

// Week fetches the appointments for the week containing anchor and returns
// them as the populated grid. delta pages the anchor by whole weeks before
// the fetch.
func (s *Service) Week(ctx context.Context, anchor time.Time, delta int) (*Week, error) {
	anchor = Shift(anchor, delta)
	start := WeekStart(anchor)
	end := start.AddDate(0, 0, daysPerWeek-1)

	appts, err := s.appointments.ListRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load week schedule: %w", err)
	}
	return BuildWeek(anchor, appts), nil
}
