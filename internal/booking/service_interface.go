package booking

import (
	"context"

	"github.com/dentalpoint/clinic-service/internal/appointment"
)

type ServiceInterface interface {
	Save(ctx context.Context, appt appointment.Appointment, decider Decider) (*SaveResult, error)
	Update(ctx context.Context, oldKey string, appt appointment.Appointment, decider Decider) (*SaveResult, error)
}

var _ ServiceInterface = (*Service)(nil)
