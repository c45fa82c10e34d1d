package appointment

import (
	"context"
	"time"
)

// RepositoryInterface defines the contract for appointment data access
type RepositoryInterface interface {
	ListFromDate(ctx context.Context, from time.Time) (Collection, error)
	ListRange(ctx context.Context, from, to time.Time) (Collection, error)
	ListByDate(ctx context.Context, date string) (Collection, error)
	ListByPhone(ctx context.Context, phone string) (Collection, error)
	ListByName(ctx context.Context, name string, reversed bool) (Collection, error)
	Get(ctx context.Context, key string) (*Appointment, bool, error)
	Save(ctx context.Context, key string, appt Appointment) error
	Delete(ctx context.Context, key string) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
