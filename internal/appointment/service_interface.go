package appointment

import "context"

type ServiceInterface interface {
	List(ctx context.Context, f Filter) (Collection, error)
	Get(ctx context.Context, key string) (*Appointment, error)
	Delete(ctx context.Context, key string) error
}

var _ ServiceInterface = (*Service)(nil)
