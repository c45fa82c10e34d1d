package patient

import "context"

type ServiceInterface interface {
	Get(ctx context.Context, key string) (*Patient, error)
	List(ctx context.Context, phone, name string) (Collection, error)
	Save(ctx context.Context, p Patient, previousKey string) (*SaveOutcome, error)
	Delete(ctx context.Context, key string) error
}

var _ ServiceInterface = (*Service)(nil)
