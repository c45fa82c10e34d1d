package patient

import "context"

// RepositoryInterface defines the contract for patient data access
type RepositoryInterface interface {
	Keys(ctx context.Context) (map[string]bool, error)
	Get(ctx context.Context, key string) (*Patient, bool, error)
	ListByPhone(ctx context.Context, phone string) (Collection, error)
	ListByName(ctx context.Context, name string, reversed bool) (Collection, error)
	Save(ctx context.Context, key string, p Patient) error
	Delete(ctx context.Context, key string) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
