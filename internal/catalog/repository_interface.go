package catalog

import "context"

// RepositoryInterface defines the contract for catalog data access
type RepositoryInterface interface {
	AllServices(ctx context.Context) ([]Group, error)
	AvailableServices(ctx context.Context) ([]Item, error)
	ReplaceAvailableServices(ctx context.Context, items []Item) error
	UpdatePrice(ctx context.Context, index int, price float64) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
