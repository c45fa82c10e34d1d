package catalog

import (
	"context"
	"fmt"

	"github.com/dentalpoint/clinic-service/internal/store"
)

const (
	allServicesPath       = "allServices"
	availableServicesPath = "availableServices"
)

type Repository struct {
	store store.Interface
}

func NewRepository(s store.Interface) *Repository {
	return &Repository{store: s}
}

// AllServices returns the read-only master list.
func (r *Repository) AllServices(ctx context.Context) ([]Group, error) {
	var groups []Group
	if _, err := r.store.Get(ctx, allServicesPath, &groups); err != nil {
		return nil, fmt.Errorf("failed to get service catalog: %w", err)
	}
	return groups, nil
}

// AvailableServices returns the clinic's priced list.
func (r *Repository) AvailableServices(ctx context.Context) ([]Item, error) {
	var items []Item
	if _, err := r.store.Get(ctx, availableServicesPath, &items); err != nil {
		return nil, fmt.Errorf("failed to get available services: %w", err)
	}
	return items, nil
}

// ReplaceAvailableServices overwrites the clinic's whole priced list.
func (r *Repository) ReplaceAvailableServices(ctx context.Context, items []Item) error {
	if err := r.store.Put(ctx, availableServicesPath, items); err != nil {
		return fmt.Errorf("failed to save available services: %w", err)
	}
	return nil
}

// UpdatePrice sets the price of one list position in place.
func (r *Repository) UpdatePrice(ctx context.Context, index int, price float64) error {
	path := fmt.Sprintf("%s/%d/price", availableServicesPath, index)
	if err := r.store.Put(ctx, path, price); err != nil {
		return fmt.Errorf("failed to update price: %w", err)
	}
	return nil
}
