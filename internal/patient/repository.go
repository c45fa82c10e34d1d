package patient

import (
	"context"
	"fmt"

	"github.com/dentalpoint/clinic-service/internal/chart"
	"github.com/dentalpoint/clinic-service/internal/store"
)

const collection = "patients"

// Repository persists patient records in the document store.
type Repository struct {
	store store.Interface
}

func NewRepository(s store.Interface) *Repository {
	return &Repository{store: s}
}

// Keys lists the registered phone keys without fetching the records.
func (r *Repository) Keys(ctx context.Context) (map[string]bool, error) {
	keys, err := r.store.GetShallow(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient keys: %w", err)
	}
	return keys, nil
}

// Get fetches one patient, expanding the sparse tooth chart to its full
// 32 positions.
func (r *Repository) Get(ctx context.Context, key string) (*Patient, bool, error) {
	var p Patient
	found, err := r.store.Get(ctx, collection+"/"+key, &p)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get patient: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	p.ToothChart = chart.Expand(p.ToothChart)
	return &p, true, nil
}

// ListByPhone returns every patient whose phone key starts with phone.
func (r *Repository) ListByPhone(ctx context.Context, phone string) (Collection, error) {
	return r.list(ctx, store.PrefixQuery("phone", phone), "failed to list patients by phone")
}

// ListByName queries the persisted name search keys, reversed selecting the
// lastName+firstName variant.
func (r *Repository) ListByName(ctx context.Context, name string, reversed bool) (Collection, error) {
	field := "searchKeyName"
	if reversed {
		field = "searchKeyNameReversed"
	}
	return r.list(ctx, store.PrefixQuery(field, name), "failed to list patients by name")
}

// Save writes a patient under the given key. The tooth chart is persisted
// sparsely: default positions are dropped and synthesized again on read.
func (r *Repository) Save(ctx context.Context, key string, p Patient) error {
	p.ToothChart = chart.Sparse(p.ToothChart)
	if err := r.store.Put(ctx, collection+"/"+key, p); err != nil {
		return fmt.Errorf("failed to save patient: %w", err)
	}
	return nil
}

// Delete removes a patient record by key.
func (r *Repository) Delete(ctx context.Context, key string) error {
	if err := r.store.Delete(ctx, collection+"/"+key); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (r *Repository) list(ctx context.Context, q store.Query, failure string) (Collection, error) {
	result := Collection{}
	if err := r.store.GetRange(ctx, collection, q, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	for key, p := range result {
		p.ToothChart = chart.Expand(p.ToothChart)
		result[key] = p
	}
	return result, nil
}
