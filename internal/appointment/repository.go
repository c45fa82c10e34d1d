package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/dentalpoint/clinic-service/internal/store"
)

const collection = "appointments"

// Repository persists appointments in the document store. Every date is
// shifted through the Normalizer on the way in and out so the rest of the
// service only ever sees local wall-clock values.
type Repository struct {
	store store.Interface
	norm  Normalizer
}

func NewRepository(s store.Interface, n Normalizer) *Repository {
	return &Repository{store: s, norm: n}
}

// Normalizer exposes the storage date convention used by this repository.
func (r *Repository) Normalizer() Normalizer {
	return r.norm
}

// ListFromDate returns every appointment whose key date is on or after the
// given day, ordered by key. Appointment keys start with the date, so the
// key range doubles as a date range.
func (r *Repository) ListFromDate(ctx context.Context, from time.Time) (Collection, error) {
	q := store.Query{OrderBy: "$key", StartAt: from.Format("2006-01-02")}
	return r.list(ctx, q, "failed to list appointments")
}

// ListRange returns the appointments whose key date lies in [from, to],
// inclusive on both days.
func (r *Repository) ListRange(ctx context.Context, from, to time.Time) (Collection, error) {
	q := store.Query{
		OrderBy: "$key",
		StartAt: from.Format("2006-01-02"),
		EndAt:   to.Format("2006-01-02") + "",
	}
	return r.list(ctx, q, "failed to list appointments in range")
}

// ListByDate returns the appointments stored for one calendar day.
func (r *Repository) ListByDate(ctx context.Context, date string) (Collection, error) {
	return r.list(ctx, store.PrefixQuery("date", date), "failed to list appointments by date")
}

// ListByPhone returns every appointment whose patient key starts with phone.
func (r *Repository) ListByPhone(ctx context.Context, phone string) (Collection, error) {
	return r.list(ctx, store.PrefixQuery("phone", phone), "failed to list appointments by phone")
}

// ListByName queries the persisted name search keys. With reversed set the
// lastName+firstName variant is searched instead, so both orderings of a
// typed name can be matched and merged by the caller.
func (r *Repository) ListByName(ctx context.Context, name string, reversed bool) (Collection, error) {
	field := "searchKeyName"
	if reversed {
		field = "searchKeyNameReversed"
	}
	return r.list(ctx, store.PrefixQuery(field, name), "failed to list appointments by name")
}

// Get fetches one appointment by key.
func (r *Repository) Get(ctx context.Context, key string) (*Appointment, bool, error) {
	var appt Appointment
	found, err := r.store.Get(ctx, collection+"/"+key, &appt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get appointment: %w", err)
	}
	if !found {
		return nil, false, nil
	}
	appt.Date = r.norm.FromStorage(appt.Date)
	return &appt, true, nil
}

// Save writes an appointment under the given key, shifting its date into
// the storage convention first.
func (r *Repository) Save(ctx context.Context, key string, appt Appointment) error {
	appt.Date = r.norm.ToStorage(appt.Date).UTC()
	if err := r.store.Put(ctx, collection+"/"+key, appt); err != nil {
		return fmt.Errorf("failed to save appointment: %w", err)
	}
	return nil
}

// Delete removes an appointment by key.
func (r *Repository) Delete(ctx context.Context, key string) error {
	if err := r.store.Delete(ctx, collection+"/"+key); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}

func (r *Repository) list(ctx context.Context, q store.Query, failure string) (Collection, error) {
	result := Collection{}
	if err := r.store.GetRange(ctx, collection, q, &result); err != nil {
		return nil, fmt.Errorf("%s: %w", failure, err)
	}
	for key, appt := range result {
		appt.Date = r.norm.FromStorage(appt.Date)
		result[key] = appt
	}
	return result, nil
}
