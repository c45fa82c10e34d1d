// Package maintenance covers the operational edges of the clinic service:
// the client-reported error log and its retention cleanup.
package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/dentalpoint/clinic-service/internal/store"
)

const errorsPath = "errors"

// ErrorLog is one reported failure at an operation boundary.
type ErrorLog struct {
	Message   string    `json:"message"`
	Component string    `json:"component"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Repository struct {
	store store.Interface
}

func NewRepository(s store.Interface) *Repository {
	return &Repository{store: s}
}

// Report appends an error entry. The store assigns the push key; the
// timestamp is stamped here if the caller left it zero.
func (r *Repository) Report(ctx context.Context, entry ErrorLog) (string, error) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	key, err := r.store.Push(ctx, errorsPath, entry)
	if err != nil {
		return "", fmt.Errorf("failed to report error: %w", err)
	}
	return key, nil
}

// List returns the whole error log keyed by push key.
func (r *Repository) List(ctx context.Context) (map[string]ErrorLog, error) {
	entries := map[string]ErrorLog{}
	if _, err := r.store.Get(ctx, errorsPath, &entries); err != nil {
		return nil, fmt.Errorf("failed to list errors: %w", err)
	}
	return entries, nil
}

// Delete removes one entry by push key.
func (r *Repository) Delete(ctx context.Context, key string) error {
	if err := r.store.Delete(ctx, errorsPath+"/"+key); err != nil {
		return fmt.Errorf("failed to delete error entry: %w", err)
	}
	return nil
}

// RepositoryInterface defines the contract for error log data access
type RepositoryInterface interface {
	Report(ctx context.Context, entry ErrorLog) (string, error)
	List(ctx context.Context) (map[string]ErrorLog, error)
	Delete(ctx context.Context, key string) error
}

var _ RepositoryInterface = (*Repository)(nil)
