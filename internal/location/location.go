// Package location serves the country dial-code and county lists the
// registration forms rely on. Both lists live as configuration collections
// in the document store.
package location

import (
	"context"
	"fmt"

	"github.com/dentalpoint/clinic-service/internal/store"
)

const (
	countriesPath = "countries"
	countiesPath  = "counties"
)

// Country carries the dial code used to derive patient phone keys.
type Country struct {
	Name     string `json:"name"`
	Code     string `json:"code"`
	DialCode string `json:"dialCode"`
}

// County is an administrative subdivision used in patient addresses.
type County struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type Repository struct {
	store store.Interface
}

func NewRepository(s store.Interface) *Repository {
	return &Repository{store: s}
}

func (r *Repository) Countries(ctx context.Context) ([]Country, error) {
	var countries []Country
	if _, err := r.store.Get(ctx, countriesPath, &countries); err != nil {
		return nil, fmt.Errorf("failed to get countries: %w", err)
	}
	return countries, nil
}

func (r *Repository) Counties(ctx context.Context) ([]County, error) {
	var counties []County
	if _, err := r.store.Get(ctx, countiesPath, &counties); err != nil {
		return nil, fmt.Errorf("failed to get counties: %w", err)
	}
	return counties, nil
}

// RepositoryInterface defines the contract for location data access
type RepositoryInterface interface {
	Countries(ctx context.Context) ([]Country, error)
	Counties(ctx context.Context) ([]County, error)
}

var _ RepositoryInterface = (*Repository)(nil)
