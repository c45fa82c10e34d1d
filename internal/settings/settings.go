// Package settings stores the doctor's display preferences: the dental
// notation system used on the chart and the invoice currency.
package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/dentalpoint/clinic-service/internal/chart"
	"github.com/dentalpoint/clinic-service/internal/store"
)

const (
	notationPath = "doctor/notationSystem"
	currencyPath = "doctor/currency"
)

var (
	ErrInvalidNotation = errors.New("notation system must be FDI or UNS")
	ErrInvalidCurrency = errors.New("currency must be eur, usd or ron")
)

// Currency is the invoice currency preference.
type Currency string

const (
	CurrencyEUR Currency = "eur"
	CurrencyUSD Currency = "usd"
	CurrencyRON Currency = "ron"
)

func (c Currency) Valid() bool {
	switch c {
	case CurrencyEUR, CurrencyUSD, CurrencyRON:
		return true
	}
	return false
}

type Repository struct {
	store store.Interface
}

func NewRepository(s store.Interface) *Repository {
	return &Repository{store: s}
}

// Notation returns the stored notation preference, defaulting to FDI when
// never set.
func (r *Repository) Notation(ctx context.Context) (chart.Notation, error) {
	var n chart.Notation
	found, err := r.store.Get(ctx, notationPath, &n)
	if err != nil {
		return "", fmt.Errorf("failed to get notation system: %w", err)
	}
	if !found || n == "" {
		return chart.NotationFDI, nil
	}
	return n, nil
}

func (r *Repository) SetNotation(ctx context.Context, n chart.Notation) error {
	if n != chart.NotationFDI && n != chart.NotationUNS {
		return ErrInvalidNotation
	}
	if err := r.store.Put(ctx, notationPath, n); err != nil {
		return fmt.Errorf("failed to save notation system: %w", err)
	}
	return nil
}

// Currency returns the stored currency preference, defaulting to eur when
// never set.
func (r *Repository) Currency(ctx context.Context) (Currency, error) {
	var c Currency
	found, err := r.store.Get(ctx, currencyPath, &c)
	if err != nil {
		return "", fmt.Errorf("failed to get currency: %w", err)
	}
	if !found || c == "" {
		return CurrencyEUR, nil
	}
	return c, nil
}

func (r *Repository) SetCurrency(ctx context.Context, c Currency) error {
	if !c.Valid() {
		return ErrInvalidCurrency
	}
	if err := r.store.Put(ctx, currencyPath, c); err != nil {
		return fmt.Errorf("failed to save currency: %w", err)
	}
	return nil
}

// RepositoryInterface defines the contract for settings data access
type RepositoryInterface interface {
	Notation(ctx context.Context) (chart.Notation, error)
	SetNotation(ctx context.Context, n chart.Notation) error
	Currency(ctx context.Context) (Currency, error)
	SetCurrency(ctx context.Context, c Currency) error
}

var _ RepositoryInterface = (*Repository)(nil)
