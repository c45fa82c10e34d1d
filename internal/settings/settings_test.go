package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/dentalpoint/clinic-service/internal/chart"
	"github.com/dentalpoint/clinic-service/internal/store"
	"github.com/dentalpoint/clinic-service/internal/testutil"
)

func testRepository(t *testing.T) *Repository {
	t.Helper()
	docstore := testutil.NewFakeDocStore(t)
	client, err := store.NewClient(docstore.URL())
	if err != nil {
		t.Fatalf("Failed to create store client: %v", err)
	}
	return NewRepository(client)
}

func TestNotation_DefaultsToFDI(t *testing.T) {
	repo := testRepository(t)

	n, err := repo.Notation(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if n != chart.NotationFDI {
		t.Errorf("Expected FDI default, got %s", n)
	}
}

func TestSetNotation_RoundTrip(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	if err := repo.SetNotation(ctx, chart.NotationUNS); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	n, err := repo.Notation(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if n != chart.NotationUNS {
		t.Errorf("Expected UNS, got %s", n)
	}
}

func TestSetNotation_Invalid(t *testing.T) {
	repo := testRepository(t)

	if err := repo.SetNotation(context.Background(), "palmer"); !errors.Is(err, ErrInvalidNotation) {
		t.Errorf("Expected ErrInvalidNotation, got: %v", err)
	}
}

func TestCurrency_DefaultsToEUR(t *testing.T) {
	repo := testRepository(t)

	c, err := repo.Currency(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if c != CurrencyEUR {
		t.Errorf("Expected eur default, got %s", c)
	}
}

func TestSetCurrency_RoundTrip(t *testing.T) {
	repo := testRepository(t)
	ctx := context.Background()

	if err := repo.SetCurrency(ctx, CurrencyRON); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	c, err := repo.Currency(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if c != CurrencyRON {
		t.Errorf("Expected ron, got %s", c)
	}
}

func TestSetCurrency_Invalid(t *testing.T) {
	repo := testRepository(t)

	if err := repo.SetCurrency(context.Background(), "gbp"); !errors.Is(err, ErrInvalidCurrency) {
		t.Errorf("Expected ErrInvalidCurrency, got: %v", err)
	}
}
