package catalog

import (
	"context"
	"testing"

	"github.com/dentalpoint/clinic-service/internal/store"
	"github.com/dentalpoint/clinic-service/internal/testutil"
)

func testRepository(t *testing.T) (*Repository, *testutil.FakeDocStore) {
	t.Helper()
	docstore := testutil.NewFakeDocStore(t)
	client, err := store.NewClient(docstore.URL())
	if err != nil {
		t.Fatalf("Failed to create store client: %v", err)
	}
	return NewRepository(client), docstore
}

func TestRepository_AllServices(t *testing.T) {
	repo, docstore := testRepository(t)

	docstore.Seed(t, "allServices", []Group{
		{Category: "surgery", Services: []string{"extraction", "implant"}},
		{Category: "cosmetic", Services: []string{"whitening"}},
	})

	groups, err := repo.AllServices(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(groups) != 2 || groups[0].Category != "surgery" || len(groups[0].Services) != 2 {
		t.Errorf("Unexpected catalog: %+v", groups)
	}
}

func TestRepository_AvailableServices_Empty(t *testing.T) {
	repo, _ := testRepository(t)

	items, err := repo.AvailableServices(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected empty list, got %+v", items)
	}
}

func TestRepository_ReplaceAndUpdatePrice(t *testing.T) {
	repo, _ := testRepository(t)
	ctx := context.Background()

	list := []Item{
		{ID: 1, Name: "extraction", Price: 150},
		{ID: 2, Name: "filling", Price: 80},
	}
	if err := repo.ReplaceAvailableServices(ctx, list); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if err := repo.UpdatePrice(ctx, 1, 95); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	items, err := repo.AvailableServices(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected two items, got %d", len(items))
	}
	if items[1].Price != 95 || items[1].Name != "filling" {
		t.Errorf("Expected only the price changed, got %+v", items[1])
	}
	if items[0].Price != 150 {
		t.Errorf("Expected first item untouched, got %+v", items[0])
	}
}
