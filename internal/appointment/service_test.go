package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dentalpoint/clinic-service/internal/testutil"
)

type mockRepo struct {
	listFromDateFunc func(ctx context.Context, from time.Time) (Collection, error)
	listByDateFunc   func(ctx context.Context, date string) (Collection, error)
	listByPhoneFunc  func(ctx context.Context, phone string) (Collection, error)
	listByNameFunc   func(ctx context.Context, name string, reversed bool) (Collection, error)
	getFunc          func(ctx context.Context, key string) (*Appointment, bool, error)
	deleteFunc       func(ctx context.Context, key string) error
}

func (m *mockRepo) ListFromDate(ctx context.Context, from time.Time) (Collection, error) {
	if m.listFromDateFunc != nil {
		return m.listFromDateFunc(ctx, from)
	}
	return Collection{}, nil
}

func (m *mockRepo) ListRange(ctx context.Context, from, to time.Time) (Collection, error) {
	return nil, errors.New("not implemented")
}

func (m *mockRepo) ListByDate(ctx context.Context, date string) (Collection, error) {
	if m.listByDateFunc != nil {
		return m.listByDateFunc(ctx, date)
	}
	return Collection{}, nil
}

func (m *mockRepo) ListByPhone(ctx context.Context, phone string) (Collection, error) {
	if m.listByPhoneFunc != nil {
		return m.listByPhoneFunc(ctx, phone)
	}
	return Collection{}, nil
}

func (m *mockRepo) ListByName(ctx context.Context, name string, reversed bool) (Collection, error) {
	if m.listByNameFunc != nil {
		return m.listByNameFunc(ctx, name, reversed)
	}
	return Collection{}, nil
}

func (m *mockRepo) Get(ctx context.Context, key string) (*Appointment, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, false, errors.New("not implemented")
}

func (m *mockRepo) Save(ctx context.Context, key string, appt Appointment) error {
	return errors.New("not implemented")
}

func (m *mockRepo) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return errors.New("not implemented")
}

func TestList_NameSearch_MergesBothKeyOrders(t *testing.T) {
	repo := &mockRepo{
		listByNameFunc: func(ctx context.Context, name string, reversed bool) (Collection, error) {
			if name != "anapop" {
				t.Errorf("Expected normalized name anapop, got %q", name)
			}
			if reversed {
				return Collection{"2024-05-21T09_00_00M000Z": {FirstName: "Pop", LastName: "Ana"}}, nil
			}
			return Collection{"2024-05-20T10_00_00M000Z": {FirstName: "Ana", LastName: "Pop"}}, nil
		},
	}

	service := NewService(repo, nil)
	appts, err := service.List(context.Background(), Filter{Name: "Ana Pop"})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(appts) != 2 {
		t.Errorf("Expected merged results from both key orders, got %d", len(appts))
	}
}

func TestList_NameFilterWinsOverOthers(t *testing.T) {
	repo := &mockRepo{
		listByNameFunc: func(ctx context.Context, name string, reversed bool) (Collection, error) {
			return Collection{}, nil
		},
		listByPhoneFunc: func(ctx context.Context, phone string) (Collection, error) {
			t.Error("Expected the phone filter ignored when a name is given")
			return Collection{}, nil
		},
	}

	service := NewService(repo, nil)
	if _, err := service.List(context.Background(), Filter{Name: "Ana", Phone: "0040-"}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}

func TestList_Unfiltered_StartsToday(t *testing.T) {
	var from time.Time
	repo := &mockRepo{
		listFromDateFunc: func(ctx context.Context, f time.Time) (Collection, error) {
			from = f
			return Collection{}, nil
		},
	}

	service := NewService(repo, nil)
	if _, err := service.List(context.Background(), Filter{}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if time.Since(from) > time.Minute {
		t.Errorf("Expected listing from now, got %v", from)
	}
}

func TestGet_Missing(t *testing.T) {
	repo := &mockRepo{
		getFunc: func(ctx context.Context, key string) (*Appointment, bool, error) {
			return nil, false, nil
		},
	}

	service := NewService(repo, nil)
	if _, err := service.Get(context.Background(), "2024-05-20T10_00_00M000Z"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestDelete_PublishesEvent(t *testing.T) {
	deleted := ""
	repo := &mockRepo{
		getFunc: func(ctx context.Context, key string) (*Appointment, bool, error) {
			return &Appointment{FirstName: "Ana", LastName: "Pop", Phone: "0040-745123456"}, true, nil
		},
		deleteFunc: func(ctx context.Context, key string) error {
			deleted = key
			return nil
		},
	}
	publisher := testutil.NewMockPublisher()

	service := NewService(repo, publisher)
	if err := service.Delete(context.Background(), "2024-05-20T10_00_00M000Z"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if deleted != "2024-05-20T10_00_00M000Z" {
		t.Errorf("Expected key deleted, got %q", deleted)
	}
	publisher.AssertEventPublished(t, "appointment.deleted")
}

func TestDelete_Missing(t *testing.T) {
	repo := &mockRepo{
		getFunc: func(ctx context.Context, key string) (*Appointment, bool, error) {
			return nil, false, nil
		},
		deleteFunc: func(ctx context.Context, key string) error {
			t.Error("Expected no delete for a missing appointment")
			return nil
		},
	}

	service := NewService(repo, nil)
	if err := service.Delete(context.Background(), "2024-05-20T10_00_00M000Z"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}

	if err := service.Delete(context.Background(), ""); !errors.Is(err, ErrMissingKey) {
		t.Errorf("Expected ErrMissingKey, got: %v", err)
	}
}
