package patient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dentalpoint/clinic-service/internal/appointment"
	"github.com/dentalpoint/clinic-service/internal/testutil"
)

type mockRepository struct {
	keysFunc        func(ctx context.Context) (map[string]bool, error)
	getFunc         func(ctx context.Context, key string) (*Patient, bool, error)
	listByPhoneFunc func(ctx context.Context, phone string) (Collection, error)
	listByNameFunc  func(ctx context.Context, name string, reversed bool) (Collection, error)
	saveFunc        func(ctx context.Context, key string, p Patient) error
	deleteFunc      func(ctx context.Context, key string) error
}

func (m *mockRepository) Keys(ctx context.Context) (map[string]bool, error) {
	if m.keysFunc != nil {
		return m.keysFunc(ctx)
	}
	return map[string]bool{}, nil
}

func (m *mockRepository) Get(ctx context.Context, key string) (*Patient, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, key)
	}
	return nil, false, errors.New("not implemented")
}

func (m *mockRepository) ListByPhone(ctx context.Context, phone string) (Collection, error) {
	if m.listByPhoneFunc != nil {
		return m.listByPhoneFunc(ctx, phone)
	}
	return Collection{}, nil
}

func (m *mockRepository) ListByName(ctx context.Context, name string, reversed bool) (Collection, error) {
	if m.listByNameFunc != nil {
		return m.listByNameFunc(ctx, name, reversed)
	}
	return Collection{}, nil
}

func (m *mockRepository) Save(ctx context.Context, key string, p Patient) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, key, p)
	}
	return errors.New("not implemented")
}

func (m *mockRepository) Delete(ctx context.Context, key string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, key)
	}
	return errors.New("not implemented")
}

type mockAppointments struct {
	listByPhoneFunc func(ctx context.Context, phone string) (appointment.Collection, error)
	saveFunc        func(ctx context.Context, key string, appt appointment.Appointment) error
}

func (m *mockAppointments) ListFromDate(ctx context.Context, from time.Time) (appointment.Collection, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAppointments) ListRange(ctx context.Context, from, to time.Time) (appointment.Collection, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAppointments) ListByDate(ctx context.Context, date string) (appointment.Collection, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAppointments) ListByPhone(ctx context.Context, phone string) (appointment.Collection, error) {
	if m.listByPhoneFunc != nil {
		return m.listByPhoneFunc(ctx, phone)
	}
	return appointment.Collection{}, nil
}

func (m *mockAppointments) ListByName(ctx context.Context, name string, reversed bool) (appointment.Collection, error) {
	return nil, errors.New("not implemented")
}

func (m *mockAppointments) Get(ctx context.Context, key string) (*appointment.Appointment, bool, error) {
	return nil, false, errors.New("not implemented")
}

func (m *mockAppointments) Save(ctx context.Context, key string, appt appointment.Appointment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, key, appt)
	}
	return errors.New("not implemented")
}

func (m *mockAppointments) Delete(ctx context.Context, key string) error {
	return errors.New("not implemented")
}

func anaPatient() Patient {
	return Patient{FirstName: "Ana", LastName: "Pop", Phone: "0040-745123456"}
}

// TestSave_NewPatient_FreeNumber tests a plain registration
func TestSave_NewPatient_FreeNumber(t *testing.T) {
	var saved *Patient
	repo := &mockRepository{
		saveFunc: func(ctx context.Context, key string, p Patient) error {
			saved = &p
			return nil
		},
	}
	publisher := testutil.NewMockPublisher()

	service := NewService(repo, &mockAppointments{}, publisher)
	outcome, err := service.Save(context.Background(), anaPatient(), "")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !outcome.Created || outcome.Key != "0040-745123456" {
		t.Errorf("Expected created under phone key, got %+v", outcome)
	}
	if saved == nil || saved.SearchKeyName != "anapop" || saved.SearchKeyNameReversed != "popana" {
		t.Errorf("Expected derived search keys, got %+v", saved)
	}
	publisher.AssertEventPublished(t, "patient.created")
}

// TestSave_NewPatient_TakenNumber tests rejection with the holder's name
func TestSave_NewPatient_TakenNumber(t *testing.T) {
	repo := &mockRepository{
		listByPhoneFunc: func(ctx context.Context, phone string) (Collection, error) {
			return Collection{"0040-745123456": {FirstName: "Ioana", LastName: "Pop"}}, nil
		},
	}

	service := NewService(repo, &mockAppointments{}, nil)
	outcome, err := service.Save(context.Background(), anaPatient(), "")

	if outcome != nil {
		t.Errorf("Expected nil outcome, got %+v", outcome)
	}
	var registered *PhoneRegisteredError
	if !errors.As(err, &registered) {
		t.Fatalf("Expected PhoneRegisteredError, got: %v", err)
	}
	if registered.FirstName != "Ioana" {
		t.Errorf("Expected holder Ioana, got %s", registered.FirstName)
	}
}

// TestSave_Edit_Unchanged tests a plain in-place save
func TestSave_Edit_Unchanged(t *testing.T) {
	apptsCalled := false
	repo := &mockRepository{
		getFunc: func(ctx context.Context, key string) (*Patient, bool, error) {
			p := anaPatient()
			return &p, true, nil
		},
		saveFunc: func(ctx context.Context, key string, p Patient) error {
			return nil
		},
	}
	appts := &mockAppointments{
		listByPhoneFunc: func(ctx context.Context, phone string) (appointment.Collection, error) {
			apptsCalled = true
			return appointment.Collection{}, nil
		},
	}

	service := NewService(repo, appts, nil)
	outcome, err := service.Save(context.Background(), anaPatient(), "0040-745123456")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if outcome.Migrated || outcome.Created || outcome.UpdatedAppointments != 0 {
		t.Errorf("Expected plain update, got %+v", outcome)
	}
	if apptsCalled {
		t.Error("Expected no appointment listing for an unchanged name")
	}
}

// TestSave_Edit_NameChanged_RewritesAppointments tests the rename cascade
func TestSave_Edit_NameChanged_RewritesAppointments(t *testing.T) {
	rewritten := map[string]appointment.Appointment{}
	repo := &mockRepository{
		getFunc: func(ctx context.Context, key string) (*Patient, bool, error) {
			return &Patient{FirstName: "Ana", LastName: "Popescu", Phone: key}, true, nil
		},
		saveFunc: func(ctx context.Context, key string, p Patient) error {
			return nil
		},
	}
	appts := &mockAppointments{
		listByPhoneFunc: func(ctx context.Context, phone string) (appointment.Collection, error) {
			return appointment.Collection{
				"2024-05-20T10_00_00M000Z": {FirstName: "Ana", LastName: "Popescu", Phone: phone},
				"2024-06-01T09_00_00M000Z": {FirstName: "Ana", LastName: "Popescu", Phone: phone},
			}, nil
		},
		saveFunc: func(ctx context.Context, key string, appt appointment.Appointment) error {
			rewritten[key] = appt
			return nil
		},
	}
	publisher := testutil.NewMockPublisher()

	service := NewService(repo, appts, publisher)
	outcome, err := service.Save(context.Background(), anaPatient(), "0040-745123456")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if outcome.UpdatedAppointments != 2 {
		t.Errorf("Expected 2 rewritten appointments, got %d", outcome.UpdatedAppointments)
	}
	for key, appt := range rewritten {
		if appt.LastName != "Pop" {
			t.Errorf("Appointment %s: expected last name Pop, got %s", key, appt.LastName)
		}
		if appt.SearchKeyName != "anapop" {
			t.Errorf("Appointment %s: expected rebuilt search key, got %s", key, appt.SearchKeyName)
		}
	}
	publisher.AssertEventPublished(t, "appointment.names_rewritten")
}

// TestSave_Edit_PhoneChanged_Taken tests rejection before any write
func TestSave_Edit_PhoneChanged_Taken(t *testing.T) {
	repo := &mockRepository{
		getFunc: func(ctx context.Context, key string) (*Patient, bool, error) {
			return &Patient{FirstName: "Ana", LastName: "Pop", Phone: key}, true, nil
		},
		listByPhoneFunc: func(ctx context.Context, phone string) (Collection, error) {
			return Collection{phone: {FirstName: "Maria", LastName: "Ionescu"}}, nil
		},
		saveFunc: func(ctx context.Context, key string, p Patient) error {
			t.Error("Expected no write when the new number is taken")
			return nil
		},
	}

	service := NewService(repo, &mockAppointments{}, nil)
	p := anaPatient()
	p.Phone = "0040-799000000"
	_, err := service.Save(context.Background(), p, "0040-745123456")

	var registered *PhoneRegisteredError
	if !errors.As(err, &registered) {
		t.Fatalf("Expected PhoneRegisteredError, got: %v", err)
	}
}

// TestSave_Edit_PhoneChanged_Free tests the key migration: save new, rewrite
// appointments, delete old
func TestSave_Edit_PhoneChanged_Free(t *testing.T) {
	var order []string
	repo := &mockRepository{
		getFunc: func(ctx context.Context, key string) (*Patient, bool, error) {
			return &Patient{FirstName: "Ana", LastName: "Pop", Phone: key}, true, nil
		},
		listByPhoneFunc: func(ctx context.Context, phone string) (Collection, error) {
			return Collection{}, nil
		},
		saveFunc: func(ctx context.Context, key string, p Patient) error {
			order = append(order, "save:"+key)
			return nil
		},
		deleteFunc: func(ctx context.Context, key string) error {
			order = append(order, "delete:"+key)
			return nil
		},
	}
	appts := &mockAppointments{
		listByPhoneFunc: func(ctx context.Context, phone string) (appointment.Collection, error) {
			if phone != "0040-745123456" {
				t.Errorf("Expected appointments listed under the old key, got %s", phone)
			}
			return appointment.Collection{
				"2024-05-20T10_00_00M000Z": {FirstName: "Ana", LastName: "Pop", Phone: phone},
			}, nil
		},
		saveFunc: func(ctx context.Context, key string, appt appointment.Appointment) error {
			if appt.Phone != "0040-799000000" {
				t.Errorf("Expected appointment repointed to the new key, got %s", appt.Phone)
			}
			order = append(order, "appt:"+key)
			return nil
		},
	}
	publisher := testutil.NewMockPublisher()

	service := NewService(repo, appts, publisher)
	p := anaPatient()
	p.Phone = "0040-799000000"
	outcome, err := service.Save(context.Background(), p, "0040-745123456")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !outcome.Migrated || outcome.Key != "0040-799000000" {
		t.Errorf("Expected migration to new key, got %+v", outcome)
	}

	expected := []string{
		"save:0040-799000000",
		"appt:2024-05-20T10_00_00M000Z",
		"delete:0040-745123456",
	}
	if len(order) != len(expected) {
		t.Fatalf("Expected write order %v, got %v", expected, order)
	}
	for i := range expected {
		if order[i] != expected[i] {
			t.Errorf("Write %d: expected %s, got %s", i, expected[i], order[i])
		}
	}
	publisher.AssertEventPublished(t, "patient.migrated")
}

// TestSave_Edit_MissingRecord answers ErrNotFound
func TestSave_Edit_MissingRecord(t *testing.T) {
	repo := &mockRepository{
		getFunc: func(ctx context.Context, key string) (*Patient, bool, error) {
			return nil, false, nil
		},
	}

	service := NewService(repo, &mockAppointments{}, nil)
	if _, err := service.Save(context.Background(), anaPatient(), "0040-745123456"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

// TestSave_Validation tests the required-field checks
func TestSave_Validation(t *testing.T) {
	service := NewService(&mockRepository{}, &mockAppointments{}, nil)

	p := anaPatient()
	p.LastName = ""
	if _, err := service.Save(context.Background(), p, ""); !errors.Is(err, ErrMissingLastName) {
		t.Errorf("Expected ErrMissingLastName, got: %v", err)
	}

	p = anaPatient()
	p.Phone = ""
	if _, err := service.Save(context.Background(), p, ""); !errors.Is(err, ErrMissingPhone) {
		t.Errorf("Expected ErrMissingPhone, got: %v", err)
	}
}

// TestGenerateKey tests the phone-key derivation
func TestGenerateKey(t *testing.T) {
	if got := GenerateKey("+40", "745123456"); got != "0040-745123456" {
		t.Errorf("Expected 0040-745123456, got %s", got)
	}
	if got := GenerateKey("49", "17012345"); got != "0049-17012345" {
		t.Errorf("Expected 0049-17012345, got %s", got)
	}
}

// TestList_ByName_MergesBothKeyOrders tests the two-query name search
func TestList_ByName_MergesBothKeyOrders(t *testing.T) {
	repo := &mockRepository{
		listByNameFunc: func(ctx context.Context, name string, reversed bool) (Collection, error) {
			if name != "anapop" && name != "popana" {
				// Normalized input only; "Ana Pop" folds to anapop.
				t.Errorf("Expected normalized search input, got %q", name)
			}
			if reversed {
				return Collection{"b": {FirstName: "Pop", LastName: "Ana"}}, nil
			}
			return Collection{"a": {FirstName: "Ana", LastName: "Pop"}}, nil
		},
	}

	service := NewService(repo, &mockAppointments{}, nil)
	patients, err := service.List(context.Background(), "", "Ana Pop")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(patients) != 2 {
		t.Errorf("Expected merged results from both key orders, got %d", len(patients))
	}
}
