package booking

import (
	"context"
	"testing"
	"time"

	"github.com/dentalpoint/clinic-service/internal/appointment"
	"github.com/dentalpoint/clinic-service/internal/patient"
)

func conflictingRepos() (*mockAppointmentRepo, *mockPatientRepo) {
	patients := &mockPatientRepo{
		keysFunc: func(ctx context.Context) (map[string]bool, error) {
			return map[string]bool{"0040-745123456": true}, nil
		},
		getFunc: func(ctx context.Context, key string) (*patient.Patient, bool, error) {
			return &patient.Patient{FirstName: "Ioana", LastName: "Pop", Phone: key}, true, nil
		},
	}
	appts := &mockAppointmentRepo{
		saveFunc: func(ctx context.Context, key string, appt appointment.Appointment) error {
			return nil
		},
	}
	return appts, patients
}

// TestCoordinator_NoConflict_ReturnsResult tests the synchronous path
func TestCoordinator_NoConflict_ReturnsResult(t *testing.T) {
	appts, patients := conflictingRepos()
	patients.getFunc = func(ctx context.Context, key string) (*patient.Patient, bool, error) {
		return &patient.Patient{FirstName: "Ana", LastName: "Pop"}, true, nil
	}

	coordinator := NewCoordinator(NewService(appts, patients, testNorm, nil), nil)
	outcome, err := coordinator.Save(context.Background(), testAppointment(), "")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if outcome.Conflict != nil {
		t.Fatal("Expected no conflict")
	}
	if outcome.Result == nil || outcome.Result.Key == "" {
		t.Fatalf("Expected a saved result, got %+v", outcome.Result)
	}
}

// TestCoordinator_Conflict_ResolveCompletesSave tests the suspended save
// resuming on resolution
func TestCoordinator_Conflict_ResolveCompletesSave(t *testing.T) {
	appts, patients := conflictingRepos()

	coordinator := NewCoordinator(NewService(appts, patients, testNorm, nil), nil)
	outcome, err := coordinator.Save(context.Background(), testAppointment(), "")

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if outcome.Conflict == nil || outcome.ConflictToken == "" {
		t.Fatalf("Expected a conflict with token, got %+v", outcome)
	}
	if outcome.Conflict.RegisteredFirst != "Ioana" {
		t.Errorf("Expected registered name Ioana, got %s", outcome.Conflict.RegisteredFirst)
	}

	result, err := coordinator.Resolve(context.Background(), outcome.ConflictToken, ChoiceOverrideAppointment)
	if err != nil {
		t.Fatalf("Expected resolution to succeed, got: %v", err)
	}
	if result.Cancelled {
		t.Error("Expected a completed save")
	}

	// The token is single use.
	if _, err := coordinator.Resolve(context.Background(), outcome.ConflictToken, ChoiceCancel); err != ErrConflictNotFound {
		t.Errorf("Expected ErrConflictNotFound on reuse, got: %v", err)
	}
}

// TestCoordinator_Cancel_AbandonsSave tests dialog-close semantics
func TestCoordinator_Cancel_AbandonsSave(t *testing.T) {
	appts, patients := conflictingRepos()
	appts.saveFunc = func(ctx context.Context, key string, appt appointment.Appointment) error {
		t.Error("Expected no appointment write after cancel")
		return nil
	}

	coordinator := NewCoordinator(NewService(appts, patients, testNorm, nil), nil)
	outcome, err := coordinator.Save(context.Background(), testAppointment(), "")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if err := coordinator.Cancel(context.Background(), outcome.ConflictToken); err != nil {
		t.Fatalf("Expected cancel to succeed, got: %v", err)
	}
}

// TestCoordinator_UnknownToken tests resolution of a token that never existed
func TestCoordinator_UnknownToken(t *testing.T) {
	coordinator := NewCoordinator(NewService(&mockAppointmentRepo{}, &mockPatientRepo{}, testNorm, nil), nil)

	if _, err := coordinator.Resolve(context.Background(), "nope", ChoiceCancel); err != ErrConflictNotFound {
		t.Errorf("Expected ErrConflictNotFound, got: %v", err)
	}
	if _, err := coordinator.Resolve(context.Background(), "nope", Choice("bogus")); err != ErrUnknownChoice {
		t.Errorf("Expected ErrUnknownChoice, got: %v", err)
	}
}

// TestCoordinator_CallerGone_CancelsSave tests that an expired request
// context abandons the save
func TestCoordinator_CallerGone_CancelsSave(t *testing.T) {
	appts, patients := conflictingRepos()
	// Hold the keys call until the caller's context is already cancelled.
	release := make(chan struct{})
	patients.keysFunc = func(ctx context.Context) (map[string]bool, error) {
		<-release
		return map[string]bool{"0040-745123456": true}, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		cancel()
		close(release)
	}()

	coordinator := NewCoordinator(NewService(appts, patients, testNorm, nil), nil)
	_, err := coordinator.Save(ctx, testAppointment(), "")
	if err == nil {
		t.Fatal("Expected context error")
	}

	// The detached save must not leak a pending entry.
	deadline := time.After(2 * time.Second)
	for {
		coordinator.mu.Lock()
		n := len(coordinator.pending)
		coordinator.mu.Unlock()
		if n == 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("Expected pending map drained, still %d entries", n)
		case <-time.After(10 * time.Millisecond):
		}
	}
}
