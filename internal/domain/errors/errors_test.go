package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"validation", ErrValidation},
		{"precondition", ErrPrecondition},
		{"conflict", ErrConflict},
		{"not found", ErrNotFound},
		{"storage", ErrStorage},
		{"persistence", ErrPersistence},
		{"timeout", ErrTimeout},
		{"already exists", ErrAlreadyExists},
		{"unavailable", ErrUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if !stdErrors.Is(tc.err, tc.err) {
				t.Fatalf("expected error to match itself: %v", tc.err)
			}
			wrapped := fmt.Errorf("order O1: %w", tc.err)
			if !stdErrors.Is(wrapped, tc.err) {
				t.Fatalf("expected wrapped error to match %v", tc.err)
			}
		})
	}
}

func TestSentinelsAreDistinct(t *testing.T) {
	if stdErrors.Is(ErrValidation, ErrPrecondition) {
		t.Fatal("validation must not match precondition")
	}
	if stdErrors.Is(ErrStorage, ErrPersistence) {
		t.Fatal("storage must not match persistence")
	}
	if stdErrors.Is(ErrConflict, ErrPrecondition) {
		t.Fatal("conflict must not match precondition")
	}
}

func TestWithStep(t *testing.T) {
	err := WithStep(StepUpdateOrder, ErrPersistence)
	if !stdErrors.Is(err, ErrPersistence) {
		t.Fatalf("expected step error to unwrap to ErrPersistence, got %v", err)
	}
	if got := FailedStep(err); got != StepUpdateOrder {
		t.Fatalf("expected step %q, got %q", StepUpdateOrder, got)
	}
	if got := err.Error(); got != "update order: persistence failure" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestWithStepNil(t *testing.T) {
	if err := WithStep(StepValidateFile, nil); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestFailedStepPlainError(t *testing.T) {
	if got := FailedStep(ErrNotFound); got != "" {
		t.Fatalf("expected empty step, got %q", got)
	}
}

func TestWithStepDoubleWrap(t *testing.T) {
	inner := WithStep(StepPersistAttachment, ErrPersistence)
	outer := fmt.Errorf("replace invoice: %w", inner)
	if got := FailedStep(outer); got != StepPersistAttachment {
		t.Fatalf("expected step %q, got %q", StepPersistAttachment, got)
	}
}
