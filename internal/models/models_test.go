package models

import (
	"errors"
	"fmt"
	"testing"
)

// ============================================================================
// Error Tests
// ============================================================================

func TestErrors_Defined(t *testing.T) {
	for _, err := range []error{ErrValidation, ErrNotFound, ErrPermissionDenied, ErrInUse} {
		if err == nil {
			t.Error("error kind should not be nil")
		}
	}
}

func TestErrors_Unique(t *testing.T) {
	if errors.Is(ErrNotFound, ErrInUse) {
		t.Error("ErrNotFound should not equal ErrInUse")
	}
	if errors.Is(ErrPermissionDenied, ErrValidation) {
		t.Error("ErrPermissionDenied should not equal ErrValidation")
	}
}

func TestValidationError_IsValidation(t *testing.T) {
	verr := NewValidationError("name", "already exists")
	wrapped := fmt.Errorf("create status: %w", verr)

	if !errors.Is(wrapped, ErrValidation) {
		t.Fatal("Expected wrapped ValidationError to match ErrValidation")
	}

	var got *ValidationError
	if !errors.As(wrapped, &got) {
		t.Fatal("Expected errors.As to find ValidationError")
	}
	if got.Fields["name"] != "already exists" {
		t.Errorf("Expected field message 'already exists', got '%s'", got.Fields["name"])
	}
}

func TestValidationError_AddKeepsFirst(t *testing.T) {
	verr := &ValidationError{}
	if verr.OrNil() != nil {
		t.Error("Expected empty ValidationError to collapse to nil")
	}

	verr.Add("password2", "passwords do not match")
	verr.Add("password2", "too short")
	verr.Add("username", "required")

	if verr.Fields["password2"] != "passwords do not match" {
		t.Errorf("Expected first message to win, got '%s'", verr.Fields["password2"])
	}
	if verr.OrNil() == nil {
		t.Fatal("Expected non-empty ValidationError")
	}
	want := "validation failed: password2: passwords do not match; username: required"
	if verr.Error() != want {
		t.Errorf("Expected %q, got %q", want, verr.Error())
	}
}

// ============================================================================
// Struct Tests
// ============================================================================

func TestUser_FullName(t *testing.T) {
	tests := []struct {
		name string
		user User
		want string
	}{
		{"both names", User{Username: "ivan", FirstName: "Ivan", LastName: "Ivanov"}, "Ivan Ivanov"},
		{"first only", User{Username: "ivan", FirstName: "Ivan"}, "Ivan"},
		{"no names", User{Username: "ivan"}, "ivan"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.FullName(); got != tt.want {
				t.Errorf("Expected '%s', got '%s'", tt.want, got)
			}
		})
	}
}

func TestTask_HasLabel(t *testing.T) {
	task := Task{LabelIDs: []int{2, 5}}

	if !task.HasLabel(5) {
		t.Error("Expected task to have label 5")
	}
	if task.HasLabel(3) {
		t.Error("Expected task not to have label 3")
	}
}

func TestTaskFilter_IsEmpty(t *testing.T) {
	if !(TaskFilter{}).IsEmpty() {
		t.Error("Expected zero filter to be empty")
	}

	id := 1
	if (TaskFilter{LabelID: &id}).IsEmpty() {
		t.Error("Expected filter with a label to be non-empty")
	}
}

func TestValidationError_AddErrKeepsSentinel(t *testing.T) {
	errTaken := errors.New("name already exists")
	err := fmt.Errorf("create label: %w", FieldError("name", errTaken))

	if !errors.Is(err, ErrValidation) {
		t.Fatal("Expected error to match ErrValidation")
	}
	if !errors.Is(err, errTaken) {
		t.Fatal("Expected error to match the recorded sentinel")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Fields["name"] != "name already exists" {
		t.Fatalf("Expected field message from sentinel, got %v", verr)
	}
}
