package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestCoatingError_Error(t *testing.T) {
	tests := []struct {
		name     string
		error    *CoatingError
		expected string
	}{
		{
			name: "operation error",
			error: &CoatingError{
				Category:  ErrorCategoryLookup,
				Operation: "new_layer",
				Message:   `material "Unobtainium" not found`,
			},
			expected: `[lookup] new_layer: material "Unobtainium" not found`,
		},
		{
			name: "minimal error",
			error: &CoatingError{
				Category: ErrorCategoryUnknown,
				Message:  "unknown error",
			},
			expected: "[unknown] unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.error.Error(); got != tt.expected {
				t.Errorf("CoatingError.Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestErrorBuilder(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := NewErrorBuilder().
		Category(ErrorCategoryOptical).
		Message("bad stack").
		Operation("create_stack").
		Cause(cause).
		Suggestion("Check the indices").
		Build()

	if err.Category != ErrorCategoryOptical {
		t.Errorf("Expected category %v, got %v", ErrorCategoryOptical, err.Category)
	}
	if err.Message != "bad stack" {
		t.Errorf("Expected message 'bad stack', got %v", err.Message)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected builder error to unwrap to its cause")
	}
	if !strings.Contains(err.GetUserFriendlyMessage(), "Suggestion: Check the indices") {
		t.Errorf("Expected suggestion in friendly message, got %q", err.GetUserFriendlyMessage())
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name     string
		cause    error
		message  string
		expected ErrorCategory
	}{
		{"material sentinel", ErrMaterialNotFound, "", ErrorCategoryLookup},
		{"length sentinel", ErrLengthMismatch, "", ErrorCategoryValidation},
		{"wrapped numeric sentinel", fmt.Errorf("y_para: %w", ErrInvalidOperation), "", ErrorCategoryNumeric},
		{"missing file", nil, "open x.yaml: no such file or directory", ErrorCategoryFilesystem},
		{"yaml syntax", nil, "yaml: line 3: did not find expected key", ErrorCategoryConfiguration},
		{"database", nil, "sql: no rows in result set", ErrorCategoryStorage},
		{"unknown", nil, "something odd", ErrorCategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categorizeError(tt.cause, tt.message); got != tt.expected {
				t.Errorf("categorizeError() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *CoatingError
		category ErrorCategory
		sentinel error
	}{
		{"lookup", NewLookupError("get_material", "Foo"), ErrorCategoryLookup, ErrMaterialNotFound},
		{"validation default cause", NewValidationError("adjust_layers", "bad", nil), ErrorCategoryValidation, ErrInvalidArgument},
		{"validation explicit cause", NewValidationError("adjust_layers", "bad", ErrLengthMismatch), ErrorCategoryValidation, ErrLengthMismatch},
		{"numeric", NewNumericError("y_perp", 0), ErrorCategoryNumeric, ErrInvalidOperation},
		{"optical default cause", NewOpticalError("set_aoi", "bad", nil), ErrorCategoryOptical, ErrInvalidArgument},
		{"optical explicit cause", NewOpticalError("create_stack", "bad", ErrLengthMismatch), ErrorCategoryOptical, ErrLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Category != tt.category {
				t.Errorf("Category = %v, want %v", tt.err.Category, tt.category)
			}
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.sentinel)
			}
			if !IsCategory(tt.err, tt.category) {
				t.Errorf("IsCategory(%v) = false", tt.category)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(nil, "op") != nil {
		t.Error("WrapError(nil) should return nil")
	}

	original := NewLookupError("get_material", "Foo")
	wrapped := WrapError(fmt.Errorf("context: %w", original), "load")
	if wrapped != original {
		t.Error("WrapError should return an existing CoatingError as-is")
	}

	plain := WrapError(fmt.Errorf("open a.yaml: no such file or directory"), "load")
	if plain.Category != ErrorCategoryFilesystem {
		t.Errorf("Expected filesystem category, got %v", plain.Category)
	}
	if plain.Operation != "load" {
		t.Errorf("Expected operation load, got %v", plain.Operation)
	}
}

func TestErrorCollector(t *testing.T) {
	collector := NewErrorCollector("validate")
	if collector.ToError() != nil {
		t.Error("Empty collector should convert to nil")
	}

	collector.Addf("superstrate is required")
	if err := collector.ToError(); err == nil || err.Error() != "[validation] validate: superstrate is required" {
		t.Errorf("Single-error collector should return that error, got %v", err)
	}

	collector.Addf("layer %d has negative thickness", 3)
	err := collector.ToError()
	if err == nil {
		t.Fatal("Expected combined error")
	}
	if !strings.Contains(err.Error(), "superstrate is required; layer 3 has negative thickness") {
		t.Errorf("Combined error missing messages: %v", err)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("Combined error should keep the first cause")
	}
}
