package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory represents different categories of errors for better handling
type ErrorCategory string

const (
	ErrorCategoryLookup        ErrorCategory = "lookup"
	ErrorCategoryValidation    ErrorCategory = "validation"
	ErrorCategoryNumeric       ErrorCategory = "numeric"
	ErrorCategoryConfiguration ErrorCategory = "configuration"
	ErrorCategoryFilesystem    ErrorCategory = "filesystem"
	ErrorCategoryOptical       ErrorCategory = "optical"
	ErrorCategoryStorage       ErrorCategory = "storage"
	ErrorCategoryUnknown       ErrorCategory = "unknown"
)

// Sentinel errors. CoatingError values wrap one of these as their cause so
// callers can match with errors.Is.
var (
	ErrMaterialNotFound = errors.New("material not found")
	ErrLengthMismatch   = errors.New("length mismatch")
	ErrInvalidOperation = errors.New("invalid floating-point operation")
	ErrInvalidArgument  = errors.New("invalid argument")
)

// CoatingError represents an error with a category and the operation it arose from
type CoatingError struct {
	Category   ErrorCategory `json:"category"`
	Operation  string        `json:"operation,omitempty"`
	Message    string        `json:"message"`
	Cause      error         `json:"-"`
	Suggestion string        `json:"suggestion,omitempty"`
}

// Error implements the error interface
func (e *CoatingError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Category, e.Operation, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Category, e.Message)
}

// Unwrap returns the underlying error
func (e *CoatingError) Unwrap() error {
	return e.Cause
}

// GetUserFriendlyMessage returns the message followed by the suggestion, if any
func (e *CoatingError) GetUserFriendlyMessage() string {
	msg := e.Message
	if e.Suggestion != "" {
		msg += "\n\nSuggestion: " + e.Suggestion
	}
	return msg
}

// ErrorBuilder helps construct CoatingError instances
type ErrorBuilder struct {
	category   ErrorCategory
	message    string
	cause      error
	operation  string
	suggestion string
}

// NewErrorBuilder creates a new error builder
func NewErrorBuilder() *ErrorBuilder {
	return &ErrorBuilder{}
}

// Category sets the error category
func (b *ErrorBuilder) Category(category ErrorCategory) *ErrorBuilder {
	b.category = category
	return b
}

// Message sets the error message
func (b *ErrorBuilder) Message(message string) *ErrorBuilder {
	b.message = message
	return b
}

// Messagef sets the error message with formatting
func (b *ErrorBuilder) Messagef(format string, args ...interface{}) *ErrorBuilder {
	b.message = fmt.Sprintf(format, args...)
	return b
}

// Cause sets the underlying error
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.cause = err
	return b
}

// Operation sets the operation context
func (b *ErrorBuilder) Operation(operation string) *ErrorBuilder {
	b.operation = operation
	return b
}

// Suggestion sets a user-friendly suggestion
func (b *ErrorBuilder) Suggestion(suggestion string) *ErrorBuilder {
	b.suggestion = suggestion
	return b
}

// Build creates the CoatingError instance
func (b *ErrorBuilder) Build() *CoatingError {
	if b.category == "" {
		b.category = categorizeError(b.cause, b.message)
	}

	return &CoatingError{
		Category:   b.category,
		Operation:  b.operation,
		Message:    b.message,
		Cause:      b.cause,
		Suggestion: b.suggestion,
	}
}

// categorizeError picks a category from the sentinel cause, falling back to the message
func categorizeError(cause error, message string) ErrorCategory {
	switch {
	case errors.Is(cause, ErrMaterialNotFound):
		return ErrorCategoryLookup
	case errors.Is(cause, ErrLengthMismatch), errors.Is(cause, ErrInvalidArgument):
		return ErrorCategoryValidation
	case errors.Is(cause, ErrInvalidOperation):
		return ErrorCategoryNumeric
	}

	msgLower := strings.ToLower(message)
	switch {
	case strings.Contains(msgLower, "no such file") || strings.Contains(msgLower, "permission denied"):
		return ErrorCategoryFilesystem
	case strings.Contains(msgLower, "yaml") || strings.Contains(msgLower, "parse"):
		return ErrorCategoryConfiguration
	case strings.Contains(msgLower, "sql") || strings.Contains(msgLower, "database"):
		return ErrorCategoryStorage
	default:
		return ErrorCategoryUnknown
	}
}

// Common error constructors for frequently used error types

// NewLookupError creates an unresolved-material error wrapping ErrMaterialNotFound
func NewLookupError(operation, name string) *CoatingError {
	return NewErrorBuilder().
		Category(ErrorCategoryLookup).
		Operation(operation).
		Messagef("material %q not found", name).
		Cause(ErrMaterialNotFound).
		Suggestion("Load the material definition before constructing the coating").
		Build()
}

// NewValidationError creates a validation-related error
func NewValidationError(operation, message string, cause error) *CoatingError {
	if cause == nil {
		cause = ErrInvalidArgument
	}
	return NewErrorBuilder().
		Category(ErrorCategoryValidation).
		Operation(operation).
		Message(message).
		Cause(cause).
		Build()
}

// NewNumericError creates an error for a NaN or infinite result wrapping ErrInvalidOperation
func NewNumericError(operation string, value float64) *CoatingError {
	return NewErrorBuilder().
		Category(ErrorCategoryNumeric).
		Operation(operation).
		Messagef("result is %v", value).
		Cause(ErrInvalidOperation).
		Suggestion("Check for an empty or zero-thickness stack and non-zero beam size").
		Build()
}

// NewOpticalError creates an error for an optical model that cannot be built.
// A nil cause defaults to ErrInvalidArgument.
func NewOpticalError(operation, message string, cause error) *CoatingError {
	if cause == nil {
		cause = ErrInvalidArgument
	}
	return NewErrorBuilder().
		Category(ErrorCategoryOptical).
		Operation(operation).
		Message(message).
		Cause(cause).
		Suggestion("Check the refractive indices, the wavelength and the angle of incidence").
		Build()
}

// NewConfigurationError creates a configuration-related error
func NewConfigurationError(operation, message string, cause error) *CoatingError {
	return NewErrorBuilder().
		Category(ErrorCategoryConfiguration).
		Operation(operation).
		Message(message).
		Cause(cause).
		Suggestion("Check the coating file syntax and format").
		Build()
}

// NewFilesystemError creates a filesystem-related error
func NewFilesystemError(operation, message string, cause error) *CoatingError {
	return NewErrorBuilder().
		Category(ErrorCategoryFilesystem).
		Operation(operation).
		Message(message).
		Cause(cause).
		Suggestion("Check file paths and permissions").
		Build()
}

// NewStorageError creates a materials catalog error
func NewStorageError(operation, message string, cause error) *CoatingError {
	return NewErrorBuilder().
		Category(ErrorCategoryStorage).
		Operation(operation).
		Message(message).
		Cause(cause).
		Build()
}

// WrapError wraps an existing error with CoatingError categorization
func WrapError(err error, operation string) *CoatingError {
	if err == nil {
		return nil
	}

	var coatingErr *CoatingError
	if errors.As(err, &coatingErr) {
		return coatingErr
	}

	return NewErrorBuilder().
		Message(err.Error()).
		Cause(err).
		Operation(operation).
		Build()
}

// IsCategory reports whether err is a CoatingError of the given category
func IsCategory(err error, category ErrorCategory) bool {
	var coatingErr *CoatingError
	if errors.As(err, &coatingErr) {
		return coatingErr.Category == category
	}
	return false
}

// ErrorCollector collects multiple errors, e.g. while validating a manifest
type ErrorCollector struct {
	operation string
	errors    []*CoatingError
}

// NewErrorCollector creates a new error collector
func NewErrorCollector(operation string) *ErrorCollector {
	return &ErrorCollector{operation: operation}
}

// AddError adds an error to the collector
func (c *ErrorCollector) AddError(err *CoatingError) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// Addf adds a validation error with a formatted message
func (c *ErrorCollector) Addf(format string, args ...interface{}) {
	c.AddError(NewValidationError(c.operation, fmt.Sprintf(format, args...), nil))
}

// ToError converts the collector to a single error if there are errors
func (c *ErrorCollector) ToError() error {
	if len(c.errors) == 0 {
		return nil
	}

	if len(c.errors) == 1 {
		return c.errors[0]
	}

	messages := make([]string, len(c.errors))
	for i, err := range c.errors {
		messages[i] = err.Message
	}

	return NewErrorBuilder().
		Category(c.errors[0].Category).
		Operation(c.operation).
		Message(fmt.Sprintf("Multiple errors occurred: %s", strings.Join(messages, "; "))).
		Cause(c.errors[0].Cause).
		Suggestion("Review individual errors and fix them one by one").
		Build()
}
