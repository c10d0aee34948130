package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrCodeInternal   ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound   ErrorCode = "NOT_FOUND"

	// Quiz engine errors
	ErrCodeContentUnavailable  ErrorCode = "CONTENT_UNAVAILABLE"
	ErrCodeGenerationFailed    ErrorCode = "GENERATION_FAILED"
	ErrCodeConcurrencyConflict ErrorCode = "CONCURRENCY_CONFLICT"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper constructors for common errors
func NewValidationError(message string) *DomainError {
	return NewError(ErrCodeValidation, message, nil)
}

func NewNotFoundError(message string) *DomainError {
	return NewError(ErrCodeNotFound, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(ErrCodeInternal, message, cause)
}

// NewContentUnavailableError signals that no syllabus content exists for the
// requested curriculum coordinate.
func NewContentUnavailableError(coord CurriculumCoordinate) *DomainError {
	return NewError(ErrCodeContentUnavailable,
		fmt.Sprintf("No chapter content for class %d, subject %q, chapter %q", coord.ClassNumber, coord.Subject, coord.Chapter), nil)
}

// NewGenerationFailedError signals that the question generation collaborator
// returned nothing usable or errored.
func NewGenerationFailedError(cause error) *DomainError {
	return NewError(ErrCodeGenerationFailed, "Question generation failed", cause)
}

func NewQuestionSetNotFoundError(setID string) *DomainError {
	return NewError(ErrCodeNotFound, fmt.Sprintf("Question set not found: %s", setID), nil)
}

func NewConcurrencyConflictError(message string) *DomainError {
	return NewError(ErrCodeConcurrencyConflict, message, nil)
}
