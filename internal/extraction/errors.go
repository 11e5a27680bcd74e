package extraction

import (
	"fmt"

	"github.com/jonathan/job-search-agent/internal/schemas"
)

// NoStructuredDataError means the response contains no JSON object at
// all. Retrying the parse cannot help; the generation itself failed.
type NoStructuredDataError struct {
	Snippet string
}

func (e *NoStructuredDataError) Error() string {
	return fmt.Sprintf("no JSON object found in response: %q", e.Snippet)
}

// MalformedDataError means a JSON object was started but never closed.
type MalformedDataError struct {
	Snippet string
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("unbalanced JSON object in response: %q", e.Snippet)
}

// DecodeError means the extracted text still failed to decode after
// repair.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode extracted JSON: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// SchemaValidationError means the document decoded but violates the
// stage's output schema.
type SchemaValidationError struct {
	Schema string
	Cause  error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("extracted JSON violates schema %s: %v", e.Schema, e.Cause)
}

func (e *SchemaValidationError) Unwrap() error { return e.Cause }

// Fields returns the field-level violations when the cause carries them.
func (e *SchemaValidationError) Fields() []schemas.FieldError {
	if ve, ok := e.Cause.(*schemas.ValidationError); ok {
		return ve.Errors
	}
	return nil
}
