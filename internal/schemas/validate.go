// Package schemas holds the JSON Schemas for every structured artifact
// the generation stages produce, and validates documents against them.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.json
var schemaFS embed.FS

// Schema names, one per structured stage output.
const (
	CandidateProfile   = "candidate_profile"
	FitResult          = "fit_result"
	BatchFitResults    = "batch_fit_results"
	DiscoverySelection = "discovery_selection"
	RankingReport      = "ranking_report"
)

// FieldError is a single validation failure at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates field-level schema violations.
type ValidationError struct {
	Schema string
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "schema %s: validation failed:\n", ve.Schema)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError reports a problem with the schema itself rather than
// the document under validation.
type SchemaLoadError struct {
	Schema string
	Cause  error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Schema, e.Cause)
}

func (e *SchemaLoadError) Unwrap() error { return e.Cause }

// DocumentError reports a document that could not be parsed as JSON at
// all, as opposed to one that parsed but violated the schema.
type DocumentError struct {
	Schema string
	Cause  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document for schema %s is not valid JSON: %v", e.Schema, e.Cause)
}

func (e *DocumentError) Unwrap() error { return e.Cause }

// Get returns the raw schema document by name.
func Get(name string) (string, error) {
	data, err := schemaFS.ReadFile(name + ".json")
	if err != nil {
		return "", &SchemaLoadError{Schema: name, Cause: err}
	}
	return string(data), nil
}

// MustGet returns the raw schema document by name, panicking if absent.
// Schema names are compile-time constants; a miss is a programming error.
func MustGet(name string) string {
	s, err := Get(name)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks a JSON document against the named embedded schema.
// It returns nil on success, a *ValidationError on document violations,
// a *DocumentError when the document is not JSON at all, and a
// *SchemaLoadError when the schema itself cannot be loaded.
func Validate(name, document string) error {
	raw, err := Get(name)
	if err != nil {
		return err
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return &SchemaLoadError{Schema: name, Cause: err}
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return &DocumentError{Schema: name, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{
		Schema: name,
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
