// Package extraction turns free-form model responses into validated
// structured values. Models wrap JSON in prose and code fences, truncate
// objects, and leave trailing commas; this package absorbs all of that
// and classifies what it cannot absorb.
package extraction

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/jonathan/job-search-agent/internal/llm"
	"github.com/jonathan/job-search-agent/internal/schemas"
)

// trailingComma matches a comma followed only by whitespace and a
// closing brace or bracket. The repair is textual and can in principle
// touch string literals containing ",}"; the tradeoff is accepted
// because trailing commas are by far the most common model defect.
var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// ExtractObject locates the first complete JSON object embedded in a
// model response and returns it with trailing commas repaired. Code
// fences and surrounding prose are ignored.
func ExtractObject(raw string) (string, error) {
	return extract(raw, '{', '}')
}

// ExtractArray is ExtractObject for top-level JSON arrays.
func ExtractArray(raw string) (string, error) {
	return extract(raw, '[', ']')
}

func extract(raw string, open, close byte) (string, error) {
	text := llm.CleanJSONBlock(raw)

	start := strings.IndexByte(text, open)
	if start < 0 {
		return "", &NoStructuredDataError{Snippet: snippet(text)}
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// Brackets inside string literals do not count.
		case c == open:
			depth++
		case c == close:
			depth--
			if depth == 0 {
				return repairTrailingCommas(text[start : i+1]), nil
			}
		}
	}
	return "", &MalformedDataError{Snippet: snippet(text[start:])}
}

func repairTrailingCommas(s string) string {
	return trailingComma.ReplaceAllString(s, "$1")
}

func snippet(s string) string {
	const max = 120
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// Extract runs the full extractor pipeline: locate the first JSON
// object, repair trailing commas, validate against the named embedded
// schema, and decode into v. Errors are classified: no object,
// unbalanced object, schema violation, decode failure.
func Extract(raw, schemaName string, v any) error {
	doc, err := ExtractObject(raw)
	if err != nil {
		return err
	}

	if err := schemas.Validate(schemaName, doc); err != nil {
		switch err.(type) {
		case *schemas.ValidationError:
			return &SchemaValidationError{Schema: schemaName, Cause: err}
		case *schemas.DocumentError:
			// Balanced braces that still fail to parse as JSON.
			return &DecodeError{Cause: err}
		default:
			return &DecodeError{Cause: err}
		}
	}

	if err := json.Unmarshal([]byte(doc), v); err != nil {
		return &DecodeError{Cause: err}
	}
	return nil
}
