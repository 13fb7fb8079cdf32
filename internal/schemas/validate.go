// Package schemas provides JSON Schema validation for data bundles
// produced outside this service.
package schemas

import (
	_ "embed"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed agent_results.schema.json
var agentResultsSchema string

// ValidationError represents a schema validation failure with the
// offending field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	msg := "agent result bundle failed validation:"
	for _, err := range ve.Errors {
		msg += fmt.Sprintf("\n  %s: %s", err.Field, err.Message)
	}
	return msg
}

// ValidateAgentResults checks an incoming agent result bundle against
// the published schema before it is accepted for storage. Invalid
// bundles are rejected wholesale; the core never sees them.
func ValidateAgentResults(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(agentResultsSchema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("failed to validate agent results: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}
