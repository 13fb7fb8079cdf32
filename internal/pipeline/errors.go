// Package pipeline implements the candidate pipeline state machine:
// stage transitions, the timestamps they stamp, and the timeline
// projection derived from them.
package pipeline

import "fmt"

// InvalidStateError indicates a transition target outside the fixed
// stage enum. The operation is all-or-nothing; the candidate is left
// untouched.
type InvalidStateError struct {
	Target string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid pipeline state: %q", e.Target)
}

// ValidationError indicates a required input was missing or malformed.
// The operation is all-or-nothing; the candidate is left untouched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}
