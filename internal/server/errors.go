package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/talent-pipeline/internal/pipeline"
	"github.com/jonathan/talent-pipeline/internal/schemas"
)

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var invalidState *pipeline.InvalidStateError
	var validation *pipeline.ValidationError
	var schemaErr *schemas.ValidationError

	switch {
	case errors.As(err, &invalidState):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &schemaErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
