// Package handler provides HTTP handlers for the ModeShift API.
package handler

import (
	"errors"
	"net/http"

	"github.com/modeshift/modeshift/internal/api/models"
	"github.com/modeshift/modeshift/internal/api/response"
	"github.com/modeshift/modeshift/internal/calc"
	"github.com/modeshift/modeshift/internal/country"
)

// writeServiceError maps domain errors to problem responses. Validation
// failures carry their field errors; everything unrecognized becomes an
// opaque 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *calc.ValidationError
	if errors.As(err, &verr) {
		fields := make([]models.FieldError, len(verr.Errors))
		for i, fe := range verr.Errors {
			fields[i] = models.FieldError{Field: fe.Field, Message: fe.Message}
		}
		response.BadRequest(w, r, "invalid input", fields)
		return
	}

	if errors.Is(err, country.ErrCountryNotFound) {
		response.NotFound(w, r, "country not found")
		return
	}

	response.InternalError(w, r, "an unexpected error occurred")
}
