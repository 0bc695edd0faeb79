package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-grid-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-grid-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, attendance.ErrInvalidWeeklyOff):
		ValidationError(w, map[string]string{"weekly_off": err.Error()})
	case errors.Is(err, attendance.ErrCompanyIDRequired):
		ValidationError(w, map[string]string{"company_id": err.Error()})

	// Default
	default:
		slog.ErrorContext(r.Context(), "Unhandled error", "error", err, "path", r.URL.Path)
		InternalServerError(w, "An unexpected error occurred")
	}
}
