package helpers

import (
	"errors"
	"log/slog"
	"net/http"

	"collegeevents/internal/domain"
)

// WriteServiceError maps a service error to its HTTP status and error code.
// Unmapped errors are logged and reported as 500.
func WriteServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		WriteJSONError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrSourceUnresolved):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateUser), errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrDuplicateVenue), errors.Is(err, domain.ErrAlreadyRegistered):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrSourceAccess):
		logger.WarnContext(r.Context(), "upstream sheet error", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusBadGateway, ErrCodeBadGateway, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
