package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"venueseating/internal/delivery/http/helpers"
	"venueseating/internal/domain"
)

// uuidRegex matches a canonical UUID string (8-4-4-4-12 hex).
var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// writeServiceError maps domain sentinel errors to API error responses.
// Anything unrecognized is logged and surfaced as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnsupportedVersion):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrDuplicateLabel),
		errors.Is(err, domain.ErrSeatBlocked),
		errors.Is(err, domain.ErrSeatOccupied),
		errors.Is(err, domain.ErrGuestAlreadySeated),
		errors.Is(err, domain.ErrClaimRejected):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
