package controllers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"deveventhub/internal/delivery/http/helpers"
	"deveventhub/internal/domain"
	"deveventhub/internal/platform/database"
)

// writeDomainError maps a service error onto the API error taxonomy. Internal
// failures are logged with request context and returned as a generic message.
func writeDomainError(ctx context.Context, logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, ve.Error())
	case errors.Is(err, domain.ErrEventNotFound):
		helpers.WriteJSONError(w, http.StatusUnprocessableEntity, helpers.ErrCodeUnprocessable, domain.ErrEventNotFound.Error())
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "resource not found")
	case errors.Is(err, domain.ErrDuplicateSlug):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, domain.ErrDuplicateSlug.Error())
	case errors.Is(err, domain.ErrDuplicateBooking):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, domain.ErrDuplicateBooking.Error())
	case errors.Is(err, database.ErrUnavailable):
		logger.ErrorContext(ctx, "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusServiceUnavailable, helpers.ErrCodeServiceUnavailable, "service temporarily unavailable")
	default:
		logger.ErrorContext(ctx, "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}
