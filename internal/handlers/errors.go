package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/craftbooks/craft_books_app/internal/apperrors"
	"github.com/craftbooks/craft_books_app/internal/core/services"
	"github.com/gin-gonic/gin"
)

var badRequestErrors = []error{
	services.ErrUnbalancedEntry,
	services.ErrJournalMinEntries,
	services.ErrJournalMinAccounts,
	services.ErrMemoMissing,
	services.ErrAccountInactive,
	services.ErrInvalidPayment,
	apperrors.ErrValidation,
}

var conflictErrors = []error{
	services.ErrSystemAccountProtected,
	services.ErrAccountInUse,
	services.ErrAlreadyConverted,
	services.ErrAlreadyReversed,
	services.ErrPaymentsExist,
	services.ErrStatusProtected,
	services.ErrFinalized,
	apperrors.ErrDuplicate,
	apperrors.ErrConflict,
}

func isAnyOf(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// respondServiceError maps service and repository errors to HTTP responses.
// fallback is the message returned for unexpected errors, which are not
// echoed to the client.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	switch {
	case isAnyOf(err, badRequestErrors):
		logger.Warn("Request rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAccountNotFound), errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case isAnyOf(err, conflictErrors):
		logger.Warn("Request conflicts with current state", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code >= http.StatusBadRequest && appErr.Code < http.StatusInternalServerError {
			logger.Warn("Request failed", slog.Int("code", appErr.Code), slog.String("error", err.Error()))
			c.JSON(appErr.Code, gin.H{"error": appErr.Message})
			return
		}
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
