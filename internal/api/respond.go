package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/glowdesk/crm-api/internal/errors"
)

// statusForCode maps AppError codes to HTTP statuses. State-machine refusals
// are conflicts, not bad requests: the payload was fine, the state was not.
func statusForCode(code string) int {
	switch code {
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeValidationError, apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidStage:
		return http.StatusBadRequest
	case apperrors.ErrCodeAlreadyConverted, apperrors.ErrCodeAlreadyQualified,
		apperrors.ErrCodeInvalidTransition, apperrors.ErrCodeApprovalPending,
		apperrors.ErrCodeConflict:
		return http.StatusConflict
	case apperrors.ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes an error response from a service error
func respondError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)
	c.JSON(statusForCode(code), gin.H{
		"error": err.Error(),
		"code":  code,
	})
}

// contextWithTimeout derives a bounded context from the request
func contextWithTimeout(c *gin.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), d)
}
