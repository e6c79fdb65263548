package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/Nairim-holding/api-nairim-v2-sub000/internal/api/shared/errors"
	"github.com/Nairim-holding/api-nairim-v2-sub000/internal/logger"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error *apierrors.APIError `json:"error"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, apiErr *apierrors.APIError) {
	c.JSON(apiErr.Status(), errorResponse{Error: apiErr})
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, apierrors.NewBadRequestError(message, details...))
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, apierrors.NewValidationError(details))
}

// respondError classifies err and sends the matching response.
// Internal errors are logged; their cause never reaches the client.
func respondError(c *gin.Context, err error, message string, fields ...zap.Field) {
	apiErr := apierrors.FromError(err, message)
	if apiErr.Code == apierrors.ErrCodeInternalError {
		fields = append(fields, zap.String("path", c.Request.URL.Path))
		logger.ErrorCtx(c.Request.Context(), err, fields...)
	}
	respondWithError(c, apiErr)
}
