package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/blogstack/backend/internal/media"
	"github.com/blogstack/backend/internal/metrics"
	"github.com/blogstack/backend/internal/model"
	"github.com/blogstack/backend/internal/service"
)

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, model.APIResponse{Status: status, Message: message, Data: data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, model.ErrorResponse{
		Timestamp: time.Now().Format(time.RFC3339),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	})
}

func abortWithError(c *gin.Context, status int, message string) {
	respondError(c, status, message)
	c.Abort()
}

// writeServiceError is the single translation point from service failures to
// transport responses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, service.ErrNotFound):
		respondError(c, http.StatusNotFound, "Resource not found")
	case errors.Is(err, service.ErrAlreadyExists):
		respondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		respondError(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, service.ErrUnauthorized):
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
	case errors.Is(err, service.ErrPrincipalBanned):
		respondError(c, http.StatusForbidden, "Your account is banned")
	case media.IsValidationError(err):
		metrics.MediaRejectionsTotal.WithLabelValues(mediaRejectReason(err)).Inc()
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled service error")
		respondError(c, http.StatusInternalServerError, "Something went wrong on our side, please try again later")
	}
}

func mediaRejectReason(err error) string {
	switch {
	case errors.Is(err, media.ErrTooManyFiles):
		return "too_many_files"
	case errors.Is(err, media.ErrEmptyFile):
		return "empty_file"
	case errors.Is(err, media.ErrFileTooLarge):
		return "file_too_large"
	case errors.Is(err, media.ErrUnsupportedType):
		return "unsupported_type"
	default:
		return "signature_mismatch"
	}
}
