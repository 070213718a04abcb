package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/boklen/rentals/internal/domain/errors"
	"github.com/boklen/rentals/internal/server/http/dto"
	"github.com/boklen/rentals/internal/server/http/middleware"
)

// RequestID returns the identifier assigned by the request ID middleware.
func RequestID(c *gin.Context) string {
	val, ok := c.Get(middleware.RequestIDContextKey)
	if !ok {
		return ""
	}
	id, _ := val.(string)
	return id
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound),
		errors.Is(err, domainErrors.ErrNoProviders):
		return http.StatusNotFound
	case errors.Is(err, domainErrors.ErrInvalidTransition),
		errors.Is(err, domainErrors.ErrEmptyCart):
		return http.StatusConflict
	case errors.Is(err, domainErrors.ErrInvalidPhone),
		errors.Is(err, domainErrors.ErrInvalidOTP),
		errors.Is(err, domainErrors.ErrInvalidAddress),
		errors.Is(err, domainErrors.ErrInvalidPrice),
		errors.Is(err, domainErrors.ErrInvalidProfile),
		errors.Is(err, domainErrors.ErrInvalidDate),
		errors.Is(err, domainErrors.ErrUnknownMachine),
		errors.Is(err, domainErrors.ErrUnknownProvider):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: msg})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
}
