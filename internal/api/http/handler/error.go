package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/superapp-gateway/internal/gate"
	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/model"
)

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// handleError writes the response for err and aborts the chain. Unclassified errors are
// logged and reported as 500 without detail.
func handleError(c *gin.Context, lg *logger.Logger, err error) {
	status, body := describeError(err)
	if status == http.StatusInternalServerError {
		lg.Error("HTTP handler: request failed",
			"path", c.FullPath(),
			"error", err.Error())
	}
	if rej, ok := gate.AsRejection(err); ok && rej.RetryAfterSeconds() > 0 {
		c.Header("Retry-After", strconv.FormatInt(rej.RetryAfterSeconds(), 10))
	}
	c.AbortWithStatusJSON(status, body)
}

func describeError(err error) (int, errorResponse) {
	if rej, ok := gate.AsRejection(err); ok {
		return rej.HTTPStatus(), errorResponse{Error: rej.Reason.String(), Message: rej.Message}
	}

	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, errorResponse{
			Error:   "validation_failed",
			Message: validationErr.Reason,
			Field:   validationErr.Field,
		}
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrInactiveCredential):
		return http.StatusNotFound, errorResponse{Error: "not_found", Message: "resource not found"}
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict, errorResponse{Error: "conflict", Message: "resource already exists"}
	case errors.Is(err, model.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: model.ErrInvalidCredentials.Error()}
	case errors.Is(err, model.ErrInvalidToken):
		return http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "invalid or expired token"}
	case errors.Is(err, model.ErrQuotaExceeded):
		return http.StatusPaymentRequired, errorResponse{Error: "quota_exceeded", Message: err.Error()}
	case errors.Is(err, model.ErrUpstream):
		return http.StatusBadGateway, errorResponse{Error: "upstream_error", Message: "model provider request failed"}
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, errorResponse{Error: "timeout", Message: "request timed out"}
	default:
		return http.StatusInternalServerError, errorResponse{Error: "internal", Message: "internal server error"}
	}
}

func badRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Error: "bad_request", Message: message})
}
