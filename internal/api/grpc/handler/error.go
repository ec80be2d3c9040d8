package handler

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/superapp-gateway/internal/gate"
	"github.com/dtroode/superapp-gateway/internal/model"
)

func toStatus(err error) error {
	if rej, ok := gate.AsRejection(err); ok {
		return status.Error(rej.GRPCCode(), rej.Message)
	}

	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return status.Error(codes.InvalidArgument, validationErr.Error())
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrInactiveCredential):
		return status.Error(codes.NotFound, "credential not found")
	case errors.Is(err, model.ErrConflict):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, model.ErrInvalidToken):
		return status.Error(codes.Unauthenticated, "invalid or expired token")
	case errors.Is(err, model.ErrQuotaExceeded):
		return status.Error(codes.ResourceExhausted, "quota exceeded")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	default:
		return status.Error(codes.Internal, "internal server error")
	}
}

func (h *Credentials) handleError(method string, err error) error {
	st := toStatus(err)
	if status.Code(st) == codes.Internal {
		h.logger.Error("Credentials handler: request failed",
			"method", method,
			"error", err.Error())
	}
	return st
}
