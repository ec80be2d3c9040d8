package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/superapp-gateway/internal/gate"
	"github.com/dtroode/superapp-gateway/internal/model"
)

func TestToStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       error
		wantCode codes.Code
		wantMsg  string
	}{
		{"rejection", &gate.Rejection{Reason: gate.Forbidden, Message: "insufficient role"}, codes.PermissionDenied, "insufficient role"},
		{"validation", model.NewValidationError("amount", "is required"), codes.InvalidArgument, "amount: is required"},
		{"not found", fmt.Errorf("find: %w", model.ErrNotFound), codes.NotFound, "credential not found"},
		{"inactive", model.ErrInactiveCredential, codes.NotFound, "credential not found"},
		{"conflict", model.ErrConflict, codes.AlreadyExists, "already exists"},
		{"invalid token", model.ErrInvalidToken, codes.Unauthenticated, "invalid or expired token"},
		{"quota", model.ErrQuotaExceeded, codes.ResourceExhausted, "quota exceeded"},
		{"cancelled", context.Canceled, codes.Canceled, context.Canceled.Error()},
		{"other", errors.New("boom"), codes.Internal, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			st, ok := status.FromError(toStatus(tt.in))
			assert.True(t, ok)
			assert.Equal(t, tt.wantCode, st.Code())
			assert.Equal(t, tt.wantMsg, st.Message())
		})
	}
}
