package handler

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dtroode/superapp-gateway/internal/model"
)

func TestDescribeError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", model.NewValidationError("name", "bad"), http.StatusBadRequest, "validation_failed"},
		{"not found", model.ErrNotFound, http.StatusNotFound, "not_found"},
		{"inactive credential", model.ErrInactiveCredential, http.StatusNotFound, "not_found"},
		{"conflict", fmt.Errorf("create: %w", model.ErrConflict), http.StatusConflict, "conflict"},
		{"invalid credentials", model.ErrInvalidCredentials, http.StatusUnauthorized, "unauthenticated"},
		{"invalid token", model.ErrInvalidToken, http.StatusUnauthorized, "unauthenticated"},
		{"quota", model.ErrQuotaExceeded, http.StatusPaymentRequired, "quota_exceeded"},
		{"upstream", model.ErrUpstream, http.StatusBadGateway, "upstream_error"},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout, "timeout"},
		{"decryption is internal", model.ErrDecryption, http.StatusInternalServerError, "internal"},
		{"unknown", assert.AnError, http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := describeError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Error)
		})
	}
}
