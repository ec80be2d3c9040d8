package gate

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRejection_RetryAfterSeconds(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want int64
	}{
		{0, 0},
		{time.Millisecond, 1},
		{time.Second, 1},
		{1500 * time.Millisecond, 2},
		{15 * time.Minute, 900},
	}

	for _, tt := range tests {
		rej := &Rejection{Reason: RateLimited, RetryAfter: tt.in}
		assert.Equal(t, tt.want, rej.RetryAfterSeconds(), tt.in.String())
	}
}

func TestAsRejection(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", reject(Forbidden, "no"))

	rej, ok := AsRejection(wrapped)
	assert.True(t, ok)
	assert.Equal(t, Forbidden, rej.Reason)

	_, ok = AsRejection(assert.AnError)
	assert.False(t, ok)
}
