package gate

import (
	"errors"
	"net/http"
	"time"

	"google.golang.org/grpc/codes"
)

// Reason classifies why a request was not admitted.
type Reason int

const (
	Unauthenticated Reason = iota + 1
	Forbidden
	RateLimited
)

func (r Reason) String() string {
	switch r {
	case Unauthenticated:
		return "unauthenticated"
	case Forbidden:
		return "forbidden"
	case RateLimited:
		return "rate_limited"
	default:
		return "unknown"
	}
}

// Rejection is the terminal state of a request refused by the gate. Message is safe to
// return to the caller.
type Rejection struct {
	Reason     Reason
	Message    string
	RetryAfter time.Duration
}

func (r *Rejection) Error() string {
	return r.Reason.String() + ": " + r.Message
}

// HTTPStatus maps the reason to 401, 403 or 429.
func (r *Rejection) HTTPStatus() int {
	switch r.Reason {
	case Forbidden:
		return http.StatusForbidden
	case RateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusUnauthorized
	}
}

// GRPCCode maps the reason to the equivalent gRPC status code.
func (r *Rejection) GRPCCode() codes.Code {
	switch r.Reason {
	case Forbidden:
		return codes.PermissionDenied
	case RateLimited:
		return codes.ResourceExhausted
	default:
		return codes.Unauthenticated
	}
}

// RetryAfterSeconds rounds RetryAfter up to whole seconds, at least 1, for the
// Retry-After header. It returns 0 when no delay is known.
func (r *Rejection) RetryAfterSeconds() int64 {
	if r.RetryAfter <= 0 {
		return 0
	}
	secs := int64(r.RetryAfter / time.Second)
	if r.RetryAfter%time.Second != 0 {
		secs++
	}
	return max(secs, 1)
}

// AsRejection unwraps a *Rejection from err.
func AsRejection(err error) (*Rejection, bool) {
	var rej *Rejection
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

func reject(reason Reason, message string) *Rejection {
	return &Rejection{Reason: reason, Message: message}
}
