package middleware

import (
	"context"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dtroode/superapp-gateway/internal/gate"
	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/model"
)

// Admitter runs the access check for a call.
type Admitter interface {
	Admit(ctx context.Context, req gate.Request) (model.AuthenticatedIdentity, error)
}

// Authenticate runs the access gate and injects the admitted identity into context.
type Authenticate struct {
	gate           Admitter
	contextManager model.ContextManager
	cookieName     string
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(g Admitter, contextManager model.ContextManager, cookieName string, logger *logger.Logger) *Authenticate {
	return &Authenticate{gate: g, contextManager: contextManager, cookieName: cookieName, logger: logger}
}

// AuthFunc reads the authorization and cookie metadata, admits the call and returns a
// context carrying the identity.
func (m *Authenticate) AuthFunc(ctx context.Context) (context.Context, error) {
	var req gate.Request
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get("authorization"); len(values) > 0 {
			req.Authorization = values[0]
		}
		if m.cookieName != "" {
			req.CookieToken = cookieValue(md.Get("cookie"), m.cookieName)
		}
	}

	identity, err := m.gate.Admit(ctx, req)
	if err != nil {
		if rej, ok := gate.AsRejection(err); ok {
			return nil, status.Error(rej.GRPCCode(), rej.Message)
		}
		if ctx.Err() != nil {
			return nil, status.FromContextError(ctx.Err()).Err()
		}
		m.logger.Error("Authenticate middleware: gate failed", "error", err.Error())
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return m.contextManager.SetIdentityToContext(ctx, identity), nil
}

func cookieValue(headers []string, name string) string {
	for _, line := range headers {
		cookies, err := http.ParseCookie(line)
		if err != nil {
			continue
		}
		for _, c := range cookies {
			if c.Name == name {
				return c.Value
			}
		}
	}
	return ""
}
