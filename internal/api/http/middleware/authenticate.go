package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dtroode/superapp-gateway/internal/gate"
	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/model"
)

// Admitter is the access check run in front of protected routes.
type Admitter interface {
	Admit(ctx context.Context, req gate.Request) (model.AuthenticatedIdentity, error)
	ThrottleOrigin(ctx context.Context, origin string) error
}

// Authenticate runs the access gate and attaches the admitted identity to the request.
type Authenticate struct {
	gate           Admitter
	contextManager model.ContextManager
	cookieName     string
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware. The session cookie named
// cookieName is consulted when no Authorization header is present.
func NewAuthenticate(g Admitter, contextManager model.ContextManager, cookieName string, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		gate:           g,
		contextManager: contextManager,
		cookieName:     cookieName,
		logger:         logger,
	}
}

// Require admits callers holding one of roles. No roles admits any authenticated caller.
func (m *Authenticate) Require(roles ...model.Role) gin.HandlerFunc {
	allowed := model.Roles(roles...)

	return func(c *gin.Context) {
		req := gate.Request{
			Authorization: c.GetHeader("Authorization"),
			Roles:         allowed,
		}
		if m.cookieName != "" {
			if cookie, err := c.Cookie(m.cookieName); err == nil {
				req.CookieToken = cookie
			}
		}

		identity, err := m.gate.Admit(c.Request.Context(), req)
		if err != nil {
			abortWithGateError(c, m.logger, err)
			return
		}

		c.Request = c.Request.WithContext(m.contextManager.SetIdentityToContext(c.Request.Context(), identity))
		c.Next()
	}
}

// ThrottleOrigin limits unauthenticated routes by client address.
func (m *Authenticate) ThrottleOrigin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.gate.ThrottleOrigin(c.Request.Context(), c.ClientIP()); err != nil {
			abortWithGateError(c, m.logger, err)
			return
		}
		c.Next()
	}
}

func abortWithGateError(c *gin.Context, lg *logger.Logger, err error) {
	rej, ok := gate.AsRejection(err)
	if !ok {
		lg.Error("Authenticate middleware: gate failed",
			"path", c.FullPath(),
			"error", err.Error())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "internal",
			"message": "internal server error",
		})
		return
	}

	if secs := rej.RetryAfterSeconds(); secs > 0 {
		c.Header("Retry-After", strconv.FormatInt(secs, 10))
	}
	c.AbortWithStatusJSON(rej.HTTPStatus(), gin.H{
		"error":   rej.Reason.String(),
		"message": rej.Message,
	})
}
