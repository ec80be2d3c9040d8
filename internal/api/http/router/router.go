package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dtroode/superapp-gateway/internal/api/http/handler"
	"github.com/dtroode/superapp-gateway/internal/api/http/middleware"
	"github.com/dtroode/superapp-gateway/internal/metrics"
	"github.com/dtroode/superapp-gateway/internal/model"
)

// Handlers groups the endpoint handlers mounted by the router.
type Handlers struct {
	Auth       *handler.Auth
	Credential *handler.Credential
	Content    *handler.Content
	Health     *handler.Health
}

// Router assembles the public HTTP API.
type Router struct {
	handlers     Handlers
	authenticate *middleware.Authenticate
	logging      *middleware.Logging
	metrics      *metrics.Metrics
	gatherer     prometheus.Gatherer
	allowOrigins []string
}

type Option func(*Router)

// WithMetrics records request latency and exposes gatherer on /metrics.
func WithMetrics(m *metrics.Metrics, gatherer prometheus.Gatherer) Option {
	return func(r *Router) {
		r.metrics = m
		r.gatherer = gatherer
	}
}

// WithAllowOrigins sets the CORS allow list. "*" allows any origin.
func WithAllowOrigins(origins []string) Option {
	return func(r *Router) {
		r.allowOrigins = origins
	}
}

func New(handlers Handlers, authenticate *middleware.Authenticate, logging *middleware.Logging, opts ...Option) *Router {
	r := &Router{
		handlers:     handlers,
		authenticate: authenticate,
		logging:      logging,
		allowOrigins: []string{"*"},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Engine builds the gin engine with every route registered.
func (r *Router) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(r.logging.HandleHTTP)
	if r.metrics != nil {
		engine.Use(middleware.Metrics(r.metrics))
	}
	engine.Use(cors.New(r.corsConfig()))

	engine.GET("/health", r.handlers.Health.Check)
	if r.gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}

	v1 := engine.Group("/api/v1")

	auth := v1.Group("/auth", r.authenticate.ThrottleOrigin())
	auth.POST("/register", r.handlers.Auth.Register)
	auth.POST("/login", r.handlers.Auth.Login)
	auth.POST("/refresh", r.handlers.Auth.Refresh)
	auth.POST("/logout", r.handlers.Auth.Logout)

	keys := v1.Group("/keys", r.authenticate.Require())
	keys.POST("", r.handlers.Credential.Create)
	keys.GET("", r.handlers.Credential.List)
	keys.GET("/:id", r.handlers.Credential.Get)
	keys.POST("/:id/rotate", r.handlers.Credential.Rotate)
	keys.DELETE("/:id", r.handlers.Credential.Deactivate)

	content := v1.Group("/content", r.authenticate.Require())
	content.POST("/generate", r.handlers.Content.Generate)

	admin := v1.Group("/admin", r.authenticate.Require(model.RoleAdmin))
	admin.POST("/keys/:id/reset-quota", r.handlers.Credential.ResetQuota)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": "route not found",
		})
	})

	return engine
}

func (r *Router) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	for _, o := range r.allowOrigins {
		if o == "*" {
			// credentials cannot be combined with a wildcard origin
			cfg.AllowAllOrigins = true
			cfg.AllowCredentials = false
			return cfg
		}
	}
	if len(r.allowOrigins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = r.allowOrigins
	return cfg
}
