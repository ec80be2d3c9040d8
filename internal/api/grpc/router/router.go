package router

import (
	"context"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/superapp-gateway/internal/api/grpc/handler"
	"github.com/dtroode/superapp-gateway/internal/api/grpc/middleware"
	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/model"
)

// Router represents a gRPC router for the internal credentials service.
type Router struct {
	credentials    *handler.Credentials
	gate           middleware.Admitter
	contextManager model.ContextManager
	cookieName     string
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
func New(
	credentials *handler.Credentials,
	gate middleware.Admitter,
	contextManager model.ContextManager,
	cookieName string,
	logger *logger.Logger,
) *Router {
	return &Router{
		credentials:    credentials,
		gate:           gate,
		contextManager: contextManager,
		cookieName:     cookieName,
		logger:         logger,
	}
}

// authRequired is false for introspection and health checks.
func authRequired(_ context.Context, c interceptors.CallMeta) bool {
	if c.FullMethod() == handler.IntrospectMethod {
		return false
	}
	return c.Service != grpc_health_v1.Health_ServiceDesc.ServiceName
}

// Register builds the gRPC server with logging, recovery and authentication
// interceptors and registers every service.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.gate, r.contextManager, r.cookieName, r.logger)

	s := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(),
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(authRequired),
			),
		),
	)

	handler.RegisterCredentialsServer(s, r.credentials)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(handler.CredentialsServiceName, grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(s, healthServer)

	return s
}
