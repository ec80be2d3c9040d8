package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/superapp-gateway/internal/api/grpc/context"
	grpchandler "github.com/dtroode/superapp-gateway/internal/api/grpc/handler"
	grpcrouter "github.com/dtroode/superapp-gateway/internal/api/grpc/router"
	grpcserver "github.com/dtroode/superapp-gateway/internal/api/grpc/server"
	httpctx "github.com/dtroode/superapp-gateway/internal/api/http/context"
	httphandler "github.com/dtroode/superapp-gateway/internal/api/http/handler"
	httpmiddleware "github.com/dtroode/superapp-gateway/internal/api/http/middleware"
	httprouter "github.com/dtroode/superapp-gateway/internal/api/http/router"
	httpserver "github.com/dtroode/superapp-gateway/internal/api/http/server"
	"github.com/dtroode/superapp-gateway/database"
	"github.com/dtroode/superapp-gateway/internal/config"
	"github.com/dtroode/superapp-gateway/internal/crypto"
	"github.com/dtroode/superapp-gateway/internal/gate"
	"github.com/dtroode/superapp-gateway/internal/llm"
	"github.com/dtroode/superapp-gateway/internal/logger"
	"github.com/dtroode/superapp-gateway/internal/metrics"
	"github.com/dtroode/superapp-gateway/internal/model"
	"github.com/dtroode/superapp-gateway/internal/ratelimit"
	"github.com/dtroode/superapp-gateway/internal/repository/memory"
	"github.com/dtroode/superapp-gateway/internal/repository/postgres"
	"github.com/dtroode/superapp-gateway/internal/revocation"
	"github.com/dtroode/superapp-gateway/internal/server"
	"github.com/dtroode/superapp-gateway/internal/service"
	"github.com/dtroode/superapp-gateway/internal/token"
	"github.com/dtroode/superapp-gateway/internal/worker"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const shutdownTimeout = 10 * time.Second

// stores groups the persistence backends selected by configuration.
type stores struct {
	identities  model.IdentityStore
	credentials model.CredentialStore
	denylist    model.Denylist
	purger      worker.RevocationPurger
	pinger      httphandler.Pinger
	close       func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.NewWithWriter(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	warnings, err := cfg.Validate()
	if err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}
	for _, w := range warnings {
		logger.Warn(w)
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer st.close()

	cipher, err := crypto.NewCipher(cfg.Cipher.Secret)
	if err != nil {
		logger.Fatal("failed to initialize cipher", "error", err)
	}

	tokenManager := token.NewJWT(cfg.JWT.Secret,
		token.WithRefreshSecret(cfg.JWT.RefreshSecret),
		token.WithAccessTTL(cfg.JWT.AccessTTL),
		token.WithRefreshTTL(cfg.JWT.RefreshTTL),
	)

	m := metrics.NewMetrics(prometheus.DefaultRegisterer)

	tokenService := service.NewTokenService(tokenManager, st.denylist, logger)
	accountService := service.NewAccount(st.identities, tokenService, logger)
	vault := service.NewVault(st.credentials, cipher, logger,
		service.WithDefaultQuota(cfg.Quota.DefaultLimit),
		service.WithVaultMetrics(m),
	)
	models := llm.NewFactory(map[model.Service]llm.Endpoint{
		model.ServiceOpenAI: {BaseURL: cfg.LLM.OpenAIBaseURL, Model: cfg.LLM.OpenAIModel},
		model.ServiceGoogle: {BaseURL: cfg.LLM.GoogleBaseURL, Model: cfg.LLM.GoogleModel},
	},
		llm.WithTimeout(cfg.LLM.Timeout),
		llm.WithMaxRetries(cfg.LLM.MaxRetries),
	)
	generator := service.NewContentGenerator(vault, models, logger, m)

	throttle := ratelimit.NewSlidingWindow(cfg.Throttle.MaxRequests, cfg.Throttle.Window)
	accessGate := gate.New(tokenService, st.identities, throttle, logger,
		gate.WithLookupTimeout(cfg.IdentityLookupTimeout),
		gate.WithMetrics(m),
	)

	httpSrv := registerHTTPServer(cfg, logger, m, accessGate, accountService, vault, generator, st.pinger)
	grpcSrv := registerGRPCServer(cfg, logger, accessGate, vault, tokenService, st.identities)

	var sweeperOpts []worker.SweeperOption
	if st.purger != nil {
		sweeperOpts = append(sweeperOpts, worker.WithRevocationPurger(st.purger))
	}
	sweeper := worker.NewQuotaSweeper(vault, cfg.Quota.SweepInterval, cfg.Quota.SweepBatch, logger, sweeperOpts...)

	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		throttle.Run(ctx, cfg.Throttle.JanitorInterval)
	}()

	servers := []struct {
		srv model.Server
		sl  model.SecurityLayer
	}{
		{httpSrv, server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)},
		{grpcSrv, server.NewSecurityLayer(cfg.GRPC.EnableHTTPS, cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)},
	}
	for _, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
				stop()
			}
		}(s.srv, s.sl)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.srv.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.srv.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*stores, error) {
	st := &stores{close: func() {}}

	switch cfg.Database.Backend {
	case "memory":
		logger.Warn("using in-memory storage, data is lost on restart")
		st.identities = memory.NewIdentityRepository()
		st.credentials = memory.NewCredentialRepository()
	default:
		if cfg.Database.AutoMigrate {
			if err := database.Migrate(ctx, cfg.Database.DSN); err != nil {
				return nil, err
			}
		}
		db, err := postgres.NewConection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		st.close = func() { _ = db.Close() }
		st.pinger = db
		st.identities = postgres.NewIdentityRepository(db)
		st.credentials = postgres.NewCredentialRepository(db)

		if cfg.Revocation.Backend == "postgres" {
			revoked := postgres.NewRevokedTokenRepository(db)
			st.denylist = revoked
			st.purger = revoked
		}
	}

	switch cfg.Revocation.Backend {
	case "memory":
		st.denylist = revocation.NewMemory(time.Minute)
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			st.close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		closeDB := st.close
		st.close = func() {
			_ = rdb.Close()
			closeDB()
		}
		st.denylist = revocation.NewRedis(rdb)
	}

	return st, nil
}

func registerHTTPServer(
	cfg *config.Config,
	logger *logger.Logger,
	m *metrics.Metrics,
	accessGate *gate.Gate,
	accountService *service.Account,
	vault *service.Vault,
	generator *service.ContentGenerator,
	pinger httphandler.Pinger,
) *httpserver.HTTPServer {
	if cfg.Environment == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctxMgr := httpctx.NewManager()
	r := httprouter.New(httprouter.Handlers{
		Auth:       httphandler.NewAuth(accountService, cfg.HTTP.CookieName, logger),
		Credential: httphandler.NewCredential(vault, ctxMgr, logger),
		Content:    httphandler.NewContent(generator, ctxMgr, logger),
		Health:     httphandler.NewHealth(pinger),
	},
		httpmiddleware.NewAuthenticate(accessGate, ctxMgr, cfg.HTTP.CookieName, logger),
		httpmiddleware.NewLogging(logger),
		httprouter.WithMetrics(m, prometheus.DefaultGatherer),
		httprouter.WithAllowOrigins(cfg.HTTP.AllowOrigins),
	)

	return httpserver.NewHTTPServer(r.Engine(), fmt.Sprintf(":%s", cfg.HTTP.Port))
}

func registerGRPCServer(
	cfg *config.Config,
	logger *logger.Logger,
	accessGate *gate.Gate,
	vault *service.Vault,
	tokenService *service.TokenService,
	identities model.IdentityStore,
) *grpcserver.GRPCServer {
	ctxMgr := grpcctx.NewManager()
	credentials := grpchandler.NewCredentials(vault, tokenService, identities, ctxMgr, logger)

	r := grpcrouter.New(credentials, accessGate, ctxMgr, cfg.HTTP.CookieName, logger)
	s := r.Register()

	reflection.Register(s)

	return grpcserver.NewGRPCServer(s, fmt.Sprintf(":%s", cfg.GRPC.Port))
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
