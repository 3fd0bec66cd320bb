package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Abdurahmanit/GroupProject/campus-service/internal/adapter/email"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/adapter/memory"
	mongoadapter "github.com/Abdurahmanit/GroupProject/campus-service/internal/adapter/mongo"
	natsadapter "github.com/Abdurahmanit/GroupProject/campus-service/internal/adapter/nats"
	redisadapter "github.com/Abdurahmanit/GroupProject/campus-service/internal/adapter/redis"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/config"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/handler"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/platform/tracer"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/router"
	"github.com/Abdurahmanit/GroupProject/campus-service/internal/service"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

// eventPublisher is what the app needs from the NATS adapter on shutdown.
type eventPublisher interface {
	service.EventPublisher
	Close()
}

type App struct {
	cfg            *config.Config
	log            *logger.Logger
	server         *http.Server
	metricsServer  *http.Server
	handler        http.Handler
	publisher      eventPublisher
	tracerProvider *sdktrace.TracerProvider
	mongoClient    *mongo.Client
	redisClient    *redis.Client
}

func New(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	appLogger, err := logger.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	appLogger = appLogger.With(zap.String("service", cfg.ServiceName))
	appLogger.Info("Logger initialized", zap.String("level", cfg.Log.Level))
	if cfg.UsesDefaultSecret() {
		appLogger.Warn("JWT_SECRET is not set, falling back to the built-in development secret")
	}

	a := &App{cfg: cfg, log: appLogger}

	a.tracerProvider = tracer.InitTracer(ctx, cfg.ServiceName, cfg.OTel.ExporterOTLPEndpoint, appLogger)
	metricsManager := metrics.NewMetricsManager(cfg.ServiceName)
	a.metricsServer = metrics.NewMetricsServer(cfg.Prometheus.MetricsPort, appLogger, metricsManager)

	var (
		db    *mongo.Database
		users repository.UserRepository
	)
	if cfg.Store.Driver == config.StoreDriverMongo {
		a.mongoClient, err = mongoadapter.NewClient(ctx, cfg.Mongo)
		if err != nil {
			a.release()
			return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
		}
		appLogger.Info("Successfully connected to MongoDB", zap.String("database", cfg.Mongo.Database))
		db = a.mongoClient.Database(cfg.Mongo.Database)
		users = mongoadapter.NewUserRepository(db, appLogger)
	} else {
		appLogger.Warn("Using the in-memory store, records are lost on restart")
		users = memory.NewUserRepository()
	}

	a.redisClient, err = redisadapter.NewClient(ctx, cfg.Redis)
	if err != nil {
		a.release()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Addr))

	mailer, err := email.NewSender(cfg, appLogger)
	if err != nil {
		a.release()
		return nil, fmt.Errorf("failed to initialize mail sender: %w", err)
	}

	if cfg.NATS.URL != "" {
		pub, err := natsadapter.NewPublisher(cfg.NATS.URL, appLogger, cfg.ServiceName)
		if err != nil {
			a.release()
			return nil, fmt.Errorf("failed to initialize NATS publisher: %w", err)
		}
		a.publisher = pub
	} else {
		appLogger.Info("NATS_URL is empty, domain events are disabled")
		a.publisher = natsadapter.NopPublisher{}
	}

	tokens := service.NewTokenService(cfg.JWT)
	denylist := redisadapter.NewTokenDenylist(a.redisClient)
	otpIssuer := service.NewOTPIssuer(redisadapter.NewOTPStore(a.redisClient, cfg.OTP.MaxAttempts), cfg.OTP.TTL)

	authService := service.NewAuthService(service.AuthDeps{
		Users:        users,
		OTP:          otpIssuer,
		Tokens:       tokens,
		Mailer:       mailer,
		Events:       a.publisher,
		Denylist:     denylist,
		StoreTimeout: cfg.Store.Timeout,
		MailTimeout:  cfg.Mail.Timeout,
		Logger:       appLogger,
	})

	health := handler.NewHealthHandler(a.healthChecks(), cfg.Store.Timeout, appLogger)

	deps := router.Deps{
		Tokens:       tokens,
		Denylist:     denylist,
		Events:       a.publisher,
		Metrics:      metricsManager,
		Tracer:       a.tracerProvider,
		StoreTimeout: cfg.Store.Timeout,
		Logger:       appLogger,
	}
	a.handler = router.New(deps, router.Backend{DB: db, Logger: appLogger}, handler.NewAuthHandler(authService, metricsManager, appLogger), health)

	a.server = &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      a.handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return a, nil
}

func (a *App) healthChecks() map[string]handler.Pinger {
	checks := map[string]handler.Pinger{
		"redis": func(ctx context.Context) error { return a.redisClient.Ping(ctx).Err() },
	}
	if a.mongoClient != nil {
		checks["mongo"] = func(ctx context.Context) error { return a.mongoClient.Ping(ctx, readpref.Primary()) }
	}
	return checks
}

// Handler exposes the routed HTTP handler.
func (a *App) Handler() http.Handler { return a.handler }

// Run serves until SIGINT or SIGTERM and then shuts down.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return a.Serve(ctx)
}

// Serve starts the API and metrics listeners and blocks until ctx is
// cancelled or the API listener fails.
func (a *App) Serve(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		a.log.Info("HTTP server starting", zap.String("address", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	if a.metricsServer != nil {
		go metrics.Serve(a.metricsServer, a.log)
	}

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("Received shutdown signal")
	case err, ok := <-serverErr:
		if ok {
			a.log.Error("HTTP server failed", zap.Error(err))
			runErr = fmt.Errorf("http server: %w", err)
		}
	}

	a.shutdown()
	return runErr
}

// shutdown stops the listeners first and then releases backing
// connections, all within the configured grace period.
func (a *App) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()

	a.log.Info("Attempting graceful shutdown of HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("HTTP server graceful shutdown failed", zap.Error(err))
	} else {
		a.log.Info("HTTP server stopped gracefully")
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			a.log.Error("Metrics server shutdown failed", zap.Error(err))
		}
	}

	a.releaseWithin(shutdownCtx)
	a.log.Info("Application shut down")
	_ = a.log.Sync()
}

func (a *App) release() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.releaseWithin(ctx)
}

func (a *App) releaseWithin(ctx context.Context) {
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(ctx); err != nil {
			a.log.Error("Failed to shut down tracer provider", zap.Error(err))
		}
	}
	if a.mongoClient != nil {
		a.log.Info("Disconnecting MongoDB client...")
		if err := a.mongoClient.Disconnect(ctx); err != nil {
			a.log.Error("Error disconnecting MongoDB client", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		a.log.Info("Closing Redis client...")
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis client", zap.Error(err))
		}
	}
}
