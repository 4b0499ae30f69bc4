package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/mailtocall-api/internal/config"
	authHandler "github.com/jwalitptl/mailtocall-api/internal/handler/auth"
	callLogHandler "github.com/jwalitptl/mailtocall-api/internal/handler/calllog"
	contactHandler "github.com/jwalitptl/mailtocall-api/internal/handler/contact"
	groupHandler "github.com/jwalitptl/mailtocall-api/internal/handler/contactgroup"
	emailEventHandler "github.com/jwalitptl/mailtocall-api/internal/handler/emailevent"
	"github.com/jwalitptl/mailtocall-api/internal/handler/health"
	promHandler "github.com/jwalitptl/mailtocall-api/internal/handler/prometheus"
	statsHandler "github.com/jwalitptl/mailtocall-api/internal/handler/systemstats"
	triggerHandler "github.com/jwalitptl/mailtocall-api/internal/handler/trigger"
	"github.com/jwalitptl/mailtocall-api/internal/middleware"
	"github.com/jwalitptl/mailtocall-api/internal/repository/postgres"
	"github.com/jwalitptl/mailtocall-api/internal/router"
	authService "github.com/jwalitptl/mailtocall-api/internal/service/auth"
	callLogService "github.com/jwalitptl/mailtocall-api/internal/service/calllog"
	contactService "github.com/jwalitptl/mailtocall-api/internal/service/contact"
	groupService "github.com/jwalitptl/mailtocall-api/internal/service/contactgroup"
	emailEventService "github.com/jwalitptl/mailtocall-api/internal/service/emailevent"
	eventService "github.com/jwalitptl/mailtocall-api/internal/service/event"
	"github.com/jwalitptl/mailtocall-api/internal/service/export"
	statsService "github.com/jwalitptl/mailtocall-api/internal/service/systemstats"
	triggerService "github.com/jwalitptl/mailtocall-api/internal/service/trigger"
	"github.com/jwalitptl/mailtocall-api/internal/worker"
	"github.com/jwalitptl/mailtocall-api/pkg/auth"
	"github.com/jwalitptl/mailtocall-api/pkg/logger"
	"github.com/jwalitptl/mailtocall-api/pkg/messaging"
	"github.com/jwalitptl/mailtocall-api/pkg/messaging/redis"
	"github.com/jwalitptl/mailtocall-api/pkg/metrics"
	"github.com/jwalitptl/mailtocall-api/pkg/security"
	"github.com/jwalitptl/mailtocall-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	validator.Register()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(cfg.Metrics.Namespace, registry)

	var httpMetrics *promHandler.Handler
	if cfg.Metrics.Enabled {
		httpMetrics = promHandler.New(cfg.Metrics.Namespace, registry)
	}

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Change events go to Redis when configured
	var broker messaging.Broker = messaging.NopBroker{}
	if cfg.Redis.URL != "" {
		broker, err = redis.NewRedisBroker(ctx, redis.Config{
			URL:          cfg.Redis.URL,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to Redis")
		}
	}
	defer broker.Close()
	events := eventService.NewEventService(broker, cfg.Redis.Channel)

	// Repositories
	groupRepo := postgres.NewContactGroupRepository(db, m)
	contactRepo := postgres.NewContactRepository(db, m)
	triggerRepo := postgres.NewTriggerRepository(db, m)
	callLogRepo := postgres.NewCallLogRepository(db, m)
	emailEventRepo := postgres.NewEmailEventRepository(db, m)
	statsRepo := postgres.NewSystemStatsRepository(db, m)

	// Services
	groupSvc := groupService.NewService(groupRepo, events)
	contactSvc := contactService.NewService(contactRepo, events)
	triggerSvc := triggerService.NewService(triggerRepo, events)
	callLogSvc := callLogService.NewService(callLogRepo, events)
	emailEventSvc := emailEventService.NewService(emailEventRepo, events)
	statsSvc := statsService.NewService(statsRepo, events, m)
	exportSvc := export.NewService(callLogRepo, m)

	authSvc, err := authService.NewService(
		cfg.Auth.Username,
		cfg.Auth.Password,
		auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry()),
		security.NewBcryptHasher(cfg.Auth.BcryptCost),
		cfg.Auth.CacheTTL,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise auth")
	}

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		health.NewHandler(db),
		httpMetrics,
		authHandler.NewHandler(authSvc),
		[]router.Handler{
			groupHandler.NewHandler(groupSvc),
			contactHandler.NewHandler(contactSvc),
			triggerHandler.NewHandler(triggerSvc),
			callLogHandler.NewHandler(callLogSvc, exportSvc),
			emailEventHandler.NewHandler(emailEventSvc),
			statsHandler.NewHandler(statsSvc),
		},
		router.RouterConfig{
			Mode: cfg.Server.Mode,
			CORSConfig: middleware.CORSConfig{
				AllowOrigins:     cfg.CORS.AllowedOrigins,
				AllowMethods:     cfg.CORS.AllowedMethods,
				AllowHeaders:     cfg.CORS.AllowedHeaders,
				ExposeHeaders:    []string{"Content-Disposition", middleware.HeaderXRequestID},
				AllowCredentials: true,
				MaxAge:           86400,
			},
			SecurityConfig: middleware.DefaultSecurityConfig(),
			MetricsPath:    cfg.Metrics.Path,
		},
	)
	r.Setup()

	go worker.NewStatsRetentionWorker(statsSvc, cfg.Retention.SystemStatsDays, cfg.Retention.Interval).Start(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("failed to start server")
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
