// Command server runs the scheme eligibility API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	adminDevice "govassist/internal/admin/device"
	adminHandler "govassist/internal/admin/handler"
	adminService "govassist/internal/admin/service"
	adminStore "govassist/internal/admin/store"
	applicantHandler "govassist/internal/applicant/handler"
	applicantService "govassist/internal/applicant/service"
	applicantStore "govassist/internal/applicant/store"
	applicationHandler "govassist/internal/application/handler"
	applicationService "govassist/internal/application/service"
	applicationStore "govassist/internal/application/store"
	"govassist/internal/audit"
	"govassist/internal/audit/relay"
	"govassist/internal/eligibility"
	eligibilityMetrics "govassist/internal/eligibility/metrics"
	httpapi "govassist/internal/http"
	"govassist/internal/platform/config"
	"govassist/internal/platform/httpserver"
	"govassist/internal/platform/logger"
	"govassist/internal/platform/metrics"
	"govassist/internal/platform/postgres"
	platformredis "govassist/internal/platform/redis"
	schemeHandler "govassist/internal/scheme/handler"
	schemeService "govassist/internal/scheme/service"
	schemeStore "govassist/internal/scheme/store"
	"govassist/internal/sysconfig"
	sysconfigHandler "govassist/internal/sysconfig/handler"
	sysconfigService "govassist/internal/sysconfig/service"
	"govassist/internal/token"
	"govassist/internal/token/revocation"
	authmw "govassist/pkg/platform/middleware/auth"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Persistence.
	db, err := postgres.Open(cfg.Postgres)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, log); err != nil {
		return err
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Audit outbox and relay.
	outbox := audit.NewPostgresOutbox(db)
	publisher := audit.NewOutboxPublisher(outbox)

	// System configuration with read-through cache.
	configStore := sysconfig.NewPostgresStore(db)
	configProvider := sysconfig.NewCachedProvider(configStore, redisClient, cfg.SysConfig.CacheTTL)
	configService := sysconfigService.New(configStore, configProvider, publisher, log)

	// Domain stores.
	applicants := applicantStore.NewPostgres(db)
	schemes := schemeStore.NewPostgres(db)
	applications := applicationStore.NewPostgres(db)

	// Eligibility core.
	manager := eligibility.NewSchemesManager(
		eligibility.NewChecker(eligibility.NewFactory(configProvider)),
		schemes,
		eligibilityMetrics.New(),
		publisher,
		log,
	)

	applicantSvc := applicantService.New(applicants, publisher, log)
	schemeSvc := schemeService.New(schemes, log)
	applicationSvc := applicationService.New(applications, applicants, schemes, manager, db, publisher, log)

	// Tokens and revocation. Redis makes revocations visible to every
	// instance immediately; Postgres is the durable fallback.
	tokens := token.NewService(cfg.JWT)
	var revoker interface {
		adminService.Revoker
		authmw.TokenRevocationChecker
	}
	if redisClient != nil {
		revoker = revocation.NewRedisTRL(redisClient.Client)
	} else {
		revoker = revocation.NewPostgresTRL(db)
	}

	admins := adminStore.NewPostgres(db)
	devices := adminDevice.NewService(cfg.Device.FingerprintEnabled)
	adminSvc := adminService.New(admins, tokens, revoker, devices, publisher, cfg.Lockout, log)

	// Bootstrap data.
	if err := adminSvc.Bootstrap(ctx, cfg.Bootstrap); err != nil {
		return err
	}
	if cfg.Bootstrap.SeedSchemes {
		if err := schemeStore.SeedSchemes(ctx, schemes, time.Now()); err != nil {
			return err
		}
	}

	router := httpapi.NewRouter(httpapi.Dependencies{
		Handlers: httpapi.Handlers{
			Auth:           adminHandler.New(adminSvc, log),
			Applicants:     applicantHandler.New(applicantSvc, log),
			Schemes:        schemeHandler.New(schemeSvc, applicantSvc, manager, log),
			Applications:   applicationHandler.New(applicationSvc, log),
			Configurations: sysconfigHandler.New(configService, log),
		},
		Validator:  token.NewMiddlewareAdapter(tokens),
		Revocation: revoker,
		DB:         db,
		Redis:      redisClient,
		Metrics:    metrics.New(),
		CORS:       cfg.CORS,
		Logger:     log,
	})

	srv := httpserver.New(cfg.HTTP, router)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting http server", "addr", cfg.HTTP.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := relay.NewClient(cfg.Kafka.Brokers)
		if err != nil {
			return err
		}
		defer kafkaClient.Close()

		auditRelay := relay.New(outbox, kafkaClient, cfg.Kafka.AuditTopic,
			cfg.Kafka.RelayInterval, cfg.Kafka.RelayBatch, log)
		group.Go(func() error {
			if err := auditRelay.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	} else {
		log.Info("audit relay disabled, no kafka brokers configured")
	}

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
