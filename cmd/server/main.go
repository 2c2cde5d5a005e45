// Package main is the entry point for the hirebase API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hirebase/internal/config"
	"hirebase/internal/core/id"
	"hirebase/internal/domain"
	"hirebase/internal/domain/auth"
	"hirebase/internal/domain/blacklist"
	"hirebase/internal/domain/campaign"
	"hirebase/internal/domain/candidate"
	"hirebase/internal/domain/convocatoria"
	"hirebase/internal/domain/intake"
	"hirebase/internal/domain/link"
	"hirebase/internal/domain/screening"
	v1 "hirebase/internal/infrastructure/http/v1"
	"hirebase/internal/infrastructure/storage/postgres"
	"hirebase/internal/infrastructure/storage/postgres/auth_repo"
	"hirebase/internal/infrastructure/storage/postgres/record_repo"
	"hirebase/pkg/logger"
)

var version = "dev"

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Infow("starting hirebase server", "version", version, "env", cfg.Environment)

	// --- Database ---
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalw("failed to ping database", "error", err)
	}
	log.Info("database connection established")

	txManager := postgres.NewTxManager(pool)

	// --- Screening engine ---
	engine, err := screening.NewEngine()
	if err != nil {
		log.Fatalw("failed to initialize screening engine", "error", err)
	}

	// --- Auth ---
	tokenConfig := auth.DefaultTokenConfig(cfg.SessionSecret)
	tokenConfig.TTL = cfg.SessionTTL
	tokenService := auth.NewTokenService(tokenConfig)

	authConfig := auth.DefaultServiceConfig()
	authConfig.SessionTTL = cfg.SessionTTL
	authService := auth.NewService(
		auth_repo.NewUserRepo(txManager),
		auth_repo.NewRoleRepo(txManager),
		auth_repo.NewSessionRepo(txManager),
		txManager,
		tokenService,
		authConfig,
	)

	// --- Domain services ---
	campaignRepo := record_repo.NewCampaignRepo(txManager)
	campaignService := campaign.NewService(campaignRepo, txManager, engine)

	linkService := link.NewService(record_repo.NewLinkRepo(txManager), txManager, campaignService)
	candidateService := candidate.NewService(record_repo.NewCandidateRepo(txManager), txManager)
	blacklistService := blacklist.NewService(record_repo.NewBlacklistRepo(txManager), txManager)
	convocatoriaService := convocatoria.NewService(record_repo.NewConvocatoriaRepo(txManager), txManager, campaignService)

	intakeService := intake.NewService(
		campaignService,
		linkService,
		convocatoriaService,
		candidateService,
		blacklistService,
		engine,
		txManager,
	)

	// --- Audit trail ---
	audit, err := postgres.NewAuditService(txManager)
	if err != nil {
		log.Fatalw("failed to initialize audit service", "error", err)
	}
	wireAuditHooks(audit, campaignService, linkService, candidateService, blacklistService, convocatoriaService)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Pool:    pool.Pool,
		Logger:  log,
		Version: version,

		AuthService:  authService,
		TokenService: tokenService,

		Campaigns:     campaignService,
		Links:         linkService,
		Candidates:    candidateService,
		Blacklist:     blacklistService,
		Convocatorias: convocatoriaService,
		Intake:        intakeService,

		CookieSecure: cfg.CookieSecure,
		SessionTTL:   cfg.SessionTTL,
		Development:  cfg.IsDevelopment(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// wireAuditHooks records create/update/delete snapshots for every
// back-office resource. Audit failures never fail the operation.
func wireAuditHooks(
	audit *postgres.AuditService,
	campaigns *campaign.Service,
	links *link.Service,
	candidates *candidate.Service,
	blacklistSvc *blacklist.Service,
	convocatorias *convocatoria.Service,
) {
	wire(audit, campaigns.Hooks(), "campaign", func(c *campaign.Campaign) id.ID { return c.ID })
	wire(audit, links.Hooks(), "recruitment_link", func(l *link.Link) id.ID { return l.ID })
	wire(audit, candidates.Hooks(), "candidate", func(c *candidate.Candidate) id.ID { return c.ID })
	wire(audit, blacklistSvc.Hooks(), "blacklist_entry", func(e *blacklist.Entry) id.ID { return e.ID })
	wire(audit, convocatorias.Hooks(), "convocatoria", func(c *convocatoria.Convocatoria) id.ID { return c.ID })
}

func wire[T any](
	audit *postgres.AuditService,
	hooks *domain.HookRegistry[T],
	entityType string,
	entityID func(T) id.ID,
) {
	hooks.OnAfterCreate(func(ctx context.Context, record T) error {
		audit.Record(ctx, entityType, entityID(record), postgres.AuditActionCreate, record)
		return nil
	})
	hooks.OnAfterUpdate(func(ctx context.Context, record T) error {
		audit.Record(ctx, entityType, entityID(record), postgres.AuditActionUpdate, record)
		return nil
	})
	hooks.OnAfterDelete(func(ctx context.Context, record T) error {
		audit.Record(ctx, entityType, entityID(record), postgres.AuditActionDelete, nil)
		return nil
	})
}
