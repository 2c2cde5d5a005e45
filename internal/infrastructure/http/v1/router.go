// Package v1 provides HTTP API version 1.
package v1

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"hirebase/internal/domain/auth"
	"hirebase/internal/domain/blacklist"
	"hirebase/internal/domain/campaign"
	"hirebase/internal/domain/candidate"
	"hirebase/internal/domain/convocatoria"
	"hirebase/internal/domain/intake"
	"hirebase/internal/domain/link"
	"hirebase/internal/infrastructure/http/v1/handlers"
	"hirebase/internal/infrastructure/http/v1/middleware"
	"hirebase/pkg/logger"
)

// Permission codes gate the back-office endpoints. Admins bypass all of
// them; everyone else needs the code granted through a role.
const (
	PermCampaignsRead  = "campaigns:read"
	PermCampaignsWrite = "campaigns:write"
	PermLinksRead      = "links:read"
	PermLinksWrite     = "links:write"
	PermCandidatesRead = "candidates:read"
	PermCandidatesMove = "candidates:move"
	PermCandidatesEdit = "candidates:write"
	PermBlacklistRead  = "blacklist:read"
	PermBlacklistWrite = "blacklist:write"
	PermConvocsRead    = "convocatorias:read"
	PermConvocsWrite   = "convocatorias:write"
	PermUsersManage    = "users:manage"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Pool    *pgxpool.Pool
	Logger  *logger.Logger
	Version string

	AuthService  *auth.Service
	TokenService *auth.TokenService

	Campaigns     *campaign.Service
	Links         *link.Service
	Candidates    *candidate.Service
	Blacklist     *blacklist.Service
	Convocatorias *convocatoria.Service
	Intake        *intake.Service

	CookieSecure bool
	SessionTTL   time.Duration
	Development  bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware (order matters)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	base := handlers.NewBaseHandler()

	// Health endpoints (no auth)
	healthHandler := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService, handlers.CookieConfig{
		Secure: cfg.CookieSecure,
		TTL:    cfg.SessionTTL,
	})

	// Session endpoints. The session probe uses optional auth so anonymous
	// callers get authenticated=false instead of a 401.
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/session",
			middleware.OptionalSessionAuth(cfg.TokenService, cfg.AuthService),
			authHandler.Session)
		authGroup.POST("/logout",
			middleware.SessionAuth(cfg.TokenService, cfg.AuthService),
			authHandler.Logout)
	}

	// Public applicant-facing endpoints (no auth)
	publicHandler := handlers.NewPublicHandler(base, cfg.Intake, cfg.Links, cfg.Convocatorias)
	public := router.Group("/api/public")
	{
		public.GET("/links/:token", publicHandler.GetLink)
		public.GET("/convocatorias/:token", publicHandler.GetConvocatoria)
		public.POST("/applications", publicHandler.SubmitApplication)
	}

	// Back-office API
	api := router.Group("/api/v1")
	api.Use(middleware.SessionAuth(cfg.TokenService, cfg.AuthService))

	campaignHandler := handlers.NewCampaignHandler(base, cfg.Campaigns)
	campaigns := api.Group("/campaigns")
	{
		campaigns.GET("", middleware.RequirePermission(PermCampaignsRead), campaignHandler.List)
		campaigns.GET("/:id", middleware.RequirePermission(PermCampaignsRead), campaignHandler.Get)
		campaigns.POST("", middleware.RequirePermission(PermCampaignsWrite), campaignHandler.Create)
		campaigns.PUT("/:id", middleware.RequirePermission(PermCampaignsWrite), campaignHandler.Update)
		campaigns.DELETE("/:id", middleware.RequirePermission(PermCampaignsWrite), campaignHandler.Delete)
	}

	linkHandler := handlers.NewLinkHandler(base, cfg.Links)
	links := api.Group("/links")
	{
		links.GET("", middleware.RequirePermission(PermLinksRead), linkHandler.List)
		links.GET("/:id", middleware.RequirePermission(PermLinksRead), linkHandler.Get)
		links.POST("", middleware.RequirePermission(PermLinksWrite), linkHandler.Create)
		links.PUT("/:id", middleware.RequirePermission(PermLinksWrite), linkHandler.Update)
		links.DELETE("/:id", middleware.RequirePermission(PermLinksWrite), linkHandler.Delete)
		links.POST("/:id/expire", middleware.RequirePermission(PermLinksWrite), linkHandler.Expire)
		links.POST("/:id/revoke", middleware.RequirePermission(PermLinksWrite), linkHandler.Revoke)
		links.POST("/:id/activate", middleware.RequirePermission(PermLinksWrite), linkHandler.Activate)
	}

	candidateHandler := handlers.NewCandidateHandler(base, cfg.Candidates)
	candidates := api.Group("/candidates")
	{
		candidates.GET("", middleware.RequirePermission(PermCandidatesRead), candidateHandler.List)
		candidates.GET("/:id", middleware.RequirePermission(PermCandidatesRead), candidateHandler.Get)
		candidates.POST("", middleware.RequirePermission(PermCandidatesEdit), candidateHandler.Create)
		candidates.PUT("/:id", middleware.RequirePermission(PermCandidatesEdit), candidateHandler.Update)
		candidates.DELETE("/:id", middleware.RequirePermission(PermCandidatesEdit), candidateHandler.Delete)
		candidates.POST("/:id/stage",
			middleware.RequireAllPermissions(PermCandidatesEdit, PermCandidatesMove),
			candidateHandler.MoveStage)
		candidates.POST("/:id/documents/receive",
			middleware.RequirePermission(PermCandidatesEdit),
			candidateHandler.ReceiveDocument)
	}

	blacklistHandler := handlers.NewBlacklistHandler(base, cfg.Blacklist)
	blacklistGroup := api.Group("/blacklist")
	{
		blacklistGroup.GET("", middleware.RequirePermission(PermBlacklistRead), blacklistHandler.List)
		blacklistGroup.GET("/:id", middleware.RequirePermission(PermBlacklistRead), blacklistHandler.Get)
		blacklistGroup.POST("", middleware.RequirePermission(PermBlacklistWrite), blacklistHandler.Create)
		blacklistGroup.PUT("/:id", middleware.RequirePermission(PermBlacklistWrite), blacklistHandler.Update)
		blacklistGroup.DELETE("/:id", middleware.RequirePermission(PermBlacklistWrite), blacklistHandler.Delete)
	}

	convocatoriaHandler := handlers.NewConvocatoriaHandler(base, cfg.Convocatorias)
	convocatorias := api.Group("/convocatorias")
	{
		convocatorias.GET("", middleware.RequirePermission(PermConvocsRead), convocatoriaHandler.List)
		convocatorias.GET("/:id", middleware.RequirePermission(PermConvocsRead), convocatoriaHandler.Get)
		convocatorias.POST("", middleware.RequirePermission(PermConvocsWrite), convocatoriaHandler.Create)
		convocatorias.PUT("/:id", middleware.RequirePermission(PermConvocsWrite), convocatoriaHandler.Update)
		convocatorias.DELETE("/:id", middleware.RequirePermission(PermConvocsWrite), convocatoriaHandler.Delete)
		convocatorias.POST("/:id/close", middleware.RequirePermission(PermConvocsWrite), convocatoriaHandler.Close)
	}

	userHandler := handlers.NewUserHandler(base, cfg.AuthService)
	users := api.Group("", middleware.RequirePermission(PermUsersManage))
	{
		users.GET("/users", userHandler.List)
		users.GET("/users/:id", userHandler.Get)
		users.POST("/users", userHandler.Create)
		users.GET("/roles", userHandler.ListRoles)
		users.GET("/permissions", userHandler.ListPermissions)
	}

	return router
}
