package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/gradhunt/gradboard-backend/internal/config"
	"github.com/gradhunt/gradboard-backend/internal/handler"
	"github.com/gradhunt/gradboard-backend/internal/middleware"
	"github.com/gradhunt/gradboard-backend/internal/response"
	"github.com/gradhunt/gradboard-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth    *handler.AuthHandler
	OAuth   *handler.OAuthHandler
	Job     *handler.JobHandler
	Setting *handler.SettingHandler
	Upload  *handler.UploadHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	{
		publicAPI.GET("/settings", handlers.Setting.GetPublicSettings)
	}

	// Signed asset retrieval. The URL is self-expiring, so responses are
	// only privately cacheable.
	assets := router.Group("/api/v1/assets")
	assets.Use(middleware.PrivateCacheControl(3600))
	{
		assets.GET("/*path", handlers.Upload.ServeAsset)
	}

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/admin/login", handlers.Auth.AdminLogin)
		auth.GET("/admin/google/login", handlers.OAuth.GoogleLogin)
		auth.GET("/admin/google/callback", handlers.OAuth.GoogleCallback)

		// Authenticated profile route
		auth.GET("/admin/me", middleware.RequireAdmin(authService), handlers.Auth.GetAdminProfile)
	}

	// ─── 2. Jobs Group (Optional Auth) ─────────────────────────────────
	// Reads and anonymous submission share one group; a valid token
	// escalates to the moderation view. Mutations are admin-gated.
	jobs := router.Group("/api/v1/jobs")
	jobs.Use(middleware.OptionalAdmin(authService))
	{
		jobs.GET("", handlers.Job.ListJobs)
		jobs.GET("/:id", handlers.Job.GetJob)
		jobs.POST("", handlers.Job.CreateJob)

		jobs.PUT("/:id", middleware.RequireAdmin(authService), handlers.Job.UpdateJob)
		jobs.DELETE("/:id", middleware.RequireAdmin(authService), handlers.Job.DeleteJob)
	}

	// ─── 3. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdmin(authService))
	{
		adminAPI.POST("/upload/logo", handlers.Upload.UploadLogo)

		settingsGroup := adminAPI.Group("/settings")
		{
			settingsGroup.GET("", handlers.Setting.GetAllSettings)
			settingsGroup.PUT("", handlers.Setting.UpdateSettings)
		}
	}

	return router
}
