package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/tatamihq/tatami-backend/internal/config"
	"github.com/tatamihq/tatami-backend/internal/handler"
	"github.com/tatamihq/tatami-backend/internal/middleware"
	"github.com/tatamihq/tatami-backend/internal/response"
	"github.com/tatamihq/tatami-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Class   *handler.ClassHandler
	Roster  *handler.RosterHandler
	Grading *handler.GradingHandler
	Member  *handler.MemberHandler
	WS      *handler.WSHandler
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
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limit the whole API per client IP.
	apiLimiter := middleware.NewRateLimiter(120, time.Minute)

	// ─── Authenticated API ─────────────────────────────────────────────
	api := router.Group("/api/v1")
	api.Use(apiLimiter.Middleware())
	api.Use(middleware.RequireAuth(authService))
	{
		// Schedule views: any authenticated caller.
		api.GET("/classes", handlers.Class.ListClasses)
		api.GET("/classes/today", handlers.Class.TodayClasses)
		api.GET("/classes/:id", handlers.Class.GetClass)

		// Roster and attendance commands: staff only.
		staff := api.Group("")
		staff.Use(middleware.RequireRosterAccess())
		{
			staff.GET("/classes/:id/roster/:date", handlers.Roster.GetRoster)
			staff.POST("/classes/:id/roster/:date/check-ins", handlers.Roster.CheckIn)
			staff.DELETE("/attendances/:id", handlers.Roster.CheckOut)

			staff.GET("/members/:id", handlers.Member.GetMember)
			staff.GET("/members/:id/promotions", handlers.Member.GetPromotions)
			staff.GET("/members/:id/attendance-count", handlers.Member.GetAttendanceCount)
		}

		// Grading: staff roles only; per-class grants are checked by the
		// promotion service for non-admins.
		grading := api.Group("")
		grading.Use(middleware.RequireRole(service.RoleAdmin, service.RoleProfessor, service.RoleInstructor))
		{
			grading.POST("/classes/:id/promotions", handlers.Grading.Promote)
		}
	}

	// ─── WebSocket ─────────────────────────────────────────────────────
	wsGroup := router.Group("/ws/v1")
	wsGroup.Use(middleware.RequireWSAuth(authService))
	{
		wsGroup.GET("/classes/:id/roster/:date/stream", handlers.WS.RosterStream)
	}

	return router
}
