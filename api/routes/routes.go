package routes

import (
	"github.com/fairwaydraw/draw-backend/internal/config"
	"github.com/fairwaydraw/draw-backend/internal/handlers"
	"github.com/fairwaydraw/draw-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies groups the handlers the router wires up
type HandlerDependencies struct {
	AuthHandler       *handlers.AuthHandler
	DrawHandler       *handlers.DrawHandler
	WinnerHandler     *handlers.WinnerHandler
	ScoreHandler      *handlers.ScoreHandler
	TierConfigHandler *handlers.TierConfigHandler
}

// SetupRouter sets up the router
func SetupRouter(cfg *config.Config, deps HandlerDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())

	// Public routes
	public := router.Group("/api/v1")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})

		auth := public.Group("/auth")
		{
			auth.POST("/login", deps.AuthHandler.Login)
		}
	}

	// Protected routes: the whole draw engine is an operator surface
	protected := router.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware(cfg))
	{
		protected.POST("/auth/register", deps.AuthHandler.Register)

		draws := protected.Group("/draws")
		{
			draws.GET("", deps.DrawHandler.GetCycles)
			draws.GET("/current", deps.DrawHandler.GetCurrentCycle)
			draws.GET("/:id", deps.DrawHandler.GetCycleByID)
			draws.POST("/simulate", deps.DrawHandler.Simulate)
			draws.POST("/run", deps.DrawHandler.Run)
			draws.POST("/:id/publish", deps.DrawHandler.Publish)
			draws.GET("/:id/winners", deps.WinnerHandler.GetCycleWinners)
			draws.GET("/:id/winners/export", deps.WinnerHandler.ExportCycleWinners)
		}

		winners := protected.Group("/winners")
		{
			winners.POST("/:id/verify", deps.WinnerHandler.VerifyWinner)
			winners.POST("/:id/pay", deps.WinnerHandler.MarkPaid)
		}

		scores := protected.Group("/scores")
		{
			scores.POST("", deps.ScoreHandler.SubmitScore)
			scores.GET("/member/:id", deps.ScoreHandler.GetMemberScores)
		}

		protected.GET("/tier-config", deps.TierConfigHandler.GetConfig)
		protected.PUT("/tier-config", deps.TierConfigHandler.UpdateConfig)
	}

	return router
}
