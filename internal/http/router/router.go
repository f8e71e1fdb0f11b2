package router

import (
	"github.com/gin-gonic/gin"

	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/config"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/http/handlers"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/http/middleware"
	"github.com/the-foundingengineer/ShadowDrop-Smc/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	submissionHandler *handlers.SubmissionHandler,
	agentHandler *handlers.AgentHandler,
	journalistHandler *handlers.JournalistHandler,
	walletHandler *handlers.WalletHandler,
	adminHandler *handlers.AdminHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	api.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))

	// Публичные маршруты: выпуск личности, чтение заявок, лента событий.
	api.POST("/auth/identity", authHandler.IssueIdentity)
	api.GET("/submissions/:id", submissionHandler.GetSubmission)
	api.GET("/submissions/:id/evaluation", agentHandler.GetEvaluation)
	api.GET("/submissions/:id/events", submissionHandler.ListEvents)
	api.GET("/journalists/:id", middleware.UUIDValidator("id"), journalistHandler.GetProfile)
	api.GET("/ws", wsHandler.Handle)

	// Маршруты с личностью. Авторизацию по ролям (агент, владелец,
	// отправитель) выполняет движок.
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.POST("/submissions", submissionHandler.CreateSubmission)
		protected.DELETE("/submissions/:id", submissionHandler.CancelSubmission)
		protected.POST("/submissions/:id/access", submissionHandler.AccessSubmission)
		protected.POST("/submissions/:id/timeout-refund", submissionHandler.TimeoutRefund)
		protected.POST("/submissions/:id/evaluation", agentHandler.RecordEvaluation)
		protected.POST("/submissions/:id/slash", agentHandler.SlashStake)

		protected.POST("/journalists", journalistHandler.Register)
		protected.PUT("/journalists/:id/approval", middleware.UUIDValidator("id"), agentHandler.SetApproval)

		protected.POST("/withdrawals", walletHandler.Withdraw)
		protected.GET("/balance", walletHandler.GetBalance)
		protected.POST("/transfers", walletHandler.RejectTransfer)

		protected.PUT("/admin/agent", adminHandler.SetAgent)
		protected.POST("/admin/pause", adminHandler.Pause)
		protected.POST("/admin/unpause", adminHandler.Unpause)
	}

	return r
}
